package handler

import (
	"net/http"

	"marketplace-be/internal/logger"
	"marketplace-be/internal/metrics"
	"marketplace-be/internal/user"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"fullName"`
	Phone    *string `json:"phone"`
	Country  *string `json:"country"`
	City     *string `json:"city"`
	Role     string  `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromCtx(ctx)

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "username, email and password are required",
		})
	}

	token, u, err := h.users.Register(ctx, user.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Country:  req.Country,
		City:     req.City,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Info("user registered",
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: u})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	token, u, err := h.users.Login(ctx, req.Username, req.Password)
	metrics.RecordAuthAttempt(err == nil)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: u})
}
