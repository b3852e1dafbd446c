package handler

import (
	"net/http"

	"marketplace-be/internal/middleware"
	"marketplace-be/internal/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

type updateUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Country  *string `json:"country"`
	City     *string `json:"city"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// List is admin-only.
func (h *UserHandler) List(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	if claims.Role != string(user.RoleAdmin) {
		return forbidden(c)
	}

	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	if allowed, err := authorizeSelf(c, c.Param("id")); !allowed {
		return err
	}

	u, err := h.users.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Update(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id := c.Param("id")
	if claims.UserID != id && claims.Role != string(user.RoleAdmin) {
		return forbidden(c)
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	p := user.UpdateParams{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Country:  req.Country,
		City:     req.City,
	}
	// Role and active flags are admin levers, not self-service.
	if claims.Role == string(user.RoleAdmin) {
		if req.Role != nil {
			role := user.Role(*req.Role)
			p.Role = &role
		}
		p.IsActive = req.IsActive
	} else if req.Role != nil || req.IsActive != nil {
		return forbidden(c)
	}

	u, err := h.users.Update(c.Request().Context(), id, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Deactivate disables the account instead of deleting it.
func (h *UserHandler) Deactivate(c echo.Context) error {
	if allowed, err := authorizeSelf(c, c.Param("id")); !allowed {
		return err
	}

	u, err := h.users.Deactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
