package handler

import (
	"net/http"
	"time"

	"marketplace-be/internal/listing"
	"marketplace-be/internal/middleware"
	"marketplace-be/internal/user"

	"github.com/labstack/echo/v4"
)

// ListingHandler serves one of the three public boards (restaurants,
// jobs, ads); the kind is fixed per route group at registration time.
type ListingHandler struct {
	listings listing.Service
	kind     listing.Kind
}

func NewListingHandler(listings listing.Service, kind listing.Kind) *ListingHandler {
	return &ListingHandler{listings: listings, kind: kind}
}

type createListingRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	City        *string        `json:"city"`
	Category    *string        `json:"category"`
	ExpiresAt   *time.Time     `json:"expiresAt"`
	Extra       map[string]any `json:"extra"`
}

type updateListingRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	City        *string        `json:"city"`
	Category    *string        `json:"category"`
	IsActive    *bool          `json:"isActive"`
	ExpiresAt   *time.Time     `json:"expiresAt"`
	Extra       map[string]any `json:"extra"`
}

func (h *ListingHandler) List(c echo.Context) error {
	listings, err := h.listings.ListPublic(c.Request().Context(), h.kind, listing.Filter{
		City:   c.QueryParam("city"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) Get(c echo.Context) error {
	l, err := h.listings.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if l.Kind != h.kind {
		return c.JSON(http.StatusNotFound, echo.Map{"error": listing.ErrListingNotFound.Error()})
	}
	return c.JSON(http.StatusOK, l)
}

func (h *ListingHandler) Create(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	l, err := h.listings.Create(c.Request().Context(), listing.CreateParams{
		Kind:        h.kind,
		OwnerID:     claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Category:    req.Category,
		ExpiresAt:   req.ExpiresAt,
		Extra:       req.Extra,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *ListingHandler) Update(c echo.Context) error {
	if allowed, err := h.authorizeOwner(c, c.Param("id")); !allowed {
		return err
	}

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	l, err := h.listings.Update(c.Request().Context(), c.Param("id"), listing.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Category:    req.Category,
		IsActive:    req.IsActive,
		ExpiresAt:   req.ExpiresAt,
		Extra:       req.Extra,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *ListingHandler) Delete(c echo.Context) error {
	if allowed, err := h.authorizeOwner(c, c.Param("id")); !allowed {
		return err
	}

	deleted, err := h.listings.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": listing.ErrListingNotFound.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

func (h *ListingHandler) authorizeOwner(c echo.Context, id string) (bool, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	if claims.Role == string(user.RoleAdmin) {
		return true, nil
	}

	l, err := h.listings.GetByID(c.Request().Context(), id)
	if err != nil {
		return false, respondError(c, err)
	}
	if l.Kind != h.kind {
		return false, c.JSON(http.StatusNotFound, echo.Map{"error": listing.ErrListingNotFound.Error()})
	}
	if l.OwnerID != claims.UserID {
		return false, forbidden(c)
	}
	return true, nil
}
