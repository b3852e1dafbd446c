package handler

import (
	"net/http"

	"marketplace-be/internal/metrics"
	"marketplace-be/internal/middleware"
	"marketplace-be/internal/store"
	"marketplace-be/internal/user"

	"github.com/labstack/echo/v4"
)

type StoreHandler struct {
	stores store.Service
}

func NewStoreHandler(stores store.Service) *StoreHandler {
	return &StoreHandler{stores: stores}
}

type createStoreRequest struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Settings    store.Settings `json:"settings"`
	OwnerID     string         `json:"ownerId"`
}

type updateStoreRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	IsActive    *bool          `json:"isActive"`
	Settings    store.Settings `json:"settings"`
}

func (h *StoreHandler) List(c echo.Context) error {
	stores, err := h.stores.ListFiltered(c.Request().Context(), store.Filter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		City:     c.QueryParam("city"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stores)
}

func (h *StoreHandler) Get(c echo.Context) error {
	st, err := h.stores.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *StoreHandler) GetByOwner(c echo.Context) error {
	stores, err := h.stores.GetByOwner(c.Request().Context(), c.Param("ownerId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stores)
}

func (h *StoreHandler) Create(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	// Admins may create stores on behalf of other owners.
	ownerID := claims.UserID
	if req.OwnerID != "" && claims.Role == string(user.RoleAdmin) {
		ownerID = req.OwnerID
	}

	st, err := h.stores.Create(c.Request().Context(), store.CreateParams{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Settings:    req.Settings,
	})
	if err != nil {
		return respondError(c, err)
	}

	metrics.RecordStoreOperation("create")
	return c.JSON(http.StatusCreated, st)
}

func (h *StoreHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if allowed, err := h.authorizeOwner(c, id); !allowed {
		return err
	}

	var req updateStoreRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	st, err := h.stores.Update(ctx, id, store.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
		Settings:    req.Settings,
	})
	if err != nil {
		return respondError(c, err)
	}

	metrics.RecordStoreOperation("update")
	return c.JSON(http.StatusOK, st)
}

func (h *StoreHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if allowed, err := h.authorizeOwner(c, id); !allowed {
		return err
	}

	deleted, err := h.stores.Delete(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": store.ErrStoreNotFound.Error()})
	}

	metrics.RecordStoreOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

// authorizeOwner checks that the caller owns the store or is an admin.
// When not allowed the response has already been written; the caller
// returns the accompanying error as-is.
func (h *StoreHandler) authorizeOwner(c echo.Context, storeID string) (bool, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	if claims.Role == string(user.RoleAdmin) {
		return true, nil
	}

	st, err := h.stores.GetByID(c.Request().Context(), storeID)
	if err != nil {
		return false, respondError(c, err)
	}
	if st.OwnerID != claims.UserID {
		return false, forbidden(c)
	}
	return true, nil
}
