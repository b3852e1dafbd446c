package handler

import (
	"net/http"

	"marketplace-be/internal/middleware"
	"marketplace-be/internal/product"
	"marketplace-be/internal/store"
	"marketplace-be/internal/user"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	products product.Service
	stores   store.Service
}

func NewProductHandler(products product.Service, stores store.Service) *ProductHandler {
	return &ProductHandler{products: products, stores: stores}
}

type createProductRequest struct {
	StoreID     string   `json:"storeId"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Weight      *string  `json:"weight"`
	Dimensions  *string  `json:"dimensions"`
	Specs       *string  `json:"specs"`
	Tags        []string `json:"tags"`
	ImageURL    *string  `json:"imageUrl"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	Weight      *string  `json:"weight"`
	Dimensions  *string  `json:"dimensions"`
	Specs       *string  `json:"specs"`
	Tags        []string `json:"tags"`
	ImageURL    *string  `json:"imageUrl"`
	IsActive    *bool    `json:"isActive"`
}

func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.products.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) GetByStore(c echo.Context) error {
	products, err := h.products.GetByStore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetByUser(c echo.Context) error {
	products, err := h.products.GetByOwner(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Create requires a token; the target store must belong to the caller.
func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if req.StoreID == "" {
		return respondError(c, product.ErrStoreRequired)
	}

	st, err := h.stores.GetByID(ctx, req.StoreID)
	if err != nil {
		return respondError(c, err)
	}
	if st.OwnerID != claims.UserID && claims.Role != string(user.RoleAdmin) {
		return forbidden(c)
	}

	p, err := h.products.Create(ctx, product.CreateParams{
		StoreID:     req.StoreID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Weight:      req.Weight,
		Dimensions:  req.Dimensions,
		Specs:       req.Specs,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if allowed, err := h.authorizeOwner(c, id); !allowed {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	p, err := h.products.Update(ctx, id, product.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Weight:      req.Weight,
		Dimensions:  req.Dimensions,
		Specs:       req.Specs,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if allowed, err := h.authorizeOwner(c, id); !allowed {
		return err
	}

	deleted, err := h.products.Delete(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": product.ErrProductNotFound.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

func (h *ProductHandler) authorizeOwner(c echo.Context, productID string) (bool, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	if claims.Role == string(user.RoleAdmin) {
		return true, nil
	}

	ctx := c.Request().Context()
	p, err := h.products.GetByID(ctx, productID)
	if err != nil {
		return false, respondError(c, err)
	}
	st, err := h.stores.GetByID(ctx, p.StoreID)
	if err != nil {
		return false, respondError(c, err)
	}
	if st.OwnerID != claims.UserID {
		return false, forbidden(c)
	}
	return true, nil
}
