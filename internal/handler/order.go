package handler

import (
	"net/http"

	"marketplace-be/internal/metrics"
	"marketplace-be/internal/middleware"
	"marketplace-be/internal/order"
	"marketplace-be/internal/store"
	"marketplace-be/internal/user"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders order.Service
	stores store.Service
}

func NewOrderHandler(orders order.Service, stores store.Service) *OrderHandler {
	return &OrderHandler{orders: orders, stores: stores}
}

type checkoutRequest struct {
	StoreID         string         `json:"storeId"`
	Items           []order.Item   `json:"items"`
	ShippingAddress map[string]any `json:"shippingAddress"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// Checkout places an order for the authenticated customer.
func (h *OrderHandler) Checkout(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	o, err := h.orders.Checkout(c.Request().Context(), order.CheckoutParams{
		CustomerID:      claims.UserID,
		StoreID:         req.StoreID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return respondError(c, err)
	}

	metrics.RecordOrderOperation("checkout")
	return c.JSON(http.StatusCreated, o)
}

// Get serves an order to its customer, the owner of its store, or an admin.
func (h *OrderHandler) Get(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx := c.Request().Context()
	o, err := h.orders.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	allowed := o.CustomerID == claims.UserID || claims.Role == string(user.RoleAdmin)
	if !allowed {
		st, err := h.stores.GetByID(ctx, o.StoreID)
		if err != nil {
			return respondError(c, err)
		}
		allowed = st.OwnerID == claims.UserID
	}
	if !allowed {
		return forbidden(c)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	if _, ok := middleware.ClaimsFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	o, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		return respondError(c, err)
	}

	metrics.RecordOrderOperation("status_" + req.Status)
	return c.JSON(http.StatusOK, o)
}

// DashboardStats serves the merchant dashboard aggregate for an owner.
func (h *OrderHandler) DashboardStats(c echo.Context) error {
	if allowed, err := authorizeSelf(c, c.Param("userId")); !allowed {
		return err
	}

	stats, err := h.orders.GetDashboardStats(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// DashboardOrders lists all orders across the owner's stores.
func (h *OrderHandler) DashboardOrders(c echo.Context) error {
	if allowed, err := authorizeSelf(c, c.Param("userId")); !allowed {
		return err
	}

	orders, err := h.orders.GetByOwner(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// authorizeSelf allows the user themselves or an admin.
func authorizeSelf(c echo.Context, userID string) (bool, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	if claims.UserID != userID && claims.Role != string(user.RoleAdmin) {
		return false, forbidden(c)
	}
	return true, nil
}
