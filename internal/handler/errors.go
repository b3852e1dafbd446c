package handler

import (
	"errors"
	"net/http"

	"marketplace-be/internal/listing"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/order"
	"marketplace-be/internal/product"
	"marketplace-be/internal/store"
	"marketplace-be/internal/user"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var notFoundErrs = []error{
	user.ErrUserNotFound,
	store.ErrStoreNotFound,
	product.ErrProductNotFound,
	order.ErrOrderNotFound,
	listing.ErrListingNotFound,
}

var conflictErrs = []error{
	user.ErrUsernameTaken,
	user.ErrEmailTaken,
	order.ErrInvalidTransition,
}

var badRequestErrs = []error{
	user.ErrInvalidRole,
	store.ErrNameRequired,
	store.ErrOwnerRequired,
	product.ErrNameRequired,
	product.ErrStoreRequired,
	product.ErrInvalidPrice,
	product.ErrInvalidStock,
	order.ErrInvalidStatus,
	order.ErrEmptyOrder,
	order.ErrInvalidItem,
	order.ErrCustomerRequired,
	order.ErrStoreRequired,
	listing.ErrTitleRequired,
	listing.ErrOwnerRequired,
	listing.ErrInvalidKind,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError translates service errors into HTTP responses. Unknown
// errors are logged and masked as 500s.
func respondError(c echo.Context, err error) error {
	switch {
	case isAny(err, notFoundErrs):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, user.ErrAccountDisabled):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case isAny(err, conflictErrs):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case isAny(err, badRequestErrs):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	logger.FromCtx(c.Request().Context()).Error("unhandled error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

func bindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{"error": "not allowed"})
}
