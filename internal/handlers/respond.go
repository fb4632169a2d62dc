package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edustore-service/internal/ledger"
	"edustore-service/internal/services"
	"edustore-service/pkg/common"
)

// statusFor maps service error kinds onto HTTP statuses. Anything unmapped
// is a 500 with a generic message; the real error stays in the logs.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrReferrerNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrWithdrawalNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmailAlreadyRegistered),
		errors.Is(err, services.ErrDuplicatePurchase),
		errors.Is(err, services.ErrWithdrawalResolved):
		return http.StatusConflict
	case errors.Is(err, services.ErrSelfReferral),
		errors.Is(err, services.ErrInvalidItemType),
		errors.Is(err, ledger.ErrCouponExhausted),
		errors.Is(err, ledger.ErrMinimumPurchaseNotMet),
		errors.Is(err, ledger.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrSignatureInvalid):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	var gatewayErr *services.GatewayError
	if errors.As(err, &gatewayErr) {
		c.JSON(http.StatusBadGateway, common.NewErrorResponse("Payment gateway error", gatewayErr.Body, http.StatusBadGateway))
		return
	}

	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, common.NewErrorResponse(message, nil, status))
}
