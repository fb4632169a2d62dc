package services

import "errors"

// Validation and settlement error kinds. Handlers map these onto HTTP
// statuses; services never touch gin.
var (
	ErrItemNotFound           = errors.New("item not found")
	ErrReferrerNotFound       = errors.New("referrer not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrCouponNotFound         = errors.New("coupon code not found")
	ErrSelfReferral           = errors.New("you cannot refer yourself")
	ErrDuplicatePurchase      = errors.New("item already purchased")
	ErrSignatureInvalid       = errors.New("webhook signature invalid")
	ErrWithdrawalNotFound     = errors.New("withdrawal request not found")
	ErrWithdrawalResolved     = errors.New("withdrawal already resolved")
	ErrInvalidItemType        = errors.New("invalid item type")
)

// GatewayError wraps a payment-gateway rejection with the upstream status and
// body so the client can see what the gateway said.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return "payment gateway error"
}
