// Package ledger holds the pure money arithmetic behind checkout and
// settlement: coupon discounts, commission amounts and account balance
// deltas. Nothing here touches the database.
package ledger

import (
	"errors"

	"edustore-service/internal/models"
)

var (
	ErrCouponExhausted       = errors.New("coupon has no uses left")
	ErrMinimumPurchaseNotMet = errors.New("minimum purchase amount not met")
	ErrInsufficientBalance   = errors.New("insufficient balance")
)

// ApplyCoupon returns the discount a coupon yields on basePrice.
//
// The minimum-purchase threshold is only enforced for flat coupons. That
// asymmetry is carried over from the production rules on purpose; percentage
// coupons scale with the price anyway.
func ApplyCoupon(basePrice float64, coupon *models.Coupon) (float64, error) {
	if coupon.RemainingUses <= 0 {
		return 0, ErrCouponExhausted
	}
	if coupon.Type == models.CouponFlat && coupon.MinPurchase != nil && basePrice < *coupon.MinPurchase {
		return 0, ErrMinimumPurchaseNotMet
	}
	if coupon.Type == models.CouponFlat {
		return coupon.Discount, nil
	}
	return basePrice * (coupon.Discount / 100), nil
}

// Payable clamps the post-discount amount at zero.
func Payable(basePrice, discount float64) float64 {
	if payable := basePrice - discount; payable > 0 {
		return payable
	}
	return 0
}

// Credit applies a confirmed commission to an account. Both the withdrawable
// balance and the lifetime earnings grow; earnings never move any other way.
func Credit(account models.Account, amount float64) models.Account {
	account.Balance += amount
	account.TotalEarnings += amount
	return account
}

// DebitForWithdrawal reserves amount from the balance at request time. The
// refund on a rejected withdrawal goes through Refund, not Credit, so that
// TotalEarnings stays untouched.
func DebitForWithdrawal(account models.Account, amount float64) (models.Account, error) {
	if amount > account.Balance {
		return account, ErrInsufficientBalance
	}
	account.Balance -= amount
	return account, nil
}

// Refund returns a pre-debited withdrawal amount to the balance.
func Refund(account models.Account, amount float64) models.Account {
	account.Balance += amount
	return account
}
