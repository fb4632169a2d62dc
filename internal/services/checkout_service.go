package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"edustore-service/internal/ledger"
	"edustore-service/internal/models"
)

// CheckoutService validates a purchase request, stages a pending transaction
// and opens a payable order with the gateway. No commission or purchase is
// written here; that waits for the webhook.
type CheckoutService struct {
	DB      *gorm.DB
	Catalog *CatalogService
	Users   *UserService
	Gateway OrderGateway
}

func NewCheckoutService(db *gorm.DB, catalog *CatalogService, users *UserService, gateway OrderGateway) *CheckoutService {
	return &CheckoutService{DB: db, Catalog: catalog, Users: users, Gateway: gateway}
}

// CheckoutDTO carries either an existing buyer (BuyerRefCode) or a fresh
// registration payload (Name/Email/Phone/Password), never both.
type CheckoutDTO struct {
	ItemID          int
	ItemType        string
	ReferrerRefCode string
	CouponCode      string

	BuyerRefCode string
	Name         string
	Email        string
	Phone        string
	Password     string
}

// Checkout validates in order: item, referrer, coupon, buyer.
// On success exactly one PendingTransaction row exists for the gateway order
// and, for a new buyer, one upserted TempUser row.
func (s *CheckoutService) Checkout(data CheckoutDTO) (*GatewayOrder, error) {
	item, err := s.Catalog.GetItem(data.ItemID, data.ItemType)
	if err != nil {
		return nil, err
	}

	var referrerID *int
	if data.ReferrerRefCode != "" {
		referrer, err := s.Users.GetByRefCode(data.ReferrerRefCode)
		if err != nil {
			return nil, ErrReferrerNotFound
		}
		referrerID = &referrer.ID
	}

	var discount float64
	var couponType string
	if data.CouponCode != "" {
		coupon, err := s.Catalog.GetCoupon(data.CouponCode)
		if err != nil {
			return nil, err
		}
		discount, err = ledger.ApplyCoupon(item.Price, coupon)
		if err != nil {
			return nil, err
		}
		couponType = coupon.Type
	}

	var buyerID int
	isNewBuyer := false
	if data.BuyerRefCode != "" {
		buyer, err := s.Users.GetByRefCode(data.BuyerRefCode)
		if err != nil {
			return nil, ErrUserNotFound
		}
		if referrerID != nil && *referrerID == buyer.ID {
			return nil, ErrSelfReferral
		}
		buyerID = buyer.ID
	} else {
		if err := s.Users.DB.Where("email = ?", data.Email).First(&models.User{}).Error; err == nil {
			return nil, ErrEmailAlreadyRegistered
		}
		temp, err := s.Users.UpsertTempUser(RegisterDTO{
			Name:     data.Name,
			Email:    data.Email,
			Phone:    data.Phone,
			Password: data.Password,
		})
		if err != nil {
			return nil, err
		}
		buyerID = temp.ID
		isNewBuyer = true
	}

	order, err := s.Gateway.CreateOrder(ledger.Payable(item.Price, discount), "INR", fmt.Sprintf("%d", buyerID))
	if err != nil {
		return nil, err
	}

	pending := models.PendingTransaction{
		TransactionID:  order.OrderID,
		ItemID:         item.ID,
		ItemType:       item.Type,
		ReferrerUserID: referrerID,
		BuyerUserID:    &buyerID,
		IsNewBuyer:     isNewBuyer,
		Amount:         item.Price,
		Discount:       discount,
		CouponCode:     data.CouponCode,
		CouponType:     couponType,
	}
	if err := s.DB.Create(&pending).Error; err != nil {
		return nil, err
	}

	return order, nil
}

// CheckoutPage resolves the page shown before payment: the item plus the
// referrer, rejecting self referrals and repeat purchases up front.
type CheckoutPage struct {
	Item     *Item        `json:"item"`
	Referrer *models.User `json:"referrer,omitempty"`
}

func (s *CheckoutService) GetCheckoutPage(itemID int, itemType, buyerRefCode, referrerRefCode string) (*CheckoutPage, error) {
	item, err := s.Catalog.GetItem(itemID, itemType)
	if err != nil {
		return nil, err
	}

	page := &CheckoutPage{Item: item}

	var buyer *models.User
	if buyerRefCode != "" {
		buyer, err = s.Users.GetByRefCode(buyerRefCode)
		if err != nil {
			return nil, ErrUserNotFound
		}
		var existing models.Purchase
		err := s.DB.Where("buyer_user_id = ? AND item_id = ? AND item_type = ?", buyer.ID, itemID, itemType).First(&existing).Error
		if err == nil {
			return nil, ErrDuplicatePurchase
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if referrerRefCode != "" {
		referrer, err := s.Users.GetByRefCode(referrerRefCode)
		if err != nil {
			return nil, ErrReferrerNotFound
		}
		if buyer != nil && buyer.ID == referrer.ID {
			return nil, ErrSelfReferral
		}
		page.Referrer = referrer
	}

	return page, nil
}

// PaymentStatus reports where a checkout stands by order id.
func (s *CheckoutService) PaymentStatus(transactionID string) string {
	var pending models.PendingTransaction
	if s.DB.Where("transaction_id = ?", transactionID).First(&pending).Error == nil {
		return "pending"
	}

	var record models.PaymentRecord
	if s.DB.Where("order_id = ?", transactionID).First(&record).Error == nil {
		if record.Status == "captured" {
			return "settled"
		}
		return "failed"
	}

	return "unknown"
}
