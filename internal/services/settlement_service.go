package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"edustore-service/internal/ledger"
	"edustore-service/internal/models"
)

// Settlement outcomes. Settled means the atomic transition ran; Ignored
// covers failure events, unknown orders and replayed deliveries; Rejected is
// reserved for signature failures and mutates nothing.
const (
	OutcomeSettled  = "settled"
	OutcomeIgnored  = "ignored"
	OutcomeRejected = "rejected"
)

// errAlreadySettled aborts a settlement that lost the race against a
// concurrent delivery of the same order. Mapped to a no-op success.
var errAlreadySettled = errors.New("order already settled")

// razorpayEvent is the typed shape of a Razorpay webhook body. Parsed only
// after the raw bytes pass signature verification.
type razorpayEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity razorpayPayment `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type razorpayPayment struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	Status           string `json:"status"`
	Method           string `json:"method"`
	Email            string `json:"email"`
	Contact          string `json:"contact"`
	Currency         string `json:"currency"`
	Amount           int64  `json:"amount"`
	Fee              int64  `json:"fee"`
	Tax              int64  `json:"tax"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	AcquirerData     struct {
		RRN string `json:"rrn"`
	} `json:"acquirer_data"`
	UPI struct {
		VPA string `json:"vpa"`
	} `json:"upi"`
}

// settlementEvent is the canonical internal event every gateway payload maps
// to before any business logic runs.
type settlementEvent struct {
	OrderID  string
	Captured bool
	Record   models.PaymentRecord
}

// SettlementResult is the acknowledgment returned to the gateway.
type SettlementResult struct {
	Outcome    string `json:"payment_status"`
	Event      string `json:"event"`
	PurchaseID *int   `json:"purchase_id,omitempty"`
}

// SettlementService consumes payment-status webhooks and performs the atomic
// pending-to-settled transition.
type SettlementService struct {
	DB      *gorm.DB
	Gateway OrderGateway
	Helper  *HelperService
	Mailer  *MailerService
}

func NewSettlementService(db *gorm.DB, gateway OrderGateway, helper *HelperService, mailer *MailerService) *SettlementService {
	return &SettlementService{DB: db, Gateway: gateway, Helper: helper, Mailer: mailer}
}

// HandleWebhook verifies, maps and settles one delivery. The raw body must be
// the exact bytes the gateway signed; callers read it before any JSON work.
func (s *SettlementService) HandleWebhook(rawBody []byte, signature string) (*SettlementResult, error) {
	if !s.Gateway.VerifySignature(rawBody, signature) {
		// Fails closed: no callback log, no entities, nothing.
		return &SettlementResult{Outcome: OutcomeRejected}, ErrSignatureInvalid
	}

	var event razorpayEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return &SettlementResult{Outcome: OutcomeIgnored, Event: "unparseable"}, fmt.Errorf("decoding webhook body: %w", err)
	}

	canonical := mapRazorpayEvent(&event)
	result, err := s.process(canonical, event.Event)

	status := 0
	if err == nil {
		status = 1
	}
	s.Helper.LogCallback(string(rawBody), result, status, canonical.OrderID, "razorpay")

	return result, err
}

func mapRazorpayEvent(event *razorpayEvent) settlementEvent {
	entity := event.Payload.Payment.Entity
	return settlementEvent{
		OrderID:  entity.OrderID,
		Captured: event.Event == "payment.captured" && entity.Status == "captured",
		Record: models.PaymentRecord{
			OrderID:          entity.OrderID,
			PaymentID:        entity.ID,
			Status:           entity.Status,
			Provider:         "razorpay",
			Method:           entity.Method,
			UtrID:            entity.AcquirerData.RRN,
			VPA:              entity.UPI.VPA,
			Email:            entity.Email,
			Contact:          entity.Contact,
			Currency:         entity.Currency,
			AmountPaise:      entity.Amount,
			FeePaise:         entity.Fee,
			TaxPaise:         entity.Tax,
			ErrorCode:        entity.ErrorCode,
			ErrorDescription: entity.ErrorDescription,
		},
	}
}

func (s *SettlementService) process(event settlementEvent, eventName string) (*SettlementResult, error) {
	if event.OrderID == "" {
		// Signed but schema-deviant payload. The delivery is still audited
		// through the callback log, but there is no order to key a payment
		// record on.
		return &SettlementResult{Outcome: OutcomeIgnored, Event: eventName}, nil
	}

	var pending models.PendingTransaction
	pendingErr := s.DB.Where("transaction_id = ?", event.OrderID).First(&pending).Error

	if !event.Captured || pendingErr != nil {
		// Failure events and unknown/expired/replayed orders are recorded for
		// audit only; no purchase, no commission.
		if err := s.upsertRecord(s.DB, event.Record, nil); err != nil {
			return &SettlementResult{Outcome: OutcomeIgnored, Event: eventName}, err
		}
		return &SettlementResult{Outcome: OutcomeIgnored, Event: eventName}, nil
	}

	purchaseID, err := s.settle(event, &pending)
	if errors.Is(err, errAlreadySettled) {
		// A concurrent delivery won; acknowledge without redoing anything.
		return &SettlementResult{Outcome: OutcomeIgnored, Event: eventName}, nil
	}
	if err != nil {
		// Full rollback happened; the pending transaction is intact and a
		// retry delivery can attempt settlement again.
		log.Printf("settlement failed for order %s: %v", event.OrderID, err)
		return &SettlementResult{Outcome: OutcomeIgnored, Event: eventName}, err
	}

	if s.Mailer != nil && event.Record.Email != "" {
		s.Mailer.EnqueuePurchaseConfirmation(event.Record.Email, event.OrderID)
	}

	return &SettlementResult{Outcome: OutcomeSettled, Event: eventName, PurchaseID: &purchaseID}, nil
}

// settle performs the whole transition in one transaction: promote a new buyer,
// credit the referrer, create the purchase, delete the staging rows, upsert
// the payment record. All or nothing.
func (s *SettlementService) settle(event settlementEvent, pending *models.PendingTransaction) (int, error) {
	var purchaseID int

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		buyerID := 0
		if pending.BuyerUserID != nil {
			buyerID = *pending.BuyerUserID
		}

		if pending.IsNewBuyer {
			var temp models.TempUser
			if err := tx.First(&temp, buyerID).Error; err != nil {
				return fmt.Errorf("loading temporary registration %d: %w", buyerID, err)
			}
			user, err := PromoteTempUser(tx, &temp)
			if err != nil {
				return fmt.Errorf("promoting temporary registration: %w", err)
			}
			if err := tx.Delete(&temp).Error; err != nil {
				return err
			}
			buyerID = user.ID
		}

		var existing models.Purchase
		err := tx.Where("buyer_user_id = ? AND item_id = ? AND item_type = ?", buyerID, pending.ItemID, pending.ItemType).First(&existing).Error
		if err == nil {
			return ErrDuplicatePurchase
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if pending.ReferrerUserID != nil {
			if err := creditReferrer(tx, *pending.ReferrerUserID, pending.ItemID, pending.ItemType); err != nil {
				return err
			}
		}

		purchase := models.Purchase{
			BuyerUserID:    &buyerID,
			ItemID:         pending.ItemID,
			ItemType:       pending.ItemType,
			ReferrerUserID: pending.ReferrerUserID,
			Amount:         pending.Amount,
			Discount:       pending.Discount,
			CouponCode:     pending.CouponCode,
			CouponType:     pending.CouponType,
		}
		// The unique index backstops the read above against a concurrent
		// settlement staged under a different order id for the same buyer
		// and item.
		if err := tx.Create(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicatePurchase
			}
			return err
		}
		purchaseID = purchase.ID

		// The delete doubles as the serialization point for concurrent
		// deliveries of the same order: exactly one transaction removes the
		// row, every other one rolls back here.
		res := tx.Where("transaction_id = ?", pending.TransactionID).Delete(&models.PendingTransaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadySettled
		}

		return s.upsertRecord(tx, event.Record, &purchaseID)
	})

	return purchaseID, err
}

// creditReferrer applies the item's configured commission to the referrer's
// account and appends the link-level credit event. Shares the caller's
// transaction; also used by the back-office purchase path.
func creditReferrer(tx *gorm.DB, referrerID, itemID int, itemType string) error {
	item, err := getItemTx(tx, itemID, itemType)
	if err != nil {
		return fmt.Errorf("resolving item for commission: %w", err)
	}

	account, err := AccountFor(tx, referrerID)
	if err != nil {
		return fmt.Errorf("loading referrer account: %w", err)
	}
	account = ledger.Credit(account, item.Commission)
	if err := tx.Save(&account).Error; err != nil {
		return err
	}

	link, err := linkFor(tx, referrerID, itemID, itemType)
	if err != nil {
		return err
	}
	return tx.Create(&models.AffiliateLinkPurchase{LinkID: link.ID, Amount: item.Commission}).Error
}

type AdminPurchaseDTO struct {
	BuyerUserID     *int
	ItemID          int
	ItemType        string
	ReferrerRefCode string
}

// AdminCreatePurchase is the back-office correction path: it attaches a
// purchase to a buyer/referrer pair retroactively, under the same uniqueness
// and commission rules as the webhook path.
func (s *SettlementService) AdminCreatePurchase(data AdminPurchaseDTO) (*models.Purchase, error) {
	item, err := getItemTx(s.DB, data.ItemID, data.ItemType)
	if err != nil {
		return nil, err
	}

	var referrerID *int
	if data.ReferrerRefCode != "" {
		var referrer models.User
		if err := s.DB.Where("ref_code = ?", data.ReferrerRefCode).First(&referrer).Error; err != nil {
			return nil, ErrReferrerNotFound
		}
		referrerID = &referrer.ID
	}

	var purchase models.Purchase
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if data.BuyerUserID != nil {
			if err := tx.First(&models.User{}, *data.BuyerUserID).Error; err != nil {
				return ErrUserNotFound
			}
			var existing models.Purchase
			err := tx.Where("buyer_user_id = ? AND item_id = ? AND item_type = ?", *data.BuyerUserID, item.ID, item.Type).First(&existing).Error
			if err == nil {
				return ErrDuplicatePurchase
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if referrerID != nil {
			if err := creditReferrer(tx, *referrerID, item.ID, item.Type); err != nil {
				return err
			}
		}

		purchase = models.Purchase{
			BuyerUserID:    data.BuyerUserID,
			ItemID:         item.ID,
			ItemType:       item.Type,
			ReferrerUserID: referrerID,
			Amount:         item.Price,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicatePurchase
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// AttachBuyer late-binds a buyer to a previously anonymous purchase. No
// commission moves; that happened when the dummy purchase was created.
func (s *SettlementService) AttachBuyer(purchaseID, buyerUserID int) (*models.Purchase, error) {
	var purchase models.Purchase

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&purchase, purchaseID).Error; err != nil {
			return err
		}
		if purchase.BuyerUserID != nil {
			return ErrDuplicatePurchase
		}
		if err := tx.First(&models.User{}, buyerUserID).Error; err != nil {
			return ErrUserNotFound
		}
		var existing models.Purchase
		err := tx.Where("buyer_user_id = ? AND item_id = ? AND item_type = ?", buyerUserID, purchase.ItemID, purchase.ItemType).First(&existing).Error
		if err == nil {
			return ErrDuplicatePurchase
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		purchase.BuyerUserID = &buyerUserID
		if err := tx.Save(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicatePurchase
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// upsertRecord creates or refreshes the payment record for an order id.
// Retried deliveries update the same row instead of duplicating it.
func (s *SettlementService) upsertRecord(tx *gorm.DB, record models.PaymentRecord, purchaseID *int) error {
	record.PurchaseID = purchaseID

	var existing models.PaymentRecord
	err := tx.Where("order_id = ?", record.OrderID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&record).Error
	}
	if err != nil {
		return err
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if record.PurchaseID == nil {
		record.PurchaseID = existing.PurchaseID
	}
	return tx.Save(&record).Error
}
