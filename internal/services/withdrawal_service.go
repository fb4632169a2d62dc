package services

import (
	"fmt"

	"gorm.io/gorm"

	"edustore-service/internal/ledger"
	"edustore-service/internal/models"
	"edustore-service/pkg/common"
)

// WithdrawalService opens payout requests against the affiliate balance and
// applies admin decisions. The amount is debited optimistically at request
// time and refunded if the admin does not approve.
type WithdrawalService struct {
	DB     *gorm.DB
	Mailer *MailerService
}

func NewWithdrawalService(db *gorm.DB, mailer *MailerService) *WithdrawalService {
	return &WithdrawalService{DB: db, Mailer: mailer}
}

type WithdrawRequestDTO struct {
	UserID      int
	Amount      float64
	Destination string // "bank" or "upi"

	// Bank destination fields.
	BankName      string
	AccountNumber string
	IFSCCode      string
	AccountName   string

	// UPI destination field.
	UPIID string
}

// RequestWithdrawal pre-debits the balance and opens a pending withdrawal,
// both in one transaction, and saves the payout destination (one bank and one
// UPI entry per account, updated in place).
func (s *WithdrawalService) RequestWithdrawal(data WithdrawRequestDTO) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		account, err := AccountFor(tx, data.UserID)
		if err != nil {
			return err
		}

		account, err = ledger.DebitForWithdrawal(account, data.Amount)
		if err != nil {
			return err
		}
		if err := tx.Save(&account).Error; err != nil {
			return err
		}

		withdrawal = models.Withdrawal{
			AccountID:   account.ID,
			Amount:      data.Amount,
			Status:      models.WithdrawalPending,
			Destination: data.Destination,
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return err
		}

		return upsertDestination(tx, account.ID, data)
	})
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

func upsertDestination(tx *gorm.DB, accountID int, data WithdrawRequestDTO) error {
	switch data.Destination {
	case "bank":
		var bank models.BankAccount
		err := tx.Where("account_id = ?", accountID).First(&bank).Error
		if err == gorm.ErrRecordNotFound {
			bank = models.BankAccount{AccountID: accountID}
		} else if err != nil {
			return err
		}
		bank.BankName = data.BankName
		bank.AccountNumber = data.AccountNumber
		bank.IFSCCode = data.IFSCCode
		bank.AccountName = data.AccountName
		return tx.Save(&bank).Error
	case "upi":
		var upi models.UPIAccount
		err := tx.Where("account_id = ?", accountID).First(&upi).Error
		if err == gorm.ErrRecordNotFound {
			upi = models.UPIAccount{AccountID: accountID}
		} else if err != nil {
			return err
		}
		upi.UPIID = data.UPIID
		return tx.Save(&upi).Error
	default:
		return fmt.Errorf("unknown payout destination %q", data.Destination)
	}
}

type ResolveWithdrawalDTO struct {
	WithdrawalID int
	Status       string // success or failed
	Explanation  string
	UpdatedBy    string
}

// ResolveWithdrawal applies the admin decision exactly once. Anything other
// than success refunds the pre-debited amount to the balance; lifetime
// earnings stay untouched either way.
func (s *WithdrawalService) ResolveWithdrawal(data ResolveWithdrawalDTO) (*models.Withdrawal, error) {
	if data.Status != models.WithdrawalSuccess && data.Status != models.WithdrawalFailed {
		return nil, fmt.Errorf("invalid withdrawal status %q", data.Status)
	}

	var withdrawal models.Withdrawal

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&withdrawal, data.WithdrawalID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrWithdrawalNotFound
			}
			return err
		}
		if withdrawal.Status != models.WithdrawalPending {
			return ErrWithdrawalResolved
		}

		withdrawal.Status = data.Status
		withdrawal.Explanation = data.Explanation
		withdrawal.UpdatedBy = data.UpdatedBy
		if err := tx.Save(&withdrawal).Error; err != nil {
			return err
		}

		if data.Status != models.WithdrawalSuccess {
			var account models.Account
			if err := tx.First(&account, withdrawal.AccountID).Error; err != nil {
				return err
			}
			account = ledger.Refund(account, withdrawal.Amount)
			return tx.Save(&account).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Mailer != nil {
		s.Mailer.EnqueueWithdrawalDecision(withdrawal.AccountID, withdrawal.Status, withdrawal.Amount)
	}
	return &withdrawal, nil
}

type ListWithdrawalsDTO struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// ListWithdrawals is the admin review queue, filterable by status and by a
// search over the owning user's name or email.
func (s *WithdrawalService) ListWithdrawals(data ListWithdrawalsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}

	query := s.DB.Model(&models.Withdrawal{}).
		Joins("JOIN accounts ON accounts.id = withdrawals.account_id").
		Joins("JOIN users ON users.id = accounts.user_id")

	if data.Status != "" {
		query = query.Where("withdrawals.status = ?", data.Status)
	}
	if data.Search != "" {
		like := "%" + data.Search + "%"
		query = query.Where("users.name LIKE ? OR users.email LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	type withdrawalRow struct {
		models.Withdrawal
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}
	var rows []withdrawalRow
	err := query.Select("withdrawals.*, users.name AS user_name, users.email AS user_email").
		Order("withdrawals.created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Scan(&rows).Error
	if err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(rows, total, page, limit, "Withdrawal requests fetched successfully"), nil
}
