package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"edustore-service/internal/models"
)

// HelperService collects the small cross-cutting persistence chores the
// other services share.
type HelperService struct {
	DB *gorm.DB
}

func NewHelperService(db *gorm.DB) *HelperService {
	return &HelperService{DB: db}
}

// LogCallback records a webhook delivery for audit. Best effort; a failed
// audit write never blocks settlement.
func (s *HelperService) LogCallback(request string, response interface{}, status int, trxID, provider string) {
	respBytes, _ := json.Marshal(response)
	entry := models.CallbackLog{
		Request:       request,
		Response:      string(respBytes),
		Status:        status,
		RequestType:   "Webhook",
		TransactionID: trxID,
		Provider:      provider,
	}
	s.DB.Create(&entry)
}

// AccountFor loads the ledger account for a user, creating it lazily on
// first need. Runs on whatever handle it is given so callers can keep it
// inside their own transaction.
func AccountFor(tx *gorm.DB, userID int) (models.Account, error) {
	var account models.Account
	err := tx.Where("user_id = ?", userID).First(&account).Error
	if err == gorm.ErrRecordNotFound {
		account = models.Account{UserID: userID, Balance: 0, TotalEarnings: 0}
		err = tx.Create(&account).Error
	}
	return account, err
}
