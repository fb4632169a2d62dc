package services

import (
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// Task types consumed by cmd/worker. Mail is the only work that leaves the
// request path; every ledger mutation stays synchronous.
const (
	TypePurchaseConfirmation = "mail:purchase-confirmation"
	TypeWithdrawalDecision   = "mail:withdrawal-decision"
)

type PurchaseConfirmationPayload struct {
	Email   string `json:"email"`
	OrderID string `json:"orderId"`
}

type WithdrawalDecisionPayload struct {
	AccountID int     `json:"accountId"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
}

// MailerService enqueues transactional mail. Enqueue failures are logged and
// swallowed; mail never blocks or rolls back a settlement.
type MailerService struct {
	Client *asynq.Client
}

func NewMailerService(client *asynq.Client) *MailerService {
	return &MailerService{Client: client}
}

func (s *MailerService) EnqueuePurchaseConfirmation(email, orderID string) {
	s.enqueue(TypePurchaseConfirmation, PurchaseConfirmationPayload{Email: email, OrderID: orderID})
}

func (s *MailerService) EnqueueWithdrawalDecision(accountID int, status string, amount float64) {
	s.enqueue(TypeWithdrawalDecision, WithdrawalDecisionPayload{AccountID: accountID, Status: status, Amount: amount})
}

func (s *MailerService) enqueue(taskType string, payload interface{}) {
	if s.Client == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal %s payload: %v", taskType, err)
		return
	}
	if _, err := s.Client.Enqueue(asynq.NewTask(taskType, data)); err != nil {
		log.Printf("enqueue %s: %v", taskType, err)
	}
}
