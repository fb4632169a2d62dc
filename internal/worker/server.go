package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"edustore-service/internal/models"
	"edustore-service/internal/services"
)

type Worker struct {
	DB     *gorm.DB
	Sender *MailSender
}

func NewWorker(db *gorm.DB, sender *MailSender) *Worker {
	return &Worker{DB: db, Sender: sender}
}

func (w *Worker) HandlePurchaseConfirmation(ctx context.Context, t *asynq.Task) error {
	var p services.PurchaseConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	body := fmt.Sprintf("Your payment for order %s is confirmed. The content is now available in your library.", p.OrderID)
	return w.Sender.Send(p.Email, "Purchase confirmed", body)
}

func (w *Worker) HandleWithdrawalDecision(ctx context.Context, t *asynq.Task) error {
	var p services.WithdrawalDecisionPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	// Resolve the account owner's address.
	var account models.Account
	if err := w.DB.First(&account, p.AccountID).Error; err != nil {
		return fmt.Errorf("loading account %d: %v: %w", p.AccountID, err, asynq.SkipRetry)
	}
	var user models.User
	if err := w.DB.First(&user, account.UserID).Error; err != nil {
		return fmt.Errorf("loading user %d: %v: %w", account.UserID, err, asynq.SkipRetry)
	}

	subject := "Withdrawal processed"
	body := fmt.Sprintf("Your withdrawal of %.2f was paid out.", p.Amount)
	if p.Status != models.WithdrawalSuccess {
		subject = "Withdrawal could not be processed"
		body = fmt.Sprintf("Your withdrawal of %.2f was declined and the amount has been returned to your balance.", p.Amount)
	}
	return w.Sender.Send(user.Email, subject, body)
}

func StartWorker(redisOpt asynq.RedisClientOpt, db *gorm.DB, sender *MailSender) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	worker := NewWorker(db, sender)
	mux := asynq.NewServeMux()

	mux.HandleFunc(services.TypePurchaseConfirmation, worker.HandlePurchaseConfirmation)
	mux.HandleFunc(services.TypeWithdrawalDecision, worker.HandleWithdrawalDecision)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run worker: %v", err)
	}
}
