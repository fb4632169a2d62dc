package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"edustore-service/internal/models"

	"gorm.io/gorm"
)

type ArchiveService struct {
	DB *gorm.DB
}

func NewArchiveService(db *gorm.DB) *ArchiveService {
	return &ArchiveService{DB: db}
}

// ArchiveCallbackLogs moves webhook audit rows older than 90 days into the
// archive table in one atomic batch.
func (s *ArchiveService) ArchiveCallbackLogs() {
	log.Println("Starting callback log archive process...")

	cutoff := time.Now().AddDate(0, 0, -90)

	var oldLogs []models.CallbackLog
	if err := s.DB.Where("created_at < ?", cutoff).Find(&oldLogs).Error; err != nil {
		log.Printf("Error finding old callback logs: %v", err)
		return
	}

	if len(oldLogs) == 0 {
		log.Println("No callback logs to archive")
		return
	}

	archived := make([]models.ArchivedCallbackLog, 0, len(oldLogs))
	for _, cb := range oldLogs {
		archived = append(archived, models.ArchivedCallbackLog{
			Request:       cb.Request,
			Response:      cb.Response,
			Status:        cb.Status,
			RequestType:   cb.RequestType,
			TransactionID: cb.TransactionID,
			Provider:      cb.Provider,
			CreatedAt:     cb.CreatedAt,
		})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		ids := make([]uint, len(oldLogs))
		for i, cb := range oldLogs {
			ids[i] = cb.ID
		}
		return tx.Delete(&models.CallbackLog{}, ids).Error
	})

	if err != nil {
		log.Printf("Error during callback log archiving: %v", err)
	} else {
		log.Printf("Archived and removed %d callback logs.", len(oldLogs))
	}
}

// StartScheduler runs the archive sweep daily at midnight.
func (s *ArchiveService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		s.ArchiveCallbackLogs()
	})
	if err != nil {
		log.Printf("Error scheduling archive task: %v", err)
		return
	}
	c.Start()
	log.Println("Callback Log Archive Scheduler started (Daily at 00:00)")
}
