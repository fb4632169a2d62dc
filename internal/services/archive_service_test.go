package services

import (
	"testing"
	"time"

	"edustore-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestArchiveCallbackLogs(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewArchiveService(testDB)

	old := models.CallbackLog{
		Request:       `{"event":"payment.captured"}`,
		TransactionID: "order_old",
		Provider:      "razorpay",
		CreatedAt:     time.Now().AddDate(0, 0, -120),
	}
	recent := models.CallbackLog{
		Request:       `{"event":"payment.captured"}`,
		TransactionID: "order_recent",
		Provider:      "razorpay",
	}
	testDB.Create(&old)
	testDB.Create(&recent)

	svc.ArchiveCallbackLogs()

	var live, archived int64
	testDB.Model(&models.CallbackLog{}).Count(&live)
	testDB.Model(&models.ArchivedCallbackLog{}).Count(&archived)
	assert.Equal(t, int64(1), live)
	assert.Equal(t, int64(1), archived)

	var row models.ArchivedCallbackLog
	testDB.First(&row)
	assert.Equal(t, "order_old", row.TransactionID)

	// Idempotent when nothing qualifies.
	svc.ArchiveCallbackLogs()
	testDB.Model(&models.ArchivedCallbackLog{}).Count(&archived)
	assert.Equal(t, int64(1), archived)
}
