package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"testing"

	"edustore-service/internal/models"
	"edustore-service/pkg/common"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func setup() {
	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Printf("Failed to open test database: %v", err)
		return
	}
	if sqlDB, err := testDB.DB(); err == nil {
		// One connection so every session sees the same in-memory database.
		sqlDB.SetMaxOpenConns(1)
	}

	testDB.AutoMigrate(
		&models.User{}, &models.TempUser{}, &models.Account{},
		&models.Course{}, &models.EBook{}, &models.Coupon{},
		&models.AffiliateLink{}, &models.AffiliateLinkClick{}, &models.AffiliateLinkPurchase{},
		&models.PendingTransaction{}, &models.Purchase{}, &models.PaymentRecord{},
		&models.Withdrawal{}, &models.BankAccount{}, &models.UPIAccount{},
		&models.CallbackLog{}, &models.ArchivedCallbackLog{},
	)
}

func cleanup() {
	if testDB == nil {
		return
	}
	for _, table := range []string{
		"callback_logs", "archived_callback_logs",
		"payment_records", "purchases", "pending_transactions",
		"affiliate_link_purchases", "affiliate_link_clicks", "affiliate_links",
		"withdrawals", "bank_accounts", "upi_accounts",
		"accounts", "temp_users", "users",
		"coupons", "courses", "e_books",
	} {
		testDB.Exec("DELETE FROM " + table)
	}
}

// fakeGateway stands in for Razorpay: orders get predictable ids and the
// literal signature "valid" passes verification.
type fakeGateway struct {
	orders int
	fail   bool
}

func (g *fakeGateway) CreateOrder(amount float64, currency, receipt string) (*GatewayOrder, error) {
	if g.fail {
		return nil, &GatewayError{StatusCode: 502, Body: "gateway down"}
	}
	g.orders++
	return &GatewayOrder{
		OrderID:  fmt.Sprintf("order_test_%d", g.orders),
		Amount:   amount,
		Currency: currency,
		KeyID:    "rzp_test_key",
	}, nil
}

func (g *fakeGateway) VerifySignature(payload []byte, signature string) bool {
	return signature == "valid"
}

func seedUser(t *testing.T, name string, balance float64) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "9999900000",
		Password: "$2a$10$notarealhashnotarealhashnotarea",
		RefCode:  common.ShortCode(),
	}
	if err := testDB.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	if err := testDB.Create(&models.Account{UserID: user.ID, Balance: balance, TotalEarnings: balance}).Error; err != nil {
		t.Fatalf("seeding account: %v", err)
	}
	return &user
}

func seedCourse(t *testing.T, price, commission float64) *models.Course {
	t.Helper()
	course := models.Course{
		Title:      "Test Course",
		Price:      price,
		Commission: commission,
		Visible:    true,
	}
	if err := testDB.Create(&course).Error; err != nil {
		t.Fatalf("seeding course: %v", err)
	}
	return &course
}

func accountOf(t *testing.T, userID int) models.Account {
	t.Helper()
	var account models.Account
	if err := testDB.Where("user_id = ?", userID).First(&account).Error; err != nil {
		t.Fatalf("loading account for user %d: %v", userID, err)
	}
	return account
}

// capturedBody builds a Razorpay payment.captured delivery for an order.
func capturedBody(orderID, email string, amountPaise int64) []byte {
	return eventBody("payment.captured", "captured", orderID, email, amountPaise)
}

func eventBody(event, status, orderID, email string, amountPaise int64) []byte {
	body := map[string]interface{}{
		"event": event,
		"payload": map[string]interface{}{
			"payment": map[string]interface{}{
				"entity": map[string]interface{}{
					"id":       "pay_" + orderID,
					"order_id": orderID,
					"status":   status,
					"method":   "upi",
					"email":    email,
					"contact":  "+919999900000",
					"currency": "INR",
					"amount":   amountPaise,
					"acquirer_data": map[string]interface{}{
						"rrn": "123456789012",
					},
					"upi": map[string]interface{}{
						"vpa": "buyer@upi",
					},
				},
			},
		},
	}
	data, _ := json.Marshal(body)
	return data
}

func newSettlementService() *SettlementService {
	return NewSettlementService(testDB, &fakeGateway{}, NewHelperService(testDB), nil)
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}
