package services

import (
	"testing"

	"edustore-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func newCheckoutService(gateway OrderGateway) *CheckoutService {
	users := NewUserService(testDB, "test-secret")
	catalog := NewCatalogService(testDB)
	return NewCheckoutService(testDB, catalog, users, gateway)
}

func TestCheckout_ExistingBuyerWithCoupon(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newCheckoutService(&fakeGateway{})
	course := seedCourse(t, 1000, 200)
	buyer := seedUser(t, "buyer", 0)
	referrer := seedUser(t, "referrer", 0)

	testDB.Create(&models.Coupon{
		Code:          "SAVE10",
		Type:          models.CouponPercentage,
		Discount:      10,
		RemainingUses: 5,
	})

	order, err := svc.Checkout(CheckoutDTO{
		ItemID:          course.ID,
		ItemType:        models.ItemTypeCourse,
		ReferrerRefCode: referrer.RefCode,
		CouponCode:      "SAVE10",
		BuyerRefCode:    buyer.RefCode,
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	assert.Equal(t, 900.0, order.Amount)

	var pending models.PendingTransaction
	if err := testDB.Where("transaction_id = ?", order.OrderID).First(&pending).Error; err != nil {
		t.Fatalf("pending transaction not staged: %v", err)
	}
	assert.Equal(t, buyer.ID, *pending.BuyerUserID)
	assert.Equal(t, referrer.ID, *pending.ReferrerUserID)
	assert.False(t, pending.IsNewBuyer)
	assert.Equal(t, 1000.0, pending.Amount)
	assert.Equal(t, 100.0, pending.Discount)
	assert.Equal(t, models.CouponPercentage, pending.CouponType)
}

func TestCheckout_NewBuyerStagesTempUser(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newCheckoutService(&fakeGateway{})
	course := seedCourse(t, 500, 100)

	order, err := svc.Checkout(CheckoutDTO{
		ItemID:   course.ID,
		ItemType: models.ItemTypeCourse,
		Name:     "New Buyer",
		Email:    "newbuyer@example.com",
		Phone:    "7777700000",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	var temp models.TempUser
	if err := testDB.Where("email = ?", "newbuyer@example.com").First(&temp).Error; err != nil {
		t.Fatalf("temp user not staged: %v", err)
	}
	assert.NotEqual(t, "hunter2hunter2", temp.Password)

	var pending models.PendingTransaction
	testDB.Where("transaction_id = ?", order.OrderID).First(&pending)
	assert.True(t, pending.IsNewBuyer)
	assert.Equal(t, temp.ID, *pending.BuyerUserID)

	// No permanent user exists until the payment settles.
	var users int64
	testDB.Model(&models.User{}).Where("email = ?", "newbuyer@example.com").Count(&users)
	assert.Equal(t, int64(0), users)
}

func TestCheckout_ValidationErrors(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newCheckoutService(&fakeGateway{})
	course := seedCourse(t, 500, 100)
	buyer := seedUser(t, "buyer", 0)

	_, err := svc.Checkout(CheckoutDTO{ItemID: 9999, ItemType: models.ItemTypeCourse, BuyerRefCode: buyer.RefCode})
	assert.Equal(t, ErrItemNotFound, err)

	_, err = svc.Checkout(CheckoutDTO{ItemID: course.ID, ItemType: models.ItemTypeCourse, ReferrerRefCode: "nope", BuyerRefCode: buyer.RefCode})
	assert.Equal(t, ErrReferrerNotFound, err)

	// Buying through your own referral link is rejected.
	_, err = svc.Checkout(CheckoutDTO{ItemID: course.ID, ItemType: models.ItemTypeCourse, ReferrerRefCode: buyer.RefCode, BuyerRefCode: buyer.RefCode})
	assert.Equal(t, ErrSelfReferral, err)

	// A guest checkout with an already-registered email must log in instead.
	_, err = svc.Checkout(CheckoutDTO{ItemID: course.ID, ItemType: models.ItemTypeCourse, Name: "x", Email: buyer.Email, Password: "pw"})
	assert.Equal(t, ErrEmailAlreadyRegistered, err)

	// No staging rows leaked from the failed attempts.
	var pendingCount int64
	testDB.Model(&models.PendingTransaction{}).Count(&pendingCount)
	assert.Equal(t, int64(0), pendingCount)
}

func TestCheckout_GatewayFailureStagesNothing(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newCheckoutService(&fakeGateway{fail: true})
	course := seedCourse(t, 500, 100)
	buyer := seedUser(t, "buyer", 0)

	_, err := svc.Checkout(CheckoutDTO{ItemID: course.ID, ItemType: models.ItemTypeCourse, BuyerRefCode: buyer.RefCode})
	gatewayErr, ok := err.(*GatewayError)
	if !ok {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	assert.Equal(t, 502, gatewayErr.StatusCode)

	var pendingCount int64
	testDB.Model(&models.PendingTransaction{}).Count(&pendingCount)
	assert.Equal(t, int64(0), pendingCount)
}

func TestGetCheckoutPage_RejectsRepeatPurchase(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newCheckoutService(&fakeGateway{})
	course := seedCourse(t, 500, 100)
	buyer := seedUser(t, "buyer", 0)
	referrer := seedUser(t, "referrer", 0)

	page, err := svc.GetCheckoutPage(course.ID, models.ItemTypeCourse, buyer.RefCode, referrer.RefCode)
	assert.Nil(t, err)
	assert.Equal(t, referrer.ID, page.Referrer.ID)

	testDB.Create(&models.Purchase{
		BuyerUserID: &buyer.ID,
		ItemID:      course.ID,
		ItemType:    models.ItemTypeCourse,
		Amount:      500,
	})

	_, err = svc.GetCheckoutPage(course.ID, models.ItemTypeCourse, buyer.RefCode, referrer.RefCode)
	assert.Equal(t, ErrDuplicatePurchase, err)
}

func TestGetCheckoutPage_SurfacesPurchaseLookupError(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newCheckoutService(&fakeGateway{})
	course := seedCourse(t, 500, 100)
	buyer := seedUser(t, "buyer", 0)
	referrer := seedUser(t, "referrer", 0)

	// Break the duplicate lookup. A failed read must abort the checkout,
	// not pass as "no prior purchase".
	if err := testDB.Migrator().DropTable(&models.Purchase{}); err != nil {
		t.Fatalf("dropping purchases table: %v", err)
	}
	defer func() {
		if err := testDB.AutoMigrate(&models.Purchase{}); err != nil {
			t.Fatalf("restoring purchases table: %v", err)
		}
	}()

	_, err := svc.GetCheckoutPage(course.ID, models.ItemTypeCourse, buyer.RefCode, referrer.RefCode)
	assert.NotNil(t, err)
	assert.NotEqual(t, ErrDuplicatePurchase, err)
}

func TestPaymentStatus(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newCheckoutService(&fakeGateway{})

	assert.Equal(t, "unknown", svc.PaymentStatus("order_missing"))

	testDB.Create(&models.PendingTransaction{
		TransactionID: "order_status_1",
		ItemID:        1,
		ItemType:      models.ItemTypeCourse,
		Amount:        100,
	})
	assert.Equal(t, "pending", svc.PaymentStatus("order_status_1"))

	testDB.Create(&models.PaymentRecord{OrderID: "order_status_2", Status: "captured"})
	assert.Equal(t, "settled", svc.PaymentStatus("order_status_2"))

	testDB.Create(&models.PaymentRecord{OrderID: "order_status_3", Status: "failed"})
	assert.Equal(t, "failed", svc.PaymentStatus("order_status_3"))
}
