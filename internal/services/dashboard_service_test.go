package services

import (
	"testing"

	"edustore-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestGetAffiliateDashboard(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewDashboardService(testDB)
	affiliates := newAffiliateService()
	course := seedCourse(t, 1000, 250)
	referrer := seedUser(t, "referrer", 0)
	buyer := seedUser(t, "buyer", 0)

	// Four clicks, one settled sale: 25% conversion.
	for i := 0; i < 4; i++ {
		if _, err := affiliates.RecordClick(referrer.RefCode, course.ID, models.ItemTypeCourse); err != nil {
			t.Fatalf("RecordClick failed: %v", err)
		}
	}

	settlement := newSettlementService()
	stagePending(t, "order_dash_1", buyer.ID, &referrer.ID, course.ID, 1000)
	if _, err := settlement.HandleWebhook(capturedBody("order_dash_1", buyer.Email, 100000), "valid"); err != nil {
		t.Fatalf("settlement failed: %v", err)
	}

	withdrawals := NewWithdrawalService(testDB, nil)
	if _, err := withdrawals.RequestWithdrawal(WithdrawRequestDTO{
		UserID: referrer.ID, Amount: 100, Destination: "upi", UPIID: "referrer@upi",
	}); err != nil {
		t.Fatalf("RequestWithdrawal failed: %v", err)
	}

	dash, err := svc.GetAffiliateDashboard(referrer.ID)
	if err != nil {
		t.Fatalf("GetAffiliateDashboard failed: %v", err)
	}

	assert.Equal(t, 150.0, dash.Balance)
	assert.Equal(t, 250.0, dash.TotalEarnings)
	assert.Equal(t, int64(4), dash.TotalClicks)
	assert.Equal(t, int64(1), dash.TotalPurchases)
	assert.Equal(t, 0.25, dash.ConversionRate)
	assert.Equal(t, int64(1), dash.ActiveLinks)
	assert.Equal(t, 100.0, dash.PendingWithdrawn)
	assert.Len(t, dash.Withdrawals, 1)
	assert.NotNil(t, dash.Payout.UPI)
	assert.Nil(t, dash.Payout.Bank)

	// This month's bucket carries the commission.
	assert.Len(t, dash.MonthlyEarnings, 12)
	assert.Equal(t, 250.0, dash.MonthlyEarnings[11].Amount)
}

func TestGetAffiliateDashboard_NoActivity(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewDashboardService(testDB)
	user := seedUser(t, "quiet", 0)

	dash, err := svc.GetAffiliateDashboard(user.ID)
	assert.Nil(t, err)
	assert.Equal(t, 0.0, dash.ConversionRate)
	assert.Equal(t, int64(0), dash.TotalClicks)
	assert.Len(t, dash.MonthlyEarnings, 12)
}

func TestGetAdminDashboard(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewDashboardService(testDB)
	course := seedCourse(t, 1000, 250)
	referrer := seedUser(t, "referrer", 0)
	buyer := seedUser(t, "buyer", 0)

	settlement := newSettlementService()
	stagePending(t, "order_admin_1", buyer.ID, &referrer.ID, course.ID, 1000)
	if _, err := settlement.HandleWebhook(capturedBody("order_admin_1", buyer.Email, 100000), "valid"); err != nil {
		t.Fatalf("settlement failed: %v", err)
	}

	withdrawals := NewWithdrawalService(testDB, nil)
	w, _ := withdrawals.RequestWithdrawal(WithdrawRequestDTO{
		UserID: referrer.ID, Amount: 100, Destination: "upi", UPIID: "referrer@upi",
	})
	withdrawals.ResolveWithdrawal(ResolveWithdrawalDTO{WithdrawalID: w.ID, Status: models.WithdrawalSuccess})

	dash, err := svc.GetAdminDashboard()
	if err != nil {
		t.Fatalf("GetAdminDashboard failed: %v", err)
	}

	assert.Equal(t, int64(2), dash.TotalUsers)
	assert.Equal(t, int64(1), dash.TotalCourses)
	assert.Equal(t, int64(1), dash.TotalSales)
	assert.Equal(t, 1000.0, dash.TotalSalesAmount)
	assert.Equal(t, int64(1), dash.SuccessWithdrawals)
	assert.Equal(t, int64(0), dash.PendingWithdrawals)
	assert.Len(t, dash.SalesByMonth, 12)
	assert.Equal(t, 1000.0, dash.SalesByMonth[11].Amount)
}
