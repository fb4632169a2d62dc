package services

import (
	"time"

	"edustore-service/internal/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type PayoutDetails struct {
	Bank *models.BankAccount `json:"bank,omitempty"`
	UPI  *models.UPIAccount  `json:"upi,omitempty"`
}

type AffiliateDashboard struct {
	Balance          float64              `json:"balance"`
	TotalEarnings    float64              `json:"total_earnings"`
	TotalClicks      int64                `json:"total_clicks"`
	TotalPurchases   int64                `json:"total_purchases"`
	ConversionRate   float64              `json:"conversion_rate"`
	ActiveLinks      int64                `json:"active_links"`
	MonthlyEarnings  []MonthlyAmount      `json:"monthly_earnings"`
	PendingWithdrawn float64              `json:"pending_withdrawn"`
	TotalWithdrawn   float64              `json:"total_withdrawn"`
	Withdrawals      []models.Withdrawal  `json:"withdrawals"`
	Payout           PayoutDetails        `json:"payout"`
}

// GetAffiliateDashboard aggregates the signed-in affiliate's performance.
// Conversion rate is all-time purchases over all-time clicks.
func (s *DashboardService) GetAffiliateDashboard(userID int) (*AffiliateDashboard, error) {
	dash := &AffiliateDashboard{MonthlyEarnings: []MonthlyAmount{}, Withdrawals: []models.Withdrawal{}}

	var account models.Account
	if err := s.DB.Where("user_id = ?", userID).First(&account).Error; err == nil {
		dash.Balance = account.Balance
		dash.TotalEarnings = account.TotalEarnings

		s.DB.Model(&models.Withdrawal{}).
			Where("account_id = ? AND status = ?", account.ID, models.WithdrawalPending).
			Select("COALESCE(SUM(amount), 0)").Scan(&dash.PendingWithdrawn)
		s.DB.Model(&models.Withdrawal{}).
			Where("account_id = ? AND status = ?", account.ID, models.WithdrawalSuccess).
			Select("COALESCE(SUM(amount), 0)").Scan(&dash.TotalWithdrawn)
		s.DB.Where("account_id = ?", account.ID).
			Order("created_at DESC").Limit(20).Find(&dash.Withdrawals)

		var bank models.BankAccount
		if s.DB.Where("account_id = ?", account.ID).First(&bank).Error == nil {
			dash.Payout.Bank = &bank
		}
		var upi models.UPIAccount
		if s.DB.Where("account_id = ?", account.ID).First(&upi).Error == nil {
			dash.Payout.UPI = &upi
		}
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	s.DB.Model(&models.AffiliateLink{}).Where("user_id = ?", userID).Count(&dash.ActiveLinks)
	s.DB.Model(&models.AffiliateLinkClick{}).
		Joins("JOIN affiliate_links ON affiliate_links.id = affiliate_link_clicks.link_id").
		Where("affiliate_links.user_id = ?", userID).Count(&dash.TotalClicks)
	s.DB.Model(&models.AffiliateLinkPurchase{}).
		Joins("JOIN affiliate_links ON affiliate_links.id = affiliate_link_purchases.link_id").
		Where("affiliate_links.user_id = ?", userID).Count(&dash.TotalPurchases)

	if dash.TotalClicks > 0 {
		dash.ConversionRate = float64(dash.TotalPurchases) / float64(dash.TotalClicks)
	}

	var rows []models.AffiliateLinkPurchase
	cutoff := monthStart(time.Now()).AddDate(0, -11, 0)
	if err := s.DB.
		Joins("JOIN affiliate_links ON affiliate_links.id = affiliate_link_purchases.link_id").
		Where("affiliate_links.user_id = ? AND affiliate_link_purchases.created_at >= ?", userID, cutoff).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	dash.MonthlyEarnings = bucketByMonth(rows, func(p models.AffiliateLinkPurchase) (time.Time, float64) {
		return p.CreatedAt, p.Amount
	})

	return dash, nil
}

type AdminDashboard struct {
	TotalUsers         int64           `json:"total_users"`
	TotalCourses       int64           `json:"total_courses"`
	TotalEbooks        int64           `json:"total_ebooks"`
	TotalSales         int64           `json:"total_sales"`
	TotalSalesAmount   float64         `json:"total_sales_amount"`
	PendingWithdrawals int64           `json:"pending_withdrawals"`
	SuccessWithdrawals int64           `json:"success_withdrawals"`
	FailedWithdrawals  int64           `json:"failed_withdrawals"`
	SalesByMonth       []MonthlyAmount `json:"sales_by_month"`
}

func (s *DashboardService) GetAdminDashboard() (*AdminDashboard, error) {
	dash := &AdminDashboard{SalesByMonth: []MonthlyAmount{}}

	s.DB.Model(&models.User{}).Count(&dash.TotalUsers)
	s.DB.Model(&models.Course{}).Count(&dash.TotalCourses)
	s.DB.Model(&models.EBook{}).Count(&dash.TotalEbooks)
	s.DB.Model(&models.Purchase{}).Count(&dash.TotalSales)
	s.DB.Model(&models.Purchase{}).Select("COALESCE(SUM(amount), 0)").Scan(&dash.TotalSalesAmount)

	s.DB.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalPending).Count(&dash.PendingWithdrawals)
	s.DB.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalSuccess).Count(&dash.SuccessWithdrawals)
	s.DB.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalFailed).Count(&dash.FailedWithdrawals)

	var purchases []models.Purchase
	cutoff := monthStart(time.Now()).AddDate(0, -11, 0)
	if err := s.DB.Where("created_at >= ?", cutoff).Find(&purchases).Error; err != nil {
		return nil, err
	}
	dash.SalesByMonth = bucketByMonth(purchases, func(p models.Purchase) (time.Time, float64) {
		return p.CreatedAt, p.Amount
	})

	return dash, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// bucketByMonth folds rows into 12 calendar-month buckets ending at the
// current month. Grouping happens in Go so the result does not depend on
// database-specific date functions.
func bucketByMonth[T any](rows []T, extract func(T) (time.Time, float64)) []MonthlyAmount {
	start := monthStart(time.Now()).AddDate(0, -11, 0)
	out := make([]MonthlyAmount, 12)
	index := make(map[string]int, 12)
	for i := 0; i < 12; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		out[i] = MonthlyAmount{Month: key}
		index[key] = i
	}
	for _, row := range rows {
		at, amount := extract(row)
		if i, ok := index[at.Format("2006-01")]; ok {
			out[i].Amount += amount
		}
	}
	return out
}
