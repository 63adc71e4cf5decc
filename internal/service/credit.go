package service

import (
	"time"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// CreditService derives credit-card exposure: aggregate limits and
// debt, installment coverage, and the exigible portion net of the
// abono reserve.
type CreditService struct {
	DB *gorm.DB

	// now is swappable so payment-date math can be pinned in tests.
	now func() time.Time
}

func NewCreditService(db *gorm.DB) *CreditService {
	return &CreditService{DB: db, now: time.Now}
}

// CreditSummary aggregates exposure over every credit card.
type CreditSummary struct {
	TotalLimit        float64 `json:"total_limit"`
	TotalDebt         float64 `json:"total_debt"`
	TotalInstallments float64 `json:"total_installments"`
	ExigibleGross     float64 `json:"exigible_gross"`
	ExigibleNet       float64 `json:"exigible_net"`
	Reserve           float64 `json:"reserve"`
}

// Summary computes the portfolio-wide exposure numbers. Exigible debt
// is the card debt not covered by installment plans, floored at zero,
// and the net figure subtracts the abono reserve with the same floor.
func (s *CreditService) Summary() (*CreditSummary, error) {
	var cards []models.Account
	if err := s.DB.Where("kind = ?", models.AccountCredit).Find(&cards).Error; err != nil {
		return nil, storagef(err)
	}
	sum := CreditSummary{}
	for _, c := range cards {
		sum.TotalLimit += c.CreditLimit
		sum.TotalDebt += c.CurrentBalance
	}

	var plans []models.Installment
	if err := s.DB.Find(&plans).Error; err != nil {
		return nil, storagef(err)
	}
	for i := range plans {
		sum.TotalInstallments += PlanPending(&plans[i])
	}

	var reserve models.AbonoReserve
	if err := s.DB.First(&reserve, 1).Error; err == nil {
		sum.Reserve = reserve.Balance
	}

	sum.ExigibleGross = sum.TotalDebt - sum.TotalInstallments
	if sum.ExigibleGross < 0 {
		sum.ExigibleGross = 0
	}
	sum.ExigibleNet = sum.ExigibleGross - sum.Reserve
	if sum.ExigibleNet < 0 {
		sum.ExigibleNet = 0
	}
	return &sum, nil
}

// NetExigible is the single figure the dashboard headline shows.
func (s *CreditService) NetExigible() (float64, error) {
	sum, err := s.Summary()
	if err != nil {
		return 0, err
	}
	return sum.ExigibleNet, nil
}

// CardView is one credit card with its derived per-card numbers.
type CardView struct {
	models.Account
	Available       float64 `json:"available"`
	PlanPending     float64 `json:"plan_pending"`
	PayableNow      float64 `json:"payable_now"`
	NextPaymentDate string  `json:"next_payment_date,omitempty"`
}

// Cards lists every credit card with availability, the debt covered by
// its plans, the immediately payable remainder and the next payment
// date derived from payment_day.
func (s *CreditService) Cards() ([]CardView, error) {
	var cards []models.Account
	if err := s.DB.Where("kind = ?", models.AccountCredit).
		Order("display_order ASC").Find(&cards).Error; err != nil {
		return nil, storagef(err)
	}
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		var plans []models.Installment
		if err := s.DB.Where("account_id = ?", c.ID).Find(&plans).Error; err != nil {
			return nil, storagef(err)
		}
		view := CardView{Account: c, Available: c.CreditLimit - c.CurrentBalance}
		for i := range plans {
			view.PlanPending += PlanPending(&plans[i])
		}
		view.PayableNow = c.CurrentBalance - view.PlanPending
		if view.PayableNow < 0 {
			view.PayableNow = 0
		}
		if c.PaymentDay >= 1 && c.PaymentDay <= 31 {
			view.NextPaymentDate = dayString(nextPaymentDate(s.now(), c.PaymentDay))
		}
		views = append(views, view)
	}
	return views, nil
}

// nextPaymentDate finds the next date on or after now whose day of
// month equals day, clamping to the month's last day when day exceeds
// the month length.
func nextPaymentDate(now time.Time, day int) time.Time {
	year, month := now.Year(), now.Month()
	clamp := func(y int, m time.Month) time.Time {
		d := day
		if last := daysInMonth(y, m); d > last {
			d = last
		}
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}
	today := time.Date(year, month, now.Day(), 0, 0, 0, 0, now.Location())
	candidate := clamp(year, month)
	if candidate.Before(today) {
		next := time.Date(year, month, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
		candidate = clamp(next.Year(), next.Month())
	}
	return candidate
}
