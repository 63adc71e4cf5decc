package service

import (
	"time"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// NetWorthService aggregates liquid balances, informal debts and card
// debt into a net-worth figure and its daily reconstruction.
type NetWorthService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewNetWorthService(db *gorm.DB) *NetWorthService {
	return &NetWorthService{DB: db, now: time.Now}
}

// NetWorthBreakdown splits net worth into its asset and liability
// components. The abono reserve and investment positions are excluded
// on purpose: the reserve is earmarked for card payments and the
// portfolio is valued separately.
type NetWorthBreakdown struct {
	Assets struct {
		Liquid      float64 `json:"liquid"`
		Receivables float64 `json:"receivables"`
		Total       float64 `json:"total"`
	} `json:"assets"`
	Liabilities struct {
		CreditCards float64 `json:"credit_cards"`
		Payables    float64 `json:"payables"`
		Total       float64 `json:"total"`
	} `json:"liabilities"`
	NetWorth float64 `json:"net_worth"`
}

// Breakdown computes the current net-worth components.
func (s *NetWorthService) Breakdown() (*NetWorthBreakdown, error) {
	var b NetWorthBreakdown

	var accounts []models.Account
	if err := s.DB.Find(&accounts).Error; err != nil {
		return nil, storagef(err)
	}
	for _, acc := range accounts {
		if acc.IsCredit() {
			b.Liabilities.CreditCards += acc.CurrentBalance
		} else {
			b.Assets.Liquid += acc.CurrentBalance
		}
	}

	var ious []models.IOU
	if err := s.DB.Where("status = ?", models.IOUPending).Find(&ious).Error; err != nil {
		return nil, storagef(err)
	}
	for _, iou := range ious {
		switch iou.Type {
		case models.IOUReceivable:
			b.Assets.Receivables += iou.CurrentAmount
		case models.IOUPayable:
			b.Liabilities.Payables += iou.CurrentAmount
		}
	}

	b.Assets.Total = b.Assets.Liquid + b.Assets.Receivables
	b.Liabilities.Total = b.Liabilities.CreditCards + b.Liabilities.Payables
	b.NetWorth = b.Assets.Total - b.Liabilities.Total
	return &b, nil
}

// Current returns the single net-worth figure.
func (s *NetWorthService) Current() (float64, error) {
	b, err := s.Breakdown()
	if err != nil {
		return 0, err
	}
	return b.NetWorth, nil
}

// TrendPoint is one day of the reconstructed net-worth series.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// HistoricalTrend reconstructs daily net worth over [from, to]. The
// series anchors at today's value and walks backward through the daily
// net income (income minus expense per date), so the value at any past
// day is today's value minus the cumulative change after it. Days
// without transactions carry the previous value, and days after today
// stay flat at the current value.
func (s *NetWorthService) HistoricalTrend(from, to string) ([]TrendPoint, error) {
	if !validDate(from) {
		return nil, Validationf("from must be YYYY-MM-DD, got %q", from)
	}
	if !validDate(to) {
		return nil, Validationf("to must be YYYY-MM-DD, got %q", to)
	}
	start, _ := time.Parse(dateLayout, from)
	end, _ := time.Parse(dateLayout, to)
	if end.Before(start) {
		return nil, Validationf("range end %s precedes start %s", to, from)
	}

	current, err := s.Current()
	if err != nil {
		return nil, err
	}

	type dailyRow struct {
		Date string
		Net  float64
	}
	var rows []dailyRow
	err = s.DB.Model(&models.Transaction{}).
		Select("date, SUM(CASE WHEN kind = ? THEN amount ELSE -amount END) AS net", models.TxIncome).
		Group("date").
		Scan(&rows).Error
	if err != nil {
		return nil, storagef(err)
	}
	netByDay := make(map[string]float64, len(rows))
	for _, r := range rows {
		netByDay[r.Date] = r.Net
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	valueByDay := make(map[string]float64)
	value := current
	for d := today; !d.Before(start); d = d.AddDate(0, 0, -1) {
		key := dayString(d)
		valueByDay[key] = value
		value -= netByDay[key]
	}

	points := make([]TrendPoint, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		v := current // days past today hold the present value
		if !d.After(today) {
			v = valueByDay[dayString(d)]
		}
		points = append(points, TrendPoint{Date: dayString(d), Value: v})
	}
	return points, nil
}
