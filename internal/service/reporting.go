package service

import (
	"sort"
	"strconv"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// ReportingService serves the read-only composites behind dashboard
// charts. Every query drops zero buckets.
type ReportingService struct {
	DB *gorm.DB
}

func NewReportingService(db *gorm.DB) *ReportingService {
	return &ReportingService{DB: db}
}

// CategoryTotal is a per-category movement total split by kind.
type CategoryTotal struct {
	Category string  `json:"category"`
	Kind     string  `json:"kind"`
	Total    float64 `json:"total"`
}

// CategorySummary totals transactions per category and kind over
// Debit and Cash accounts only; card movements carry their own views.
func (s *ReportingService) CategorySummary() ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := s.DB.Model(&models.Transaction{}).
		Select("transactions.category AS category, transactions.kind AS kind, SUM(transactions.amount) AS total").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.kind IN ?", []string{models.AccountDebit, models.AccountCash}).
		Group("transactions.category, transactions.kind").
		Having("SUM(transactions.amount) <> 0").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, storagef(err)
	}
	return rows, nil
}

// ExpenseByCategory totals expenses per category across all accounts.
func (s *ReportingService) ExpenseByCategory() ([]NamedValue, error) {
	var rows []NamedValue
	err := s.DB.Model(&models.Transaction{}).
		Select("category AS name, SUM(amount) AS value").
		Where("kind = ?", models.TxExpense).
		Group("category").
		Having("SUM(amount) > 0").
		Order("value DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, storagef(err)
	}
	return rows, nil
}

// BankSummary totals positive Debit/Cash balances per bank.
func (s *ReportingService) BankSummary() ([]NamedValue, error) {
	return s.accountGrouping("bank_name")
}

// AccountNameSummary totals positive Debit/Cash balances per account.
func (s *ReportingService) AccountNameSummary() ([]NamedValue, error) {
	return s.accountGrouping("name")
}

// AccountKindSummary totals positive balances per kind (Debit, Cash).
func (s *ReportingService) AccountKindSummary() ([]NamedValue, error) {
	return s.accountGrouping("kind")
}

func (s *ReportingService) accountGrouping(column string) ([]NamedValue, error) {
	var rows []NamedValue
	err := s.DB.Model(&models.Account{}).
		Select(column+" AS name, SUM(current_balance) AS value").
		Where("kind IN ?", []string{models.AccountDebit, models.AccountCash}).
		Group(column).
		Having("SUM(current_balance) > 0").
		Order("value DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, storagef(err)
	}
	return rows, nil
}

// AccountTypeSummary is the assets-versus-liabilities widget: liquid
// money plus the reserve against card debt, informal payables and the
// part of the debt not already covered by installment plans.
type AccountTypeSummary struct {
	TotalAssets      float64 `json:"total_assets"`
	LiquidAssets     float64 `json:"liquid_assets"`
	ReserveAssets    float64 `json:"reserve_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	InstallmentsDebt float64 `json:"installments_debt"`
	ImmediateDebt    float64 `json:"immediate_debt"`
}

func (s *ReportingService) AccountTypeSummary() (*AccountTypeSummary, error) {
	var out AccountTypeSummary

	var accounts []models.Account
	if err := s.DB.Find(&accounts).Error; err != nil {
		return nil, storagef(err)
	}
	var cardDebt float64
	for _, acc := range accounts {
		if acc.IsCredit() {
			cardDebt += acc.CurrentBalance
		} else {
			out.LiquidAssets += acc.CurrentBalance
		}
	}

	reserve, err := NewReserveService(s.DB).Get()
	if err != nil {
		return nil, err
	}
	out.ReserveAssets = reserve
	out.TotalAssets = out.LiquidAssets + reserve

	var payables float64
	err = s.DB.Model(&models.IOU{}).
		Where("status = ? AND type = ?", models.IOUPending, models.IOUPayable).
		Select("COALESCE(SUM(current_amount), 0)").Scan(&payables).Error
	if err != nil {
		return nil, storagef(err)
	}

	credit, err := NewCreditService(s.DB).Summary()
	if err != nil {
		return nil, err
	}
	out.InstallmentsDebt = credit.TotalInstallments
	out.TotalLiabilities = cardDebt + payables
	out.ImmediateDebt = out.TotalLiabilities - out.InstallmentsDebt
	if out.ImmediateDebt < 0 {
		out.ImmediateDebt = 0
	}
	return &out, nil
}

// MonthlyFlow is one month of cash flow for one transaction kind.
type MonthlyFlow struct {
	Month string  `json:"month"` // YYYY-MM
	Kind  string  `json:"kind"`
	Total float64 `json:"total"`
}

// MonthlySummary totals income and expense per calendar month.
func (s *ReportingService) MonthlySummary() ([]MonthlyFlow, error) {
	var rows []MonthlyFlow
	err := s.DB.Model(&models.Transaction{}).
		Select("substr(date, 1, 7) AS month, kind, SUM(amount) AS total").
		Group("substr(date, 1, 7), kind").
		Having("SUM(amount) <> 0").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storagef(err)
	}
	return rows, nil
}

// InformalSummary totals open informal debt on both sides.
type InformalSummary struct {
	Payables    float64 `json:"payables"`
	Receivables float64 `json:"receivables"`
}

func (s *ReportingService) InformalSummary() (*InformalSummary, error) {
	var ious []models.IOU
	err := s.DB.Where("status = ? AND current_amount > 0", models.IOUPending).Find(&ious).Error
	if err != nil {
		return nil, storagef(err)
	}
	var out InformalSummary
	for _, iou := range ious {
		switch iou.Type {
		case models.IOUPayable:
			out.Payables += iou.CurrentAmount
		case models.IOUReceivable:
			out.Receivables += iou.CurrentAmount
		}
	}
	return &out, nil
}

// FullDebtSummary consolidates informal debt with the net exigible
// card debt into one exposure figure.
type FullDebtSummary struct {
	InformalDebt        float64 `json:"informal_debt"`
	InformalCollectible float64 `json:"informal_collectible"`
	CreditExigibleNet   float64 `json:"credit_exigible_net"`
	TotalGrossDebt      float64 `json:"total_gross_debt"`
	NetExposure         float64 `json:"net_exposure"`
	InformalNetBalance  float64 `json:"informal_net_balance"`
}

func (s *ReportingService) FullDebtSummary() (*FullDebtSummary, error) {
	informal, err := s.InformalSummary()
	if err != nil {
		return nil, err
	}
	exigible, err := NewCreditService(s.DB).NetExigible()
	if err != nil {
		return nil, err
	}
	out := FullDebtSummary{
		InformalDebt:        informal.Payables,
		InformalCollectible: informal.Receivables,
		CreditExigibleNet:   exigible,
	}
	out.TotalGrossDebt = out.InformalDebt + out.CreditExigibleNet
	out.NetExposure = out.TotalGrossDebt - out.InformalCollectible
	out.InformalNetBalance = out.InformalCollectible - out.InformalDebt
	return &out, nil
}

// sortedNamedValues flattens a bucket map into a value-descending
// slice for chart consumption.
func sortedNamedValues(buckets map[string]float64) []NamedValue {
	out := make([]NamedValue, 0, len(buckets))
	for name, value := range buckets {
		if value == 0 {
			continue
		}
		out = append(out, NamedValue{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// trimFloat renders a float without trailing zeros for labels.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
