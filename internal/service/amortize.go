package service

import (
	"github.com/danielalasn/pivot/internal/models"

	"github.com/shopspring/decimal"
)

// Quota returns the fixed monthly payment for an installment plan
// under the French amortization method (monthly compounded rate).
// A zero rate, or a degenerate denominator, falls back to
// straight-line division of the principal.
func Quota(principal, annualRate float64, totalQuotas int) float64 {
	if totalQuotas <= 0 {
		return 0
	}
	if annualRate <= 0 {
		return principal / float64(totalQuotas)
	}

	p := decimal.NewFromFloat(principal)
	// monthly rate i = r / 12 / 100
	i := decimal.NewFromFloat(annualRate).Div(decimal.NewFromInt(1200))
	one := decimal.NewFromInt(1)
	pow := one.Add(i).Pow(decimal.NewFromInt(int64(totalQuotas)))
	den := pow.Sub(one)
	if den.IsZero() {
		return principal / float64(totalQuotas)
	}
	q, _ := p.Mul(i).Mul(pow).Div(den).Float64()
	return q
}

// PendingBalance returns the remaining debt of a plan: quota times the
// quotas not yet paid.
func PendingBalance(principal, annualRate float64, totalQuotas, paidQuotas int) float64 {
	remaining := totalQuotas - paidQuotas
	if remaining < 0 {
		remaining = 0
	}
	return Quota(principal, annualRate, totalQuotas) * float64(remaining)
}

// TotalWithInterest returns the full cost of the plan over its life.
func TotalWithInterest(principal, annualRate float64, totalQuotas int) float64 {
	return Quota(principal, annualRate, totalQuotas) * float64(totalQuotas)
}

// PlanPending is PendingBalance applied to a stored plan.
func PlanPending(inst *models.Installment) float64 {
	return PendingBalance(inst.TotalAmount, inst.InterestRate, inst.TotalQuotas, inst.PaidQuotas)
}
