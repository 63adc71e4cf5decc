package models

// Installment is a credit-card purchase paid in quotas. The pending
// debt of a plan is always derived (see service.Quota), never stored.
type Installment struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	AccountID    uint    `gorm:"index;not null" json:"account_id"` // must be a Credit account
	Name         string  `gorm:"size:128;not null" json:"name"`
	TotalAmount  float64 `gorm:"not null" json:"total_amount"`  // principal
	InterestRate float64 `gorm:"default:0" json:"interest_rate"` // annual %
	TotalQuotas  int     `gorm:"not null" json:"total_quotas"`
	PaidQuotas   int     `gorm:"default:0" json:"paid_quotas"`
	PaymentDay   int     `gorm:"default:0" json:"payment_day"`
}
