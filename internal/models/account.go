package models

import "time"

// Account kinds. For Credit accounts CurrentBalance holds outstanding
// debt (positive in normal use); for Debit/Cash it is signed cash.
const (
	AccountDebit  = "Debit"
	AccountCash   = "Cash"
	AccountCredit = "Credit"
)

// Account represents a bank account, cash pocket or credit card.
type Account struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:64;not null" json:"name"`
	Kind            string    `gorm:"column:kind;size:16;index;not null" json:"kind"`
	CurrentBalance  float64   `gorm:"not null;default:0" json:"current_balance"`
	BankName        string    `gorm:"size:64;default:-" json:"bank_name"`
	CreditLimit     float64   `gorm:"default:0" json:"credit_limit"`
	PaymentDay      int       `gorm:"default:0" json:"payment_day"` // day of month, 0 = unset
	CutoffDay       int       `gorm:"default:0" json:"cutoff_day"`
	InterestRate    float64   `gorm:"default:0" json:"interest_rate"` // annual %
	DisplayOrder    int       `gorm:"index;default:0" json:"display_order"`
	DeferredBalance float64   `gorm:"default:0" json:"deferred_balance"` // reserved
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// IsCredit reports whether the account is a credit card.
func (a *Account) IsCredit() bool { return a.Kind == AccountCredit }
