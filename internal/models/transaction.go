package models

// Transaction kinds.
const (
	TxIncome  = "Income"
	TxExpense = "Expense"
)

// Transaction is a single income or expense against one account.
// Dates are stored as ISO strings (YYYY-MM-DD).
type Transaction struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Date        string  `gorm:"size:10;index;not null" json:"date"`
	Name        string  `gorm:"size:128;not null" json:"name"`
	Amount      float64 `gorm:"not null" json:"amount"` // always > 0, polarity comes from Kind
	Category    string  `gorm:"size:64;not null" json:"category"`
	Subcategory string  `gorm:"size:64" json:"subcategory"`
	Kind        string  `gorm:"column:kind;size:16;index;not null" json:"kind"`
	AccountID   uint    `gorm:"index;not null" json:"account_id"`
}
