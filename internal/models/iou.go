package models

// IOU types and statuses.
const (
	IOUReceivable = "Receivable"
	IOUPayable    = "Payable"

	IOUPending = "Pending"
	IOUPaid    = "Paid"
)

// IOU is an informal debt or receivable not booked against a bank
// account. Status is Paid exactly when CurrentAmount reaches zero.
type IOU struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:128;not null" json:"name"`
	Amount        float64 `gorm:"not null" json:"amount"` // original amount
	Type          string  `gorm:"size:16;index;not null" json:"type"`
	CurrentAmount float64 `gorm:"not null" json:"current_amount"`
	DateCreated   string  `gorm:"size:10" json:"date_created"`
	DueDate       string  `gorm:"size:10" json:"due_date"`
	Status        string  `gorm:"size:16;index;default:Pending" json:"status"`
	PersonName    string  `gorm:"size:64" json:"person_name"`
	Description   string  `gorm:"size:255" json:"description"`
}

// TableName keeps the historical singular table name.
func (IOU) TableName() string { return "iou" }
