package models

// AbonoReserve is a single-row table holding the pool set aside to pay
// credit cards. It nets against exigible debt but is not part of net
// worth. The row always has ID 1.
type AbonoReserve struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Balance float64 `gorm:"default:0" json:"balance"`
}

// TableName keeps the historical singular table name.
func (AbonoReserve) TableName() string { return "abono_reserve" }
