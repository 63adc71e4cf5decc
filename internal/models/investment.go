package models

// Asset types as stored in the investments table.
const (
	AssetStock       = "Stock"
	AssetETF         = "ETF"
	AssetCryptoForex = "CRYPTO_FOREX"
	AssetOther       = "Other"
)

// Trade types.
const (
	TradeBuy  = "Buy"
	TradeSell = "Sell"
)

// Investment is a currently held position. AvgPrice is the weighted
// average cost, recomputed on every buy and preserved on sells.
type Investment struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Ticker          string  `gorm:"size:32;index;not null" json:"ticker"`
	Shares          float64 `gorm:"not null" json:"shares"` // fractional, up to 5 decimals
	AvgPrice        float64 `gorm:"default:0" json:"avg_price"`
	TotalInvestment float64 `gorm:"default:0" json:"total_investment"`
	AssetType       string  `gorm:"size:16;default:Stock" json:"asset_type"`
	AccountID       *uint   `json:"account_id"`
	DisplayOrder    int     `gorm:"default:0" json:"display_order"`
}

// InvestmentTransaction is one row of trade history. For buys
// AvgCostAtTrade holds the position cost after the trade and
// RealizedPL is zero; for sells it holds the cost the trade was
// executed against and RealizedPL the (price - cost) * shares gain.
type InvestmentTransaction struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Date             string  `gorm:"size:10;index;not null" json:"date"`
	Ticker           string  `gorm:"size:32;index;not null" json:"ticker"`
	Type             string  `gorm:"size:8;index;not null" json:"type"` // Buy / Sell
	Shares           float64 `gorm:"not null" json:"shares"`
	Price            float64 `gorm:"not null" json:"price"`
	TotalTransaction float64 `gorm:"not null" json:"total_transaction"`
	AvgCostAtTrade   float64 `gorm:"default:0" json:"avg_cost_at_trade"`
	RealizedPL       float64 `gorm:"column:realized_pl;default:0" json:"realized_pl"`
}

// PLAdjustment is a manual backfill of realized gains that pre-date
// the trade history.
type PLAdjustment struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Date        string  `gorm:"size:10" json:"date"`
	Ticker      string  `gorm:"size:32;index;not null" json:"ticker"`
	RealizedPL  float64 `gorm:"column:realized_pl;not null" json:"realized_pl"`
	Description string  `gorm:"size:255" json:"description"`
}

// TableName avoids the awkward p_l_adjustments default.
func (PLAdjustment) TableName() string { return "pl_adjustments" }
