package models

import (
	"encoding/json"
	"time"
)

// NewsItem is one headline attached to a cached quote.
type NewsItem struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}

// PriceCache is the per-ticker quote, profile and metrics snapshot.
// Entries expire by TTL; a failed fetch never replaces a valid row.
type PriceCache struct {
	Ticker        string    `gorm:"primaryKey;size:32" json:"ticker"`
	LastFetched   time.Time `gorm:"index" json:"last_fetched"`
	CurrentPrice  float64   `gorm:"default:0" json:"current_price"`
	PrevClose     float64   `gorm:"default:0" json:"prev_close"`
	Name          string    `gorm:"size:128" json:"name"`
	Industry      string    `gorm:"size:64" json:"industry"`
	Country       string    `gorm:"size:64" json:"country"`
	LogoURL       string    `gorm:"size:255" json:"logo_url"`
	FiftyTwoLow   float64   `gorm:"default:0" json:"fifty_two_low"`
	FiftyTwoHigh  float64   `gorm:"default:0" json:"fifty_two_high"`
	PERatio       float64   `gorm:"column:pe_ratio;default:0" json:"pe_ratio"`
	DividendYield float64   `gorm:"default:0" json:"dividend_yield"`
	Beta          float64   `gorm:"default:0" json:"beta"`
	MarketCap     float64   `gorm:"default:0" json:"market_cap"`
	NewsJSON      string    `gorm:"column:news;size:4096" json:"-"`
}

// TableName keeps the historical singular table name.
func (PriceCache) TableName() string { return "price_cache" }

// News decodes the stored headlines; a broken payload yields none.
func (p *PriceCache) News() []NewsItem {
	if p.NewsJSON == "" {
		return nil
	}
	var items []NewsItem
	if err := json.Unmarshal([]byte(p.NewsJSON), &items); err != nil {
		return nil
	}
	return items
}

// SetNews encodes at most five headlines into the row.
func (p *PriceCache) SetNews(items []NewsItem) {
	if len(items) > 5 {
		items = items[:5]
	}
	b, err := json.Marshal(items)
	if err != nil {
		p.NewsJSON = ""
		return
	}
	p.NewsJSON = string(b)
}
