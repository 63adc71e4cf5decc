package market

import (
	"context"
	"errors"

	"github.com/danielalasn/pivot/internal/models"
)

// ErrProvider marks failures of the external market-data provider.
// Gateway callers never see it: every provider failure degrades into
// stale cache or a cost-basis fallback.
var ErrProvider = errors.New("market provider error")

// Quote is a real-time price point.
type Quote struct {
	Current   float64 `json:"c"`
	PrevClose float64 `json:"pc"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
}

// Profile is the static company record behind a ticker.
type Profile struct {
	Name      string  `json:"name"`
	Industry  string  `json:"finnhubIndustry"`
	Country   string  `json:"country"`
	LogoURL   string  `json:"logo"`
	MarketCap float64 `json:"marketCapitalization"`
}

// Metrics carries the basic financials shown on the asset detail.
type Metrics struct {
	FiftyTwoHigh  float64
	FiftyTwoLow   float64
	PERatio       float64
	DividendYield float64
	Beta          float64
}

// Candles is a closing-price series, timestamps in unix seconds.
type Candles struct {
	Timestamps []int64
	Closes     []float64
}

// Provider is the market-data backend. Implementations must honor
// context cancellation; every method may block for a network round
// trip.
type Provider interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
	Profile(ctx context.Context, ticker string) (*Profile, error)
	Metrics(ctx context.Context, ticker string) (*Metrics, error)
	News(ctx context.Context, ticker, from, to string) ([]models.NewsItem, error)
	Candles(ctx context.Context, ticker, resolution string, from, to int64) (*Candles, error)
}
