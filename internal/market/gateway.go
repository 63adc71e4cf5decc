package market

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielalasn/pivot/internal/models"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownPeriod rejects a historical-data period outside the
// supported set.
var ErrUnknownPeriod = errors.New("unknown period")

// Gateway fronts the provider with a persistent per-ticker cache.
// Entries stay valid for the TTL; expired entries are refetched once
// per ticker regardless of how many callers ask concurrently, and a
// failed fetch never displaces a previously valid row.
type Gateway struct {
	db       *gorm.DB
	provider Provider
	ttl      time.Duration
	flight   singleflight.Group

	// now is swappable so expiry can be pinned in tests.
	now func() time.Time
}

// NewGateway builds a gateway; provider may be nil, in which case
// every lookup serves whatever the cache holds.
func NewGateway(db *gorm.DB, provider Provider, ttl time.Duration) *Gateway {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Gateway{db: db, provider: provider, ttl: ttl, now: time.Now}
}

func (g *Gateway) cached(ticker string) (*models.PriceCache, error) {
	var row models.PriceCache
	if err := g.db.First(&row, "ticker = ?", ticker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Snapshot returns the quote snapshot for a ticker, from cache when
// fresh, otherwise via a single-flight live fetch. Provider failures
// degrade to the stale row when one exists.
func (g *Gateway) Snapshot(ctx context.Context, ticker string) (*models.PriceCache, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("%w: empty ticker", ErrProvider)
	}
	cached, err := g.cached(ticker)
	if err != nil {
		return nil, err
	}
	if cached != nil && g.now().Sub(cached.LastFetched) < g.ttl {
		return cached, nil
	}
	if g.provider == nil {
		if cached != nil {
			return cached, nil
		}
		return nil, fmt.Errorf("%w: offline and %s not cached", ErrProvider, ticker)
	}

	v, err, _ := g.flight.Do(ticker, func() (interface{}, error) {
		return g.fetch(ctx, ticker)
	})
	if err != nil {
		if cached != nil {
			return cached, nil
		}
		return nil, err
	}
	return v.(*models.PriceCache), nil
}

// fetch pulls quote, profile, metrics and today's news, writes the row
// back and reclassifies the held position. Only the quote is
// mandatory: profile, metrics and news degrade to empty fields.
func (g *Gateway) fetch(ctx context.Context, ticker string) (*models.PriceCache, error) {
	quote, err := g.provider.Quote(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if quote.Current <= 0 {
		return nil, fmt.Errorf("%w: no price for %s", ErrProvider, ticker)
	}

	row := models.PriceCache{
		Ticker:       ticker,
		LastFetched:  g.now(),
		CurrentPrice: quote.Current,
		PrevClose:    quote.PrevClose,
		Name:         CleanTickerDisplay(ticker),
	}
	if profile, err := g.provider.Profile(ctx, ticker); err == nil {
		if profile.Name != "" {
			row.Name = profile.Name
		}
		row.Industry = profile.Industry
		row.Country = profile.Country
		row.LogoURL = profile.LogoURL
		row.MarketCap = profile.MarketCap
	}
	if metrics, err := g.provider.Metrics(ctx, ticker); err == nil {
		row.FiftyTwoLow = metrics.FiftyTwoLow
		row.FiftyTwoHigh = metrics.FiftyTwoHigh
		row.PERatio = metrics.PERatio
		row.DividendYield = metrics.DividendYield
		row.Beta = metrics.Beta
	}
	today := g.now().Format("2006-01-02")
	if news, err := g.provider.News(ctx, ticker, today, today); err == nil {
		row.SetNews(news)
	}

	err = g.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	g.reclassify(ticker, row.Industry)
	return &row, nil
}

// reclassify updates the held position's asset class from the freshly
// reported industry. Classification never downgrades an ETF label on
// an inconclusive fetch.
func (g *Gateway) reclassify(ticker, industry string) {
	var pos models.Investment
	if err := g.db.First(&pos, "ticker = ?", ticker).Error; err != nil {
		return
	}
	if detected := Classify(ticker, industry, pos.AssetType); detected != pos.AssetType {
		g.db.Model(&pos).Update("asset_type", detected)
	}
}

// Refresh invalidates and refetches every ticker currently held in
// positions. Per-ticker provider failures are skipped; the stale rows
// survive. Returns the number of tickers refreshed.
func (g *Gateway) Refresh(ctx context.Context) (int, error) {
	if g.provider == nil {
		return 0, nil
	}
	var tickers []string
	err := g.db.Model(&models.Investment{}).Distinct().Pluck("ticker", &tickers).Error
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, t := range tickers {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}
		if _, err := g.fetch(ctx, t); err == nil {
			updated++
		}
	}
	return updated, nil
}

// IsValid reports whether a ticker resolves to a positive live price.
// With no provider configured it answers true so offline use never
// blocks data entry.
func (g *Gateway) IsValid(ctx context.Context, ticker string) bool {
	if g.provider == nil {
		return true
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	quote, err := g.provider.Quote(ctx, ticker)
	return err == nil && quote.Current > 0
}

// LastUpdated is the most recent fetch time across the cache; zero
// when nothing has been fetched.
func (g *Gateway) LastUpdated() (time.Time, error) {
	var row models.PriceCache
	err := g.db.Order("last_fetched DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return row.LastFetched, nil
}

// PricePoint is one sample of a historical closing-price series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Historical returns the closing series for one of the dashboard
// periods. Intraday periods use minute resolution, the rest daily.
func (g *Gateway) Historical(ctx context.Context, ticker, period string) ([]PricePoint, error) {
	if g.provider == nil {
		return nil, fmt.Errorf("%w: offline", ErrProvider)
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	to := g.now()

	var resolution string
	var from time.Time
	switch period {
	case "1D":
		resolution, from = "5", to.Add(-24*time.Hour)
	case "1W":
		resolution, from = "30", to.AddDate(0, 0, -7)
	case "1M":
		resolution, from = "D", to.AddDate(0, 0, -30)
	case "3M":
		resolution, from = "D", to.AddDate(0, 0, -90)
	case "YTD":
		resolution = "D"
		from = time.Date(to.Year(), time.January, 1, 0, 0, 0, 0, to.Location())
	case "1Y":
		resolution, from = "D", to.AddDate(-1, 0, 0)
	case "5Y":
		resolution, from = "D", to.AddDate(-5, 0, 0)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}

	candles, err := g.provider.Candles(ctx, ticker, resolution, from.Unix(), to.Unix())
	if err != nil {
		return nil, err
	}
	points := make([]PricePoint, 0, len(candles.Closes))
	for i := range candles.Closes {
		if i >= len(candles.Timestamps) {
			break
		}
		ts := time.Unix(candles.Timestamps[i], 0)
		if ts.Before(from) {
			continue
		}
		points = append(points, PricePoint{Date: ts, Price: candles.Closes[i]})
	}
	return points, nil
}
