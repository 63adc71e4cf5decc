package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/danielalasn/pivot/internal/market"
	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// sharesEps is the float tolerance below which a share count is zero.
const sharesEps = 1e-6

// round5 keeps share counts at five decimals, matching broker
// statements for fractional positions.
func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

// Quoter prices a ticker from the market-data layer. Implementations
// must resolve from cache or live fetch on their own; a nil Quoter
// means the portfolio is valued at cost.
type Quoter interface {
	Snapshot(ctx context.Context, ticker string) (*models.PriceCache, error)
}

// InvestmentService owns positions, trade history, realized P/L and
// the live-priced portfolio views.
type InvestmentService struct {
	DB     *gorm.DB
	Quotes Quoter
}

func NewInvestmentService(db *gorm.DB, quotes Quoter) *InvestmentService {
	return &InvestmentService{DB: db, Quotes: quotes}
}

func (s *InvestmentService) position(tx *gorm.DB, ticker string) (*models.Investment, error) {
	var pos models.Investment
	if err := tx.Where("ticker = ?", ticker).First(&pos).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storagef(err)
	}
	return &pos, nil
}

// AddPosition creates or replaces the position for a ticker with an
// explicit share count and invested total, and records the opening Buy
// in history at the implied unit price. The asset type is auto
// detected from the ticker unless detection is inconclusive, in which
// case the caller's choice stands.
func (s *InvestmentService) AddPosition(ticker string, shares, totalInvestment float64, assetType string, accountID *uint) (*models.Investment, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	shares = round5(shares)
	switch {
	case ticker == "":
		return nil, Validationf("ticker is required")
	case shares <= 0:
		return nil, Validationf("shares must be positive, got %v", shares)
	case totalInvestment < 0:
		return nil, Validationf("total investment cannot be negative")
	}
	if assetType == "" {
		assetType = models.AssetStock
	}
	if detected := market.DetectAssetType(ticker, ""); detected != models.AssetStock {
		assetType = detected
	}
	avg := totalInvestment / shares

	var pos *models.Investment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.position(tx, ticker)
		if err != nil {
			return err
		}
		if existing != nil && existing.Shares > sharesEps {
			return Consistencyf("position %s already holds %v shares", ticker, existing.Shares)
		}
		if existing != nil {
			existing.Shares = shares
			existing.AvgPrice = avg
			existing.TotalInvestment = totalInvestment
			existing.AssetType = assetType
			existing.AccountID = accountID
			if err := tx.Save(existing).Error; err != nil {
				return storagef(err)
			}
			pos = existing
		} else {
			var maxOrder int
			row := tx.Model(&models.Investment{}).Select("COALESCE(MAX(display_order), 0)").Row()
			if err := row.Scan(&maxOrder); err != nil {
				return storagef(err)
			}
			pos = &models.Investment{
				Ticker:          ticker,
				Shares:          shares,
				AvgPrice:        avg,
				TotalInvestment: totalInvestment,
				AssetType:       assetType,
				AccountID:       accountID,
				DisplayOrder:    maxOrder + 1,
			}
			if err := tx.Create(pos).Error; err != nil {
				return storagef(err)
			}
		}
		trade := models.InvestmentTransaction{
			Date:             dayString(time.Now()),
			Ticker:           ticker,
			Type:             models.TradeBuy,
			Shares:           shares,
			Price:            avg,
			TotalTransaction: totalInvestment,
			AvgCostAtTrade:   avg,
		}
		return storagef(tx.Create(&trade).Error)
	})
	if err != nil {
		return nil, err
	}
	return pos, nil
}

// Buy adds shares at a price, folding the cost into the weighted
// average. A buy against a missing or closed position opens it.
func (s *InvestmentService) Buy(ticker string, shares, price float64) (*models.Investment, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	shares = round5(shares)
	switch {
	case ticker == "":
		return nil, Validationf("ticker is required")
	case shares <= 0:
		return nil, Validationf("shares must be positive, got %v", shares)
	case price <= 0:
		return nil, Validationf("price must be positive, got %v", price)
	}
	total := shares * price

	var pos *models.Investment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.position(tx, ticker)
		if err != nil {
			return err
		}
		avgAtTrade := price
		if existing == nil || existing.Shares <= sharesEps {
			if existing == nil {
				var maxOrder int
				row := tx.Model(&models.Investment{}).Select("COALESCE(MAX(display_order), 0)").Row()
				if err := row.Scan(&maxOrder); err != nil {
					return storagef(err)
				}
				existing = &models.Investment{
					Ticker:       ticker,
					AssetType:    market.DetectAssetType(ticker, ""),
					DisplayOrder: maxOrder + 1,
				}
			}
			existing.Shares = shares
			existing.AvgPrice = price
			existing.TotalInvestment = total
		} else {
			existing.TotalInvestment += total
			existing.Shares = round5(existing.Shares + shares)
			existing.AvgPrice = existing.TotalInvestment / existing.Shares
			avgAtTrade = existing.AvgPrice
		}
		if err := tx.Save(existing).Error; err != nil {
			return storagef(err)
		}
		pos = existing

		trade := models.InvestmentTransaction{
			Date:             dayString(time.Now()),
			Ticker:           ticker,
			Type:             models.TradeBuy,
			Shares:           shares,
			Price:            price,
			TotalTransaction: total,
			AvgCostAtTrade:   avgAtTrade,
		}
		return storagef(tx.Create(&trade).Error)
	})
	if err != nil {
		return nil, err
	}
	return pos, nil
}

// Sell disposes shares at a price. The realized gain is taken against
// the weighted-average cost, which the remaining shares keep. A sale
// that empties the position within tolerance closes it at exactly
// zero shares and zero cost.
func (s *InvestmentService) Sell(ticker string, shares, price float64) (*models.InvestmentTransaction, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	shares = round5(shares)
	switch {
	case ticker == "":
		return nil, Validationf("ticker is required")
	case shares <= 0:
		return nil, Validationf("shares must be positive, got %v", shares)
	case price < 0:
		return nil, Validationf("price cannot be negative, got %v", price)
	}

	var trade models.InvestmentTransaction
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		pos, err := s.position(tx, ticker)
		if err != nil {
			return err
		}
		if pos == nil || pos.Shares <= sharesEps {
			return NotFoundf("no open position for %s", ticker)
		}
		if shares > pos.Shares+sharesEps {
			return Consistencyf("cannot sell %v shares of %s, holding %v", shares, ticker, pos.Shares)
		}

		realized := (price - pos.AvgPrice) * shares
		trade = models.InvestmentTransaction{
			Date:             dayString(time.Now()),
			Ticker:           ticker,
			Type:             models.TradeSell,
			Shares:           shares,
			Price:            price,
			TotalTransaction: shares * price,
			AvgCostAtTrade:   pos.AvgPrice,
			RealizedPL:       realized,
		}
		if err := tx.Create(&trade).Error; err != nil {
			return storagef(err)
		}

		pos.Shares = round5(pos.Shares - shares)
		if pos.Shares < sharesEps {
			pos.Shares = 0
			pos.TotalInvestment = 0
		} else {
			pos.TotalInvestment = pos.AvgPrice * pos.Shares
		}
		return storagef(tx.Save(pos).Error)
	})
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

// UpdatePosition rewrites shares and invested total directly and
// recomputes the average cost from them.
func (s *InvestmentService) UpdatePosition(id uint, shares, totalInvestment float64) (*models.Investment, error) {
	shares = round5(shares)
	if shares < 0 {
		return nil, Validationf("shares cannot be negative, got %v", shares)
	}
	if totalInvestment < 0 {
		return nil, Validationf("total investment cannot be negative")
	}
	var pos models.Investment
	if err := s.DB.First(&pos, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("position %d does not exist", id)
		}
		return nil, storagef(err)
	}
	pos.Shares = shares
	pos.TotalInvestment = totalInvestment
	if shares > sharesEps {
		pos.AvgPrice = totalInvestment / shares
	} else {
		pos.AvgPrice = 0
	}
	if err := s.DB.Save(&pos).Error; err != nil {
		return nil, storagef(err)
	}
	return &pos, nil
}

// DeletePosition hard-deletes a position. History rows stay: they
// carry the realized P/L record.
func (s *InvestmentService) DeletePosition(id uint) error {
	res := s.DB.Delete(&models.Investment{}, id)
	if res.Error != nil {
		return storagef(res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundf("position %d does not exist", id)
	}
	return nil
}

// UndoTrade reverses one history row against the live position and
// deletes it. Undoing a sell returns the shares at the cost they were
// sold against; undoing a buy removes the exact cost that buy added.
// A position that was deleted separately is not revived, only the
// history row goes. The undo refuses to drive shares negative.
func (s *InvestmentService) UndoTrade(tradeID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var trade models.InvestmentTransaction
		if err := tx.First(&trade, tradeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("trade %d does not exist", tradeID)
			}
			return storagef(err)
		}

		pos, err := s.position(tx, trade.Ticker)
		if err != nil {
			return err
		}
		if pos != nil {
			var newShares, newTotal float64
			switch trade.Type {
			case models.TradeSell:
				newShares = round5(pos.Shares + trade.Shares)
				newTotal = pos.TotalInvestment + trade.Shares*trade.AvgCostAtTrade
			case models.TradeBuy:
				newShares = round5(pos.Shares - trade.Shares)
				newTotal = pos.TotalInvestment - trade.Shares*trade.Price
				if newShares < -sharesEps {
					return Consistencyf("undoing trade %d would leave %s with negative shares", tradeID, trade.Ticker)
				}
			default:
				return Consistencyf("trade %d has unknown type %q", tradeID, trade.Type)
			}
			if newShares < sharesEps {
				newShares = 0
			}
			if newTotal < 0 {
				newTotal = 0
			}
			pos.Shares = newShares
			pos.TotalInvestment = newTotal
			if newShares > sharesEps {
				pos.AvgPrice = newTotal / newShares
			} else {
				pos.AvgPrice = 0
			}
			if err := tx.Save(pos).Error; err != nil {
				return storagef(err)
			}
		}
		return storagef(tx.Delete(&trade).Error)
	})
}

// RealizedPLTotal sums the realized gains of every sell plus the
// manual adjustments.
func (s *InvestmentService) RealizedPLTotal() (float64, error) {
	var fromSales, fromAdjustments float64
	err := s.DB.Model(&models.InvestmentTransaction{}).
		Where("type = ?", models.TradeSell).
		Select("COALESCE(SUM(realized_pl), 0)").Scan(&fromSales).Error
	if err != nil {
		return 0, storagef(err)
	}
	err = s.DB.Model(&models.PLAdjustment{}).
		Select("COALESCE(SUM(realized_pl), 0)").Scan(&fromAdjustments).Error
	if err != nil {
		return 0, storagef(err)
	}
	return fromSales + fromAdjustments, nil
}

// TotalHistoricalCost is all capital ever put to work: the cost basis
// of open positions plus the cost basis disposed through sells.
func (s *InvestmentService) TotalHistoricalCost() (float64, error) {
	var live, sold float64
	err := s.DB.Model(&models.Investment{}).
		Select("COALESCE(SUM(total_investment), 0)").Scan(&live).Error
	if err != nil {
		return 0, storagef(err)
	}
	err = s.DB.Model(&models.InvestmentTransaction{}).
		Where("type = ?", models.TradeSell).
		Select("COALESCE(SUM(shares * avg_cost_at_trade), 0)").Scan(&sold).Error
	if err != nil {
		return 0, storagef(err)
	}
	return live + sold, nil
}

// History lists trades newest first, optionally filtered to one type.
func (s *InvestmentService) History(tradeType string) ([]models.InvestmentTransaction, error) {
	q := s.DB.Order("date DESC, id DESC")
	if tradeType == models.TradeBuy || tradeType == models.TradeSell {
		q = q.Where("type = ?", tradeType)
	}
	var trades []models.InvestmentTransaction
	if err := q.Find(&trades).Error; err != nil {
		return nil, storagef(err)
	}
	return trades, nil
}

// AddAdjustment records a manual realized-P/L backfill for trades that
// pre-date the history table.
func (s *InvestmentService) AddAdjustment(ticker string, realizedPL float64, description string) (*models.PLAdjustment, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, Validationf("ticker is required")
	}
	adj := models.PLAdjustment{
		Date:        dayString(time.Now()),
		Ticker:      ticker,
		RealizedPL:  realizedPL,
		Description: description,
	}
	if err := s.DB.Create(&adj).Error; err != nil {
		return nil, storagef(err)
	}
	return &adj, nil
}

// UpdateAdjustment rewrites a manual adjustment.
func (s *InvestmentService) UpdateAdjustment(id uint, realizedPL float64, ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Validationf("ticker is required")
	}
	res := s.DB.Model(&models.PLAdjustment{}).Where("id = ?", id).
		Updates(map[string]interface{}{"realized_pl": realizedPL, "ticker": ticker})
	if res.Error != nil {
		return storagef(res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundf("adjustment %d does not exist", id)
	}
	return nil
}

// Adjustments lists every manual adjustment, newest first.
func (s *InvestmentService) Adjustments() ([]models.PLAdjustment, error) {
	var list []models.PLAdjustment
	if err := s.DB.Order("date DESC, id DESC").Find(&list).Error; err != nil {
		return nil, storagef(err)
	}
	return list, nil
}

// SaleOption is a dropdown entry for tickers that can still be sold.
type SaleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SaleOptions lists open positions as sell candidates.
func (s *InvestmentService) SaleOptions() ([]SaleOption, error) {
	var positions []models.Investment
	err := s.DB.Where("shares > ?", sharesEps).Order("ticker ASC").Find(&positions).Error
	if err != nil {
		return nil, storagef(err)
	}
	options := make([]SaleOption, 0, len(positions))
	for _, p := range positions {
		options = append(options, SaleOption{
			Value: p.Ticker,
			Label: market.CleanTickerDisplay(p.Ticker) + " (" + trimFloat(p.Shares) + " un.)",
		})
	}
	return options, nil
}

// LiveAsset is a position joined with its market snapshot. When the
// gateway cannot price the ticker, Priced is false and the position is
// valued at its average cost with display fields set to "N/A".
type LiveAsset struct {
	models.Investment
	DisplayTicker string            `json:"display_ticker"`
	Name          string            `json:"name"`
	CurrentPrice  float64           `json:"current_price"`
	MarketValue   float64           `json:"market_value"`
	TotalGain     float64           `json:"total_gain"`
	TotalGainPct  float64           `json:"total_gain_pct"`
	DayChangePct  float64           `json:"day_change_pct"`
	Industry      string            `json:"industry"`
	Country       string            `json:"country"`
	LogoURL       string            `json:"logo_url"`
	FiftyTwoLow   float64           `json:"fifty_two_low"`
	FiftyTwoHigh  float64           `json:"fifty_two_high"`
	PERatio       float64           `json:"pe_ratio"`
	DividendYield float64           `json:"dividend_yield"`
	Beta          float64           `json:"beta"`
	MarketCap     float64           `json:"market_cap"`
	News          []models.NewsItem `json:"news"`
	Priced        bool              `json:"priced"`
}

// ListLive prices every position through the quoter. Pricing failures
// degrade per ticker, never fail the listing.
func (s *InvestmentService) ListLive(ctx context.Context) ([]LiveAsset, error) {
	var positions []models.Investment
	if err := s.DB.Order("display_order ASC, ticker ASC").Find(&positions).Error; err != nil {
		return nil, storagef(err)
	}
	assets := make([]LiveAsset, 0, len(positions))
	for _, pos := range positions {
		asset := LiveAsset{
			Investment:    pos,
			DisplayTicker: market.CleanTickerDisplay(pos.Ticker),
			Name:          market.CleanTickerDisplay(pos.Ticker),
			CurrentPrice:  pos.AvgPrice,
			Industry:      "N/A",
			Country:       "N/A",
			News:          []models.NewsItem{},
		}
		if s.Quotes != nil {
			if snap, err := s.Quotes.Snapshot(ctx, pos.Ticker); err == nil && snap.CurrentPrice > 0 {
				asset.Priced = true
				asset.CurrentPrice = snap.CurrentPrice
				if snap.Name != "" {
					asset.Name = snap.Name
				}
				asset.Industry = market.DisplayIndustry(snap.Industry, pos.AssetType)
				if snap.Country != "" {
					asset.Country = snap.Country
				}
				asset.LogoURL = snap.LogoURL
				asset.FiftyTwoLow = snap.FiftyTwoLow
				asset.FiftyTwoHigh = snap.FiftyTwoHigh
				asset.PERatio = snap.PERatio
				asset.DividendYield = snap.DividendYield
				asset.Beta = snap.Beta
				asset.MarketCap = snap.MarketCap
				asset.News = snap.News()
				if snap.PrevClose > 0 {
					asset.DayChangePct = (snap.CurrentPrice - snap.PrevClose) / snap.PrevClose * 100
				}
			}
		}
		asset.MarketValue = pos.Shares * asset.CurrentPrice
		cost := pos.Shares * pos.AvgPrice
		asset.TotalGain = asset.MarketValue - cost
		if pos.AvgPrice > 0 && cost != 0 {
			asset.TotalGainPct = asset.TotalGain / cost * 100
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// Detail prices a single position by id.
func (s *InvestmentService) Detail(ctx context.Context, id uint) (*LiveAsset, error) {
	assets, err := s.ListLive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range assets {
		if assets[i].ID == id {
			return &assets[i], nil
		}
	}
	return nil, NotFoundf("position %d does not exist", id)
}

// PortfolioSummary aggregates a live-priced snapshot. The day gain in
// dollars backs out the previous value from each asset's day change
// percentage; cost-free positions contribute zero to percentages.
type PortfolioSummary struct {
	MarketValue  float64 `json:"market_value"`
	DayGainUSD   float64 `json:"day_gain_usd"`
	DayPct       float64 `json:"day_pct"`
	TotalGainUSD float64 `json:"total_gain_usd"`
	TotalPct     float64 `json:"total_pct"`
}

func (s *InvestmentService) PortfolioSummary(snapshot []LiveAsset) PortfolioSummary {
	var sum PortfolioSummary
	var totalCost float64
	for _, a := range snapshot {
		sum.MarketValue += a.MarketValue
		sum.TotalGainUSD += a.TotalGain
		totalCost += a.AvgPrice * a.Shares
		if denom := 1 + a.DayChangePct/100; denom != 0 {
			prevValue := a.MarketValue / denom
			sum.DayGainUSD += a.MarketValue - prevValue
		}
	}
	if prevClose := sum.MarketValue - sum.DayGainUSD; prevClose != 0 {
		sum.DayPct = sum.DayGainUSD / prevClose * 100
	}
	if totalCost != 0 {
		sum.TotalPct = sum.TotalGainUSD / totalCost * 100
	}
	return sum
}

// NamedValue is one slice of a breakdown chart.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// PortfolioBreakdown splits the snapshot's market value per ticker and
// per industry. Zero buckets are dropped.
func (s *InvestmentService) PortfolioBreakdown(snapshot []LiveAsset) (byTicker, byIndustry []NamedValue) {
	industries := make(map[string]float64)
	for _, a := range snapshot {
		if a.MarketValue == 0 {
			continue
		}
		byTicker = append(byTicker, NamedValue{Name: a.DisplayTicker, Value: a.MarketValue})
		name := a.Industry
		if name == "" {
			name = "Sin Sector"
		}
		industries[name] += a.MarketValue
	}
	byIndustry = sortedNamedValues(industries)
	return byTicker, byIndustry
}

// AssetTypeBreakdown splits the snapshot's market value per display
// asset class. Zero buckets are dropped.
func (s *InvestmentService) AssetTypeBreakdown(snapshot []LiveAsset) []NamedValue {
	buckets := make(map[string]float64)
	for _, a := range snapshot {
		if a.MarketValue == 0 {
			continue
		}
		buckets[market.DisplayAssetType(a.AssetType)] += a.MarketValue
	}
	return sortedNamedValues(buckets)
}
