package market

import (
	"strings"

	"github.com/danielalasn/pivot/internal/models"
)

// knownETFs forces tickers the provider mislabels as plain equities.
var knownETFs = map[string]bool{
	"SPY": true, "QQQ": true, "QTUM": true, "VOO": true, "IVV": true,
	"DIA": true, "IWM": true, "GLD": true, "SLV": true,
	"SOXX": true, "SMH": true, "ARKK": true, "TQQQ": true, "SQQQ": true,
	"VTI": true, "VEA": true, "VWO": true, "SCHD": true, "JEPI": true,
	"XLF": true, "XLK": true, "XLE": true, "XLY": true, "XLV": true,
	"XLI": true, "XLP": true, "XLU": true, "XLB": true,
}

// Classify assigns the asset class for a ticker given the provider's
// reported industry and the currently stored class. ETF detection wins
// over the crypto heuristics, and an existing ETF label survives an
// inconclusive fetch.
func Classify(ticker, industry, current string) string {
	clean := strings.ToUpper(strings.TrimSpace(ticker))

	low := strings.ToLower(industry)
	if strings.Contains(low, "exchange traded fund") || strings.Contains(low, "fund") || knownETFs[clean] {
		return models.AssetETF
	}
	if strings.Contains(clean, "USDT") || strings.Contains(clean, "USD") || strings.Contains(clean, "/") {
		return models.AssetCryptoForex
	}
	if current == models.AssetETF {
		return models.AssetETF
	}
	return models.AssetStock
}

// DetectAssetType classifies from the ticker alone, used at entry time
// before any provider data exists.
func DetectAssetType(ticker, industry string) string {
	return Classify(ticker, industry, "")
}

// DisplayAssetType maps a stored asset class to its dashboard label.
func DisplayAssetType(assetType string) string {
	switch assetType {
	case models.AssetETF:
		return "Fondos (ETF)"
	case models.AssetCryptoForex:
		return "Cripto/Forex"
	case models.AssetStock:
		return "Acciones (Stocks)"
	case models.AssetOther:
		return "Otros Activos"
	default:
		return "Sin Clasificar"
	}
}

// DisplayIndustry resolves the industry label shown per asset. Funds
// and crypto pairs rarely report a usable industry, so their class
// label stands in; unknown industries fall back to a neutral label.
func DisplayIndustry(industry, assetType string) string {
	switch assetType {
	case models.AssetETF:
		return "Fondos (ETF)"
	case models.AssetCryptoForex:
		return "Cripto/Forex"
	}
	industry = strings.TrimSpace(industry)
	if industry == "" || industry == "N/A" {
		return "Sin Clasificar"
	}
	return industry
}

// cryptoSuffixes are stripped from pair tickers, longest first so the
// USDT suffix never leaves a dangling T.
var cryptoSuffixes = []string{"USDT", "-USD", "BUSD", "USDC", "USD"}

// CleanTickerDisplay reduces exchange-qualified pair tickers to their
// base symbol: "BINANCE:BTCUSDT" becomes "BTC".
func CleanTickerDisplay(raw string) string {
	if raw == "" {
		return ""
	}
	clean := strings.ToUpper(raw)
	if i := strings.Index(clean, ":"); i >= 0 {
		clean = clean[i+1:]
	}
	for _, suffix := range cryptoSuffixes {
		if strings.HasSuffix(clean, suffix) && len(clean) > len(suffix) {
			clean = strings.TrimSuffix(clean, suffix)
			break
		}
	}
	return clean
}
