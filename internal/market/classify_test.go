package market

import (
	"testing"

	"github.com/danielalasn/pivot/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		ticker   string
		industry string
		current  string
		want     string
	}{
		{"AAPL", "Technology", "", models.AssetStock},
		{"SPY", "", "", models.AssetETF},
		{"qqq", "", "", models.AssetETF}, // lookup is case-insensitive
		{"XYZ", "Exchange Traded Fund", "", models.AssetETF},
		{"XYZ", "Mutual Fund", "", models.AssetETF},
		{"BINANCE:BTCUSDT", "", "", models.AssetCryptoForex},
		{"EUR/USD", "", "", models.AssetCryptoForex},
		{"ETH-USD", "", "", models.AssetCryptoForex},
		// fund detection outranks the crypto suffix heuristics
		{"GLDUSD", "Exchange Traded Fund", "", models.AssetETF},
		// an inconclusive fetch never downgrades a stored ETF label
		{"OBSCURE", "", models.AssetETF, models.AssetETF},
		{"OBSCURE", "", models.AssetStock, models.AssetStock},
	}
	for _, c := range cases {
		if got := Classify(c.ticker, c.industry, c.current); got != c.want {
			t.Errorf("Classify(%q, %q, %q) = %q, want %q",
				c.ticker, c.industry, c.current, got, c.want)
		}
	}
}

func TestDetectAssetType(t *testing.T) {
	if got := DetectAssetType("VOO", ""); got != models.AssetETF {
		t.Errorf("VOO = %q, want ETF", got)
	}
	if got := DetectAssetType("AAPL", ""); got != models.AssetStock {
		t.Errorf("AAPL = %q, want Stock", got)
	}
}

func TestCleanTickerDisplay(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"AAPL":              "AAPL",
		"BINANCE:BTCUSDT":   "BTC",
		"BINANCE:ETHUSDT":   "ETH",
		"BTC-USD":           "BTC",
		"COINBASE:SOLUSD":   "SOL",
		"BINANCE:DOGEBUSD":  "DOGE",
		"KRAKEN:ADAUSDC":    "ADA",
		"voo":               "VOO",
		// a bare suffix is a ticker in its own right
		"USD": "USD",
	}
	for in, want := range cases {
		if got := CleanTickerDisplay(in); got != want {
			t.Errorf("CleanTickerDisplay(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayAssetType(t *testing.T) {
	cases := map[string]string{
		models.AssetETF:         "Fondos (ETF)",
		models.AssetCryptoForex: "Cripto/Forex",
		models.AssetStock:       "Acciones (Stocks)",
		models.AssetOther:       "Otros Activos",
		"":                      "Sin Clasificar",
		"weird":                 "Sin Clasificar",
	}
	for in, want := range cases {
		if got := DisplayAssetType(in); got != want {
			t.Errorf("DisplayAssetType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayIndustry(t *testing.T) {
	cases := []struct {
		industry  string
		assetType string
		want      string
	}{
		{"Technology", models.AssetStock, "Technology"},
		// the class label stands in for funds and crypto pairs
		{"Technology", models.AssetETF, "Fondos (ETF)"},
		{"", models.AssetCryptoForex, "Cripto/Forex"},
		{"", models.AssetStock, "Sin Clasificar"},
		{"N/A", models.AssetStock, "Sin Clasificar"},
		{"  ", models.AssetStock, "Sin Clasificar"},
	}
	for _, c := range cases {
		if got := DisplayIndustry(c.industry, c.assetType); got != c.want {
			t.Errorf("DisplayIndustry(%q, %q) = %q, want %q",
				c.industry, c.assetType, got, c.want)
		}
	}
}
