package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/danielalasn/pivot/internal/models"
)

const finnhubBaseURL = "https://finnhub.io/api/v1"

// FinnhubClient talks to the Finnhub REST API. Each call retries up to
// maxAttempts times with exponential backoff, respecting the caller's
// context between attempts.
type FinnhubClient struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
}

// NewFinnhubClient builds a client with a per-request timeout.
func NewFinnhubClient(apiKey string, timeout time.Duration, maxAttempts int) *FinnhubClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &FinnhubClient{
		apiKey:      apiKey,
		baseURL:     finnhubBaseURL,
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: maxAttempts,
	}
}

// get performs one API call with retries and decodes JSON into out.
func (c *FinnhubClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("token", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	backoff := 500 * time.Millisecond
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrProvider, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrProvider, err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%s returned HTTP %d", path, resp.StatusCode)
			// 4xx responses will not improve on retry
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				break
			}
			continue
		}
		if err := json.Unmarshal(body, out); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrProvider, lastErr)
}

func (c *FinnhubClient) Quote(ctx context.Context, ticker string) (*Quote, error) {
	var q Quote
	params := url.Values{"symbol": {ticker}}
	if err := c.get(ctx, "/quote", params, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *FinnhubClient) Profile(ctx context.Context, ticker string) (*Profile, error) {
	var p Profile
	params := url.Values{"symbol": {ticker}}
	if err := c.get(ctx, "/stock/profile2", params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// finnhubMetrics mirrors the wire shape of /stock/metric.
type finnhubMetrics struct {
	Metric struct {
		FiftyTwoHigh  float64 `json:"52WeekHigh"`
		FiftyTwoLow   float64 `json:"52WeekLow"`
		PERatio       float64 `json:"peBasicExclExtraTTM"`
		DividendYield float64 `json:"dividendYieldIndicatedAnnual"`
		Beta          float64 `json:"beta"`
	} `json:"metric"`
}

func (c *FinnhubClient) Metrics(ctx context.Context, ticker string) (*Metrics, error) {
	var raw finnhubMetrics
	params := url.Values{"symbol": {ticker}, "metric": {"all"}}
	if err := c.get(ctx, "/stock/metric", params, &raw); err != nil {
		return nil, err
	}
	return &Metrics{
		FiftyTwoHigh:  raw.Metric.FiftyTwoHigh,
		FiftyTwoLow:   raw.Metric.FiftyTwoLow,
		PERatio:       raw.Metric.PERatio,
		DividendYield: raw.Metric.DividendYield,
		Beta:          raw.Metric.Beta,
	}, nil
}

// finnhubNews mirrors the wire shape of /company-news entries.
type finnhubNews struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}

func (c *FinnhubClient) News(ctx context.Context, ticker, from, to string) ([]models.NewsItem, error) {
	var raw []finnhubNews
	params := url.Values{"symbol": {ticker}, "from": {from}, "to": {to}}
	if err := c.get(ctx, "/company-news", params, &raw); err != nil {
		return nil, err
	}
	items := make([]models.NewsItem, 0, len(raw))
	for _, n := range raw {
		items = append(items, models.NewsItem{Headline: n.Headline, Source: n.Source, URL: n.URL})
	}
	return items, nil
}

// finnhubCandles mirrors the wire shape of /stock/candle.
type finnhubCandles struct {
	Status     string    `json:"s"`
	Closes     []float64 `json:"c"`
	Timestamps []int64   `json:"t"`
}

func (c *FinnhubClient) Candles(ctx context.Context, ticker, resolution string, from, to int64) (*Candles, error) {
	var raw finnhubCandles
	params := url.Values{
		"symbol":     {ticker},
		"resolution": {resolution},
		"from":       {strconv.FormatInt(from, 10)},
		"to":         {strconv.FormatInt(to, 10)},
	}
	if err := c.get(ctx, "/stock/candle", params, &raw); err != nil {
		return nil, err
	}
	if raw.Status != "ok" {
		return nil, fmt.Errorf("%w: no candle data for %s", ErrProvider, ticker)
	}
	return &Candles{Timestamps: raw.Timestamps, Closes: raw.Closes}, nil
}
