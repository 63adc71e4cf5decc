package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.Handler, attempts int) *FinnhubClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewFinnhubClient("test-key", 2*time.Second, attempts)
	c.baseURL = srv.URL
	return c
}

func TestFinnhubQuote(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			t.Errorf("path = %q, want /quote", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "AAPL" || r.URL.Query().Get("token") != "test-key" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"c": 220.5, "pc": 218, "h": 222, "l": 217}`))
	}), 1)

	q, err := c.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Current != 220.5 || q.PrevClose != 218 {
		t.Errorf("quote = %+v", q)
	}
}

func TestFinnhubMetrics(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("metric") != "all" {
			t.Errorf("metric param = %q, want all", r.URL.Query().Get("metric"))
		}
		w.Write([]byte(`{"metric": {"52WeekHigh": 250, "52WeekLow": 120, "peBasicExclExtraTTM": 29.5, "beta": 1.1}}`))
	}), 1)

	m, err := c.Metrics(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.FiftyTwoHigh != 250 || m.FiftyTwoLow != 120 || m.PERatio != 29.5 || m.Beta != 1.1 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestFinnhubCandles_NoData(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s": "no_data"}`))
	}), 1)

	if _, err := c.Candles(context.Background(), "GHOST", "D", 0, 1); !errors.Is(err, ErrProvider) {
		t.Errorf("no-data err = %v, want ErrProvider", err)
	}
}

func TestFinnhubGet_RetriesServerErrors(t *testing.T) {
	var hits int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"c": 100}`))
	}), 3)

	q, err := c.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("quote after retries: %v", err)
	}
	if q.Current != 100 {
		t.Errorf("price = %v, want 100", q.Current)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestFinnhubGet_NoRetryOnClientError(t *testing.T) {
	var hits int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusForbidden)
	}), 3)

	if _, err := c.Quote(context.Background(), "AAPL"); !errors.Is(err, ErrProvider) {
		t.Errorf("forbidden err = %v, want ErrProvider", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("attempts = %d, a 4xx should not be retried", got)
	}
}

func TestFinnhubGet_ContextCancelBetweenRetries(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if _, err := c.Quote(ctx, "AAPL"); !errors.Is(err, ErrProvider) {
		t.Errorf("cancelled err = %v, want ErrProvider", err)
	}
	// the backoff sleep must not run against a dead context
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled call took %v", elapsed)
	}
}
