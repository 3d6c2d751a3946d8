package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"krwarb/internal/model"
	"krwarb/internal/transport"
)

// newUpbitServer serves the two-step Upbit flow: a market list and a ticker
// endpoint that echoes prices for the requested symbols.
func newUpbitServer(t *testing.T, marketList, tickers string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/market/all", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(marketList))
	})
	mux.HandleFunc("/ticker", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("markets") == "" {
			t.Error("ticker endpoint called without markets parameter")
		}
		w.Write([]byte(tickers))
	})
	return httptest.NewServer(mux)
}

func upbitConfigFor(server *httptest.Server) UpbitConfig {
	return UpbitConfig{
		MarketsURL:    server.URL + "/market/all",
		TickerURL:     server.URL + "/ticker",
		RefreshPeriod: time.Hour,
	}
}

func TestUpbitFetchTickers(t *testing.T) {
	server := newUpbitServer(t,
		`[{"market":"KRW-BTC"},{"market":"KRW-ETH"},{"market":"XX-YY"}]`,
		`[
			{"market":"KRW-BTC","trade_price":42512000},
			{"market":"KRW-ETH","trade_price":"2310000.5"},
			{"market":"XX-YY","trade_price":123}
		]`)
	defer server.Close()

	a := NewUpbit(transport.NewClient(), upbitConfigFor(server))

	got, err := a.FetchTickers(context.Background())
	if err != nil {
		t.Fatalf("FetchTickers: %v", err)
	}

	want := []model.Ticker{
		{Market: model.KRWBTC, Last: 42512000},
		{Market: model.KRWETH, Last: 2310000.5},
	}
	if len(got) != len(want) {
		t.Fatalf("tickers = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tickers[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUpbitUnrecognizedSymbolsFiltered(t *testing.T) {
	server := newUpbitServer(t,
		`[{"market":"KRW-BTC"},{"market":"XX-YY"},{"market":"BTC-ETH"}]`,
		`[
			{"market":"XX-YY","trade_price":1},
			{"market":"BTC-ETH","trade_price":2},
			{"market":"KRW-BTC","trade_price":100}
		]`)
	defer server.Close()

	a := NewUpbit(transport.NewClient(), upbitConfigFor(server))

	got, err := a.FetchTickers(context.Background())
	if err != nil {
		t.Fatalf("FetchTickers: %v", err)
	}
	if len(got) != 1 || got[0].Market != model.KRWBTC {
		t.Errorf("tickers = %+v, want only KRW-BTC", got)
	}
}

func TestUpbitMalformedPriceDegradesToZero(t *testing.T) {
	server := newUpbitServer(t,
		`[{"market":"KRW-BTC"}]`,
		`[{"market":"KRW-BTC","trade_price":"oops"}]`)
	defer server.Close()

	a := NewUpbit(transport.NewClient(), upbitConfigFor(server))

	got, err := a.FetchTicker(context.Background(), model.KRWBTC)
	if err != nil {
		t.Fatalf("FetchTicker: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("tickers = %+v, want the ticker kept with a degraded price", got)
	}
	if got[0].Last != 0 {
		t.Errorf("Last = %v, want 0 for unparseable price", got[0].Last)
	}
}

func TestUpbitMalformedMarketList(t *testing.T) {
	server := newUpbitServer(t, `{"not":"an array"}`, `[]`)
	defer server.Close()

	a := NewUpbit(transport.NewClient(), upbitConfigFor(server))

	// Wrong top-level shape in step one is a soft no-op.
	got, err := a.FetchTickers(context.Background())
	if err != nil {
		t.Fatalf("FetchTickers: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("tickers = %+v, want none", got)
	}
	if !a.lastRefresh.IsZero() {
		t.Error("lastRefresh advanced on shape mismatch")
	}
}

func TestUpbitInvalidJSON(t *testing.T) {
	server := newUpbitServer(t, `[{"market":"KRW-BTC"}]`, `{invalid json`)
	defer server.Close()

	a := NewUpbit(transport.NewClient(), upbitConfigFor(server))

	if _, err := a.FetchTickers(context.Background()); err == nil {
		t.Fatal("expected decode error for invalid JSON")
	}
	if len(a.tickers) != 0 || !a.lastRefresh.IsZero() {
		t.Error("cache mutated by failed refresh")
	}
}
