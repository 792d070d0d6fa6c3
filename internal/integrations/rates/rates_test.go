package rates

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/trackly-app/trackly/internal/config"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<Cube>
		<Cube time="2026-08-27">
			<Cube currency="USD" rate="1.0800"/>
			<Cube currency="GBP" rate="0.8500"/>
			<Cube currency="JPY" rate="162.50"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func TestParseRates(t *testing.T) {
	rates, err := ParseRates([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rates.Date != "2026-08-27" {
		t.Errorf("date = %q, want 2026-08-27", rates.Date)
	}
	// USD, GBP, JPY plus the implicit EUR.
	if len(rates.ByCurrency) != 4 {
		t.Errorf("expected 4 currencies, got %d", len(rates.ByCurrency))
	}
	if !rates.ByCurrency["USD"].Equal(decimal.RequireFromString("1.0800")) {
		t.Errorf("USD rate = %s, want 1.0800", rates.ByCurrency["USD"])
	}
	if !rates.ByCurrency["EUR"].Equal(decimal.NewFromInt(1)) {
		t.Errorf("EUR rate = %s, want 1", rates.ByCurrency["EUR"])
	}
}

func TestParseRatesRejectsEmptyFeed(t *testing.T) {
	empty := `<?xml version="1.0"?><gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01"><Cube/></gesmes:Envelope>`
	if _, err := ParseRates([]byte(empty)); err == nil {
		t.Error("expected error on feed without rates")
	}
}

func TestConvert(t *testing.T) {
	rates, err := ParseRates([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 108 USD -> 100 EUR -> 85 GBP.
	got, err := rates.Convert("USD", "GBP", decimal.NewFromInt(108))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(85)) {
		t.Errorf("108 USD = %s GBP, want 85", got)
	}

	// Conversion to EUR is a plain division.
	got, err = rates.Convert("usd", "eur", decimal.NewFromInt(54))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("54 USD = %s EUR, want 50", got)
	}
}

func TestConvertUnknownCurrency(t *testing.T) {
	rates, err := ParseRates([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := rates.Convert("USD", "XXX", decimal.NewFromInt(1)); err == nil {
		t.Error("expected error for unknown target currency")
	}
	if _, err := rates.Convert("XXX", "USD", decimal.NewFromInt(1)); err == nil {
		t.Error("expected error for unknown source currency")
	}
}

func TestGetRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := NewClient(&config.Config{RatesURL: server.URL}, logrus.New())
	rates, err := client.GetRates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates.Date != "2026-08-27" {
		t.Errorf("date = %q, want 2026-08-27", rates.Date)
	}
}

func TestGetRatesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(&config.Config{RatesURL: server.URL}, logrus.New())
	if _, err := client.GetRates(); err == nil {
		t.Error("expected error on upstream failure")
	}
}
