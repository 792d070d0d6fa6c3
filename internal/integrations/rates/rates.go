// Package rates fetches the ECB daily reference exchange rates and
// converts amounts between the quoted currencies.
package rates

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/trackly-app/trackly/internal/config"
)

// Rates holds one day's reference rates, quoted against EUR
type Rates struct {
	Date       string
	ByCurrency map[string]decimal.Decimal
}

// Client handles integration with the ECB daily FX feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// GetRates retrieves and parses the current reference rates
func (c *Client) GetRates() (*Rates, error) {
	body, err := c.fetch()
	if err != nil {
		return nil, err
	}

	rates, err := ParseRates(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Retrieved %d reference rates for %s", len(rates.ByCurrency), rates.Date)
	return rates, nil
}

// fetch downloads the raw XML feed
func (c *Client) fetch() ([]byte, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("ECB XML response: %s", string(body))

	return body, nil
}

// ParseRates extracts the per-currency rates from the feed. The feed
// quotes everything against EUR, so EUR itself is added at 1.
func ParseRates(rawBody []byte) (*Rates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	cubes := doc.FindElements("//Cube[@currency]")
	if len(cubes) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := &Rates{ByCurrency: map[string]decimal.Decimal{"EUR": decimal.NewFromInt(1)}}
	if dated := doc.FindElement("//Cube[@time]"); dated != nil {
		rates.Date = dated.SelectAttrValue("time", "")
	}

	for _, cube := range cubes {
		currency := cube.SelectAttrValue("currency", "")
		rate, err := decimal.NewFromString(cube.SelectAttrValue("rate", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", currency, err)
		}
		rates.ByCurrency[currency] = rate
	}

	return rates, nil
}

// Convert re-quotes an amount from one currency to another through
// the EUR cross rate, rounded to 2 decimal places.
func (r *Rates) Convert(from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	fromRate, ok := r.ByCurrency[strings.ToUpper(from)]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown currency %q", from)
	}
	toRate, ok := r.ByCurrency[strings.ToUpper(to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown currency %q", to)
	}
	return amount.Div(fromRate).Mul(toRate).Round(2), nil
}
