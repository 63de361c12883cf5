package ratesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxBodyBytes = 4 << 20
)

// GeorgiaClient fetches NBG reference rates, Rico exchange-office rates and the
// Frankfurter EUR/USD rate. Each upstream is attempted once.
type GeorgiaClient struct {
	nbgURL         string
	ricoURL        string
	frankfurterURL string
	httpClient     *http.Client
}

// NewGeorgiaClient creates a client. frankfurterURL is the API base; the
// latest-rate path is appended.
func NewGeorgiaClient(nbgURL, ricoURL, frankfurterURL string, timeout time.Duration) *GeorgiaClient {
	return &GeorgiaClient{
		nbgURL:         nbgURL,
		ricoURL:        ricoURL,
		frankfurterURL: frankfurterURL,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

// Fetch queries all three upstreams and merges whatever succeeded.
func (c *GeorgiaClient) Fetch(ctx context.Context) Snapshot {
	var snap Snapshot

	if eur, usd, err := c.fetchNBG(ctx); err != nil {
		snap.fail("nbg", err)
	} else {
		if eur > 0 {
			snap.set(QuoteReferenceEUR, eur)
		}
		if usd > 0 {
			snap.set(QuoteReferenceUSD, usd)
		}
	}

	if eur, usd, err := c.fetchRico(ctx); err != nil {
		snap.fail("rico", err)
	} else {
		if eur > 0 {
			snap.set(QuoteStreetEUR, eur)
		}
		if usd > 0 {
			snap.set(QuoteStreetUSD, usd)
		}
	}

	if cross, err := c.fetchFrankfurter(ctx); err != nil {
		snap.fail("frankfurter", err)
	} else {
		snap.set(QuoteCrossEURUSD, cross)
	}

	return snap
}

type nbgDay struct {
	Currencies []struct {
		Code     string  `json:"code"`
		Quantity float64 `json:"quantity"`
		Rate     float64 `json:"rate"`
	} `json:"currencies"`
}

// fetchNBG returns GEL per 1 EUR and per 1 USD. A currency missing from the
// response comes back as 0.
func (c *GeorgiaClient) fetchNBG(ctx context.Context) (eur, usd float64, err error) {
	body, err := c.get(ctx, c.nbgURL)
	if err != nil {
		return 0, 0, err
	}

	// Parse: [{"date":"...","currencies":[{"code":"EUR","quantity":1,"rate":3.16},...]}]
	var days []nbgDay
	if err := json.Unmarshal(body, &days); err != nil {
		return 0, 0, fmt.Errorf("parsing NBG response: %w", err)
	}
	if len(days) == 0 {
		return 0, 0, errors.New("NBG response has no entries")
	}

	for _, cur := range days[0].Currencies {
		quantity := cur.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		switch cur.Code {
		case "EUR":
			eur = cur.Rate / quantity
		case "USD":
			usd = cur.Rate / quantity
		}
	}
	if eur == 0 && usd == 0 {
		return 0, 0, errors.New("NBG response has no EUR or USD rate")
	}
	return eur, usd, nil
}

// fetchRico scrapes the exchange-office page for its EUR and USD rates.
func (c *GeorgiaClient) fetchRico(ctx context.Context) (eur, usd float64, err error) {
	body, err := c.get(ctx, c.ricoURL)
	if err != nil {
		return 0, 0, err
	}

	text, err := pageText(body)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing Rico page: %w", err)
	}

	if v, ok := firstDecimalAfter(text, "EUR"); ok {
		eur = v
	}
	if v, ok := firstDecimalAfter(text, "USD"); ok {
		usd = v
	}
	if eur == 0 && usd == 0 {
		return 0, 0, errors.New("no EUR or USD rate found on Rico page")
	}
	return eur, usd, nil
}

// fetchFrankfurter returns USD per 1 EUR.
func (c *GeorgiaClient) fetchFrankfurter(ctx context.Context) (float64, error) {
	body, err := c.get(ctx, c.frankfurterURL+"/latest?base=EUR&symbols=USD")
	if err != nil {
		return 0, err
	}

	// Parse: {"amount":1.0,"base":"EUR","date":"...","rates":{"USD":1.08}}
	var raw struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, fmt.Errorf("parsing Frankfurter response: %w", err)
	}
	usd, ok := raw.Rates["USD"]
	if !ok || usd <= 0 {
		return 0, errors.New("Frankfurter response has no USD rate")
	}
	return usd, nil
}

func (c *GeorgiaClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
