package ratesource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mtlprog/fxcompare/internal/domain"
)

func TestApply(t *testing.T) {
	current := domain.Rates{Reference: 3.0, Street: 3.0, Direct: 3.02, Cross: 1.1, Secondary: 2.5}
	snap := Snapshot{Quotes: map[Quote]float64{
		QuoteReferenceEUR: 3.159549,
		QuoteStreetEUR:    3.14,
		QuoteCrossEURUSD:  1.07125,
	}}

	got, lines := Apply(current, snap, georgia)

	want := domain.Rates{Reference: 3.1595, Street: 3.14, Direct: 3.02, Cross: 1.0713, Secondary: 2.5}
	if got != want {
		t.Errorf("rates = %+v, want %+v", got, want)
	}

	wantLines := []string{
		"NBG: 1 EUR = 3.1595 GEL",
		"Valuto/Rico: 1 EUR = 3.1400 GEL",
		"EUR/USD cross rate: 1.0713",
	}
	if len(lines) != len(wantLines) {
		t.Fatalf("lines = %q, want %q", lines, wantLines)
	}
	for i := range wantLines {
		if lines[i] != wantLines[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], wantLines[i])
		}
	}
}

func TestApplyDerivedCrossAndSecondary(t *testing.T) {
	snap := Snapshot{
		Quotes:       map[Quote]float64{QuoteStreetUSD: 2.69, QuoteCrossEURUSD: 1.2},
		CrossDerived: true,
	}

	got, lines := Apply(domain.Rates{}, snap, georgia)
	if got.Secondary != 2.69 || got.Cross != 1.2 {
		t.Errorf("rates = %+v", got)
	}
	if len(lines) != 2 || lines[1] != "EUR/USD cross rate (derived from NBG): 1.2000" {
		t.Errorf("lines = %q", lines)
	}
}

func TestApplyEmptySnapshot(t *testing.T) {
	current := domain.Rates{Reference: 1, Street: 2, Direct: 3, Cross: 4, Secondary: 5}
	got, lines := Apply(current, Snapshot{}, georgia)
	if got != current {
		t.Errorf("rates changed: %+v", got)
	}
	if len(lines) != 0 {
		t.Errorf("lines = %q, want none", lines)
	}
}

type countingFetcher struct {
	calls int
	err   error
}

func (f *countingFetcher) Supports(p domain.Profile) bool { return p.Key == "georgia" }

func (f *countingFetcher) Fetch(_ context.Context, p domain.Profile) (Snapshot, error) {
	f.calls++
	if f.err != nil {
		return Snapshot{}, f.err
	}
	return Snapshot{Quotes: map[Quote]float64{QuoteReferenceEUR: float64(f.calls)}}, nil
}

func TestCachedFetcherReusesSnapshot(t *testing.T) {
	inner := &countingFetcher{}
	c := Cached(inner, time.Minute)

	for range 3 {
		snap, err := c.Fetch(context.Background(), georgia)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Quotes[QuoteReferenceEUR] != 1 {
			t.Errorf("reference = %v, want the first snapshot", snap.Quotes[QuoteReferenceEUR])
		}
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}

	c.Invalidate("georgia")
	if _, err := c.Fetch(context.Background(), georgia); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("calls after invalidate = %d, want 2", inner.calls)
	}
}

func TestCachedFetcherDoesNotCacheErrors(t *testing.T) {
	inner := &countingFetcher{err: domain.ErrSourceUnavailable}
	c := Cached(inner, time.Minute)

	for range 2 {
		if _, err := c.Fetch(context.Background(), georgia); !errors.Is(err, domain.ErrSourceUnavailable) {
			t.Fatalf("err = %v, want ErrSourceUnavailable", err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("calls = %d, want 2", inner.calls)
	}
	if !c.Supports(georgia) || c.Supports(domain.Profile{Key: "serbia"}) {
		t.Error("Supports should delegate")
	}
}

func TestPageTextSkipsScripts(t *testing.T) {
	text, err := pageText([]byte(ricoBody))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := firstDecimalAfter(text, "EUR"); v != 3.14 {
		t.Errorf("EUR = %v, want 3.14 (script value must be ignored)", v)
	}
}

func TestFirstDecimalAfter(t *testing.T) {
	tests := []struct {
		text   string
		code   string
		want   float64
		wantOK bool
	}{
		{"EUR 3.14 3.18", "EUR", 3.14, true},
		{"eur buy 3.1", "EUR", 3.1, true},
		{"EUR 3 then 3.20", "EUR", 3.20, true},
		{"USD 2.69", "EUR", 0, false},
		{"EUR no numbers", "EUR", 0, false},
	}
	for _, tt := range tests {
		got, ok := firstDecimalAfter(tt.text, tt.code)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("firstDecimalAfter(%q, %q) = %v, %v; want %v, %v", tt.text, tt.code, got, ok, tt.want, tt.wantOK)
		}
	}
}
