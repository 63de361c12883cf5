package conversion

import (
	"errors"
	"math"
	"testing"

	"github.com/mtlprog/fxcompare/internal/domain"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCompareScenario(t *testing.T) {
	rates := domain.Rates{Reference: 3.16, Street: 3.14, Direct: 3.02, Cross: 1.08, Secondary: 2.9}
	fees := domain.Fees{TransferPct: 1.5, CashPct: 1.5, CashFixed: 1.0}

	c, err := Compare(100, rates, fees)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approx(c.Reference, 316, 1e-9) {
		t.Errorf("Reference = %v, want 316", c.Reference)
	}

	direct, _ := c.Result(domain.PathDirect)
	if !approx(direct.Received, 302, 1e-9) {
		t.Errorf("direct received = %v, want 302", direct.Received)
	}
	if !approx(direct.LossPercent, 4.43, 0.005) {
		t.Errorf("direct loss = %v, want ~4.43", direct.LossPercent)
	}
	if !approx(direct.Loss, 14, 1e-9) {
		t.Errorf("direct loss amount = %v, want 14", direct.Loss)
	}

	transfer, _ := c.Result(domain.PathTransfer)
	if !approx(transfer.NetSpend, 98.5222, 1e-4) {
		t.Errorf("transfer net = %v, want 98.5222", transfer.NetSpend)
	}
	if !approx(transfer.Intermediate, 106.404, 1e-3) {
		t.Errorf("transfer USD = %v, want 106.404", transfer.Intermediate)
	}
	if !approx(transfer.Received, 308.57, 0.005) {
		t.Errorf("transfer received = %v, want ~308.57", transfer.Received)
	}
	if !approx(transfer.LossPercent, 2.35, 0.005) {
		t.Errorf("transfer loss = %v, want ~2.35", transfer.LossPercent)
	}

	cash, _ := c.Result(domain.PathCash)
	if !approx(cash.NetSpend, 97.5369, 1e-4) {
		t.Errorf("cash net = %v, want 97.5369", cash.NetSpend)
	}
	if !approx(cash.Received, 306.27, 0.005) {
		t.Errorf("cash received = %v, want ~306.27", cash.Received)
	}
	if !approx(cash.LossPercent, 3.08, 0.005) {
		t.Errorf("cash loss = %v, want ~3.08", cash.LossPercent)
	}

	if c.Winner != domain.PathTransfer {
		t.Errorf("Winner = %q, want transfer", c.Winner)
	}
	if !approx(c.Savings, transfer.Received-302, 1e-9) {
		t.Errorf("Savings = %v, want %v", c.Savings, transfer.Received-302)
	}
}

func TestCompareRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []float64{0, -10, math.NaN()} {
		_, err := Compare(amount, domain.Rates{Reference: 1}, domain.Fees{})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Compare(%v) error = %v, want ErrValidation", amount, err)
		}
	}
}

func TestCompareWinnerIsMaximum(t *testing.T) {
	tests := []struct {
		name  string
		rates domain.Rates
		want  domain.Path
	}{
		{"direct best", domain.Rates{Reference: 3, Direct: 5, Cross: 1, Secondary: 2, Street: 1}, domain.PathDirect},
		{"transfer best", domain.Rates{Reference: 3, Direct: 1, Cross: 1, Secondary: 5, Street: 2}, domain.PathTransfer},
		{"cash best", domain.Rates{Reference: 3, Direct: 1, Cross: 1, Secondary: 2, Street: 5}, domain.PathCash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compare(100, tt.rates, domain.Fees{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Winner != tt.want {
				t.Errorf("Winner = %q, want %q", c.Winner, tt.want)
			}
		})
	}
}

func TestCompareTiesKeepDeclaredOrder(t *testing.T) {
	tests := []struct {
		name  string
		rates domain.Rates
		want  domain.Path
	}{
		{"all equal", domain.Rates{Reference: 3, Direct: 2, Cross: 1, Secondary: 2, Street: 2}, domain.PathDirect},
		{"transfer ties cash", domain.Rates{Reference: 3, Direct: 1, Cross: 1, Secondary: 4, Street: 4}, domain.PathTransfer},
		{"direct ties cash", domain.Rates{Reference: 3, Direct: 4, Cross: 1, Secondary: 1, Street: 4}, domain.PathDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compare(10, tt.rates, domain.Fees{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Winner != tt.want {
				t.Errorf("Winner = %q, want %q", c.Winner, tt.want)
			}
		})
	}
}

func TestCompareDegenerateRatesPassThrough(t *testing.T) {
	c, err := Compare(100, domain.Rates{Reference: -1, Direct: -2, Cross: 0, Secondary: 3, Street: 0}, domain.Fees{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	direct, _ := c.Result(domain.PathDirect)
	if direct.Received != -200 {
		t.Errorf("direct received = %v, want -200", direct.Received)
	}
	if direct.LossPercent != 0 {
		t.Errorf("loss with negative reference = %v, want 0", direct.LossPercent)
	}
	if c.Winner != domain.PathTransfer {
		t.Errorf("Winner = %q, want transfer (0 beats -200, ties cash)", c.Winner)
	}
}

func TestCashFixedFeeFloor(t *testing.T) {
	tests := []struct {
		spend, fixed float64
	}{
		{1, 1},
		{5, 10},
		{0.5, 0.5},
		{100, 100.01},
	}

	for _, tt := range tests {
		if got := Cash(tt.spend, 1.5, tt.fixed, 3.14); got != 0 {
			t.Errorf("Cash(%v, fixed=%v) = %v, want 0", tt.spend, tt.fixed, got)
		}
	}
}

func TestLossPercentNonPositiveReference(t *testing.T) {
	for _, ref := range []float64{0, -1, -316} {
		for _, actual := range []float64{-5, 0, 100} {
			if got := LossPercent(actual, ref); got != 0 {
				t.Errorf("LossPercent(%v, %v) = %v, want 0", actual, ref, got)
			}
		}
	}
}

func TestPrimitives(t *testing.T) {
	if got := Direct(100, 3.02); !approx(got, 302, 1e-9) {
		t.Errorf("Direct = %v", got)
	}
	if got := Reference(100, 3.16); !approx(got, 316, 1e-9) {
		t.Errorf("Reference = %v", got)
	}
	if got := Transfer(100, 0, 1.08, 2.9); !approx(got, 313.2, 1e-9) {
		t.Errorf("Transfer without fee = %v, want 313.2", got)
	}
	if got := Cash(101, 0, 1, 3); !approx(got, 300, 1e-9) {
		t.Errorf("Cash without percent fee = %v, want 300", got)
	}
	if got := LossPercent(150, 100); !approx(got, -50, 1e-9) {
		t.Errorf("LossPercent gain = %v, want -50", got)
	}
}

func TestImpliedRate(t *testing.T) {
	rate, ok := ImpliedRate(302, 100)
	if !ok || !approx(rate, 3.02, 1e-12) {
		t.Errorf("ImpliedRate = %v, %v; want 3.02, true", rate, ok)
	}
	if _, ok := ImpliedRate(302, 0); ok {
		t.Error("ImpliedRate with zero spend should not be ok")
	}
}
