// Package conversion computes what each conversion path yields for a fixed EUR
// amount and how far it falls short of the central-bank reference.
//
// Every function is pure. No rounding is applied; degenerate rates propagate
// into degenerate results instead of raising errors.
package conversion

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/mtlprog/fxcompare/internal/domain"
)

// Direct returns the local amount received when paying by card at an implied rate.
func Direct(spend, impliedRate float64) float64 {
	return spend * impliedRate
}

// Transfer returns the local amount received through a cross-currency transfer:
// the percentage fee is taken first, then EUR→USD at cross, then USD→local at secondary.
func Transfer(spend, feePct, crossRate, secondaryRate float64) float64 {
	_, _, local := transferLegs(spend, feePct, crossRate, secondaryRate)
	return local
}

func transferLegs(spend, feePct, crossRate, secondaryRate float64) (net, usd, local float64) {
	net = afterPercentFee(spend, feePct)
	usd = net * crossRate
	return net, usd, usd * secondaryRate
}

// Cash returns the local amount received by withdrawing cash and exchanging it on
// the street. The fixed fee comes off first, then the percentage fee. When the
// fixed fee alone consumes the amount the result is 0.
func Cash(spend, feePct, fixedFee, streetRate float64) float64 {
	net := cashNet(spend, feePct, fixedFee)
	return net * streetRate
}

func cashNet(spend, feePct, fixedFee float64) float64 {
	if spend <= fixedFee {
		return 0
	}
	return afterPercentFee(spend-fixedFee, feePct)
}

func afterPercentFee(amount, feePct float64) float64 {
	return amount / (1 + feePct/100)
}

// Reference returns the benchmark local amount at the central-bank rate.
func Reference(spend, referenceRate float64) float64 {
	return spend * referenceRate
}

// LossPercent returns the shortfall of actual versus reference in percent.
// A non-positive reference yields 0.
func LossPercent(actual, reference float64) float64 {
	if reference <= 0 {
		return 0
	}
	return ((reference - actual) / reference) * 100
}

// ImpliedRate derives the effective card rate from a past transaction where
// spent EUR were charged and localPaid local units were received.
func ImpliedRate(localPaid, spent float64) (float64, bool) {
	if spent <= 0 {
		return 0, false
	}
	return localPaid / spent, true
}

// Compare evaluates every path for the given amount. Only a non-positive
// amount is rejected; all rates and fees are taken as given.
func Compare(spend float64, rates domain.Rates, fees domain.Fees) (domain.Comparison, error) {
	if math.IsNaN(spend) || spend <= 0 {
		return domain.Comparison{}, fmt.Errorf("%w: amount must be positive, got %v", domain.ErrValidation, spend)
	}

	reference := Reference(spend, rates.Reference)

	direct := Direct(spend, rates.Direct)
	transferNet, transferUSD, transfer := transferLegs(spend, fees.TransferPct, rates.Cross, rates.Secondary)
	cashNetSpend := cashNet(spend, fees.CashPct, fees.CashFixed)
	cash := cashNetSpend * rates.Street

	results := []domain.PathResult{
		newResult(domain.PathDirect, spend, 0, direct, reference),
		newResult(domain.PathTransfer, transferNet, transferUSD, transfer, reference),
		newResult(domain.PathCash, cashNetSpend, 0, cash, reference),
	}

	// MaxBy keeps the earliest element on ties, matching the declared path order.
	best := lo.MaxBy(results, func(a, b domain.PathResult) bool { return a.Received > b.Received })
	worst := lo.MinBy(results, func(a, b domain.PathResult) bool { return a.Received < b.Received })

	return domain.Comparison{
		Amount:    spend,
		Reference: reference,
		Results:   results,
		Winner:    best.Path,
		Savings:   best.Received - worst.Received,
	}, nil
}

func newResult(path domain.Path, net, intermediate, received, reference float64) domain.PathResult {
	return domain.PathResult{
		Path:         path,
		NetSpend:     net,
		Intermediate: intermediate,
		Received:     received,
		Loss:         reference - received,
		LossPercent:  LossPercent(received, reference),
	}
}
