package export

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/mtlprog/fxcompare/internal/domain"
)

// SheetName is the sheet every writer fills.
const SheetName = "COMPARISON"

// Row is one line of the comparison table.
type Row struct {
	Label       string
	Received    float64
	LossPercent float64
	Loss        float64
	Best        bool
	Date        string
}

// Report is a comparison rendered for a spreadsheet.
type Report struct {
	Profile     string
	Currency    string
	Amount      float64
	Rows        []Row
	Winner      string
	Savings     float64
	GeneratedAt time.Time
}

// Writer sends a report to a spreadsheet destination.
type Writer interface {
	Write(ctx context.Context, r Report) error
}

// BuildReport lays out c as a reference row followed by one row per path.
func BuildReport(p domain.Profile, c domain.Comparison, d domain.Dates) Report {
	dates := map[domain.Path]string{
		domain.PathDirect:   d.DirectDate,
		domain.PathTransfer: d.TransferDate,
		domain.PathCash:     d.CashDate,
	}

	rows := make([]Row, 0, len(c.Results)+1)
	rows = append(rows, Row{
		Label:    "Reference (" + p.Bank + ")",
		Received: c.Reference,
		Date:     d.ReferenceDate,
	})
	rows = append(rows, lo.Map(c.Results, func(r domain.PathResult, _ int) Row {
		return Row{
			Label:       r.Path.Title(),
			Received:    r.Received,
			LossPercent: r.LossPercent,
			Loss:        r.Loss,
			Best:        r.Path == c.Winner,
			Date:        dates[r.Path],
		}
	})...)

	return Report{
		Profile:     p.Label(),
		Currency:    p.Currency,
		Amount:      c.Amount,
		Rows:        rows,
		Winner:      c.Winner.Title(),
		Savings:     c.Savings,
		GeneratedAt: time.Now().UTC(),
	}
}

// values flattens a report into sheet cells.
// Layout: three header lines, a blank line, then
// Path | Received | Loss % | Loss | Best | Date
func values(r Report) [][]any {
	data := [][]any{
		{"Profile", r.Profile},
		{"Amount EUR", round(r.Amount)},
		{"Generated", r.GeneratedAt.Format(time.RFC3339)},
		{},
		{"Path", "Received " + r.Currency, "Loss %", "Loss " + r.Currency, "Best", "Date"},
	}

	for _, row := range r.Rows {
		best := ""
		if row.Best {
			best = "yes"
		}
		data = append(data, []any{
			row.Label,
			round(row.Received),
			round(row.LossPercent),
			round(row.Loss),
			best,
			row.Date,
		})
	}
	return data
}

func round(v float64) float64 {
	return domain.RoundTo(v, 2)
}
