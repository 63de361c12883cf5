package export

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/mtlprog/fxcompare/internal/domain"
)

// HistorySheetName is the append-only log of exported comparisons.
const HistorySheetName = "HISTORY"

// historyCol describes one column in the HISTORY sheet.
type historyCol struct {
	header string
	value  func(r Report) any
}

func receivedBy(label string) func(Report) any {
	return func(r Report) any {
		row, ok := lo.Find(r.Rows, func(row Row) bool { return row.Label == label })
		if !ok {
			return nil
		}
		return round(row.Received)
	}
}

var historyColumns = []historyCol{
	{header: "Date", value: func(r Report) any { return r.GeneratedAt.Format("02.01.2006") }},
	{header: "Profile", value: func(r Report) any { return r.Profile }},
	{header: "Amount EUR", value: func(r Report) any { return round(r.Amount) }},
	{header: "Reference", value: func(r Report) any {
		if len(r.Rows) == 0 {
			return nil
		}
		return round(r.Rows[0].Received)
	}},
	{header: "Direct", value: receivedBy(domain.PathDirect.Title())},
	{header: "Transfer", value: receivedBy(domain.PathTransfer.Title())},
	{header: "Cash", value: receivedBy(domain.PathCash.Title())},
	{header: "Best", value: func(r Report) any { return r.Winner }},
	{header: "Savings", value: func(r Report) any { return round(r.Savings) }},
}

// buildHistoryRows returns the header row and one data row for r.
func buildHistoryRows(r Report) (header, data []any) {
	header = lo.Map(historyColumns, func(c historyCol, _ int) any { return c.header })
	data = lo.Map(historyColumns, func(c historyCol, _ int) any { return c.value(r) })
	return header, data
}

// historyRange covers every HISTORY column, A through the last one.
func historyRange() string {
	last, _ := excelize.ColumnNumberToName(len(historyColumns))
	return HistorySheetName + "!A:" + last
}

// AppendHistory writes the header if the HISTORY sheet is new or empty, then
// appends one row for r.
func (w *SheetsWriter) AppendHistory(ctx context.Context, r Report) error {
	if err := w.ensureSheet(ctx, HistorySheetName); err != nil {
		return fmt.Errorf("ensuring %s sheet: %w", HistorySheetName, err)
	}

	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now().UTC()
	}
	header, data := buildHistoryRows(r)

	existing, err := w.svc.Spreadsheets.Values.Get(
		w.spreadsheetID, HistorySheetName+"!A1:A1",
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading %s header: %w", HistorySheetName, err)
	}

	if len(existing.Values) == 0 {
		_, err = w.svc.Spreadsheets.Values.Update(
			w.spreadsheetID,
			HistorySheetName+"!A1",
			&sheets.ValueRange{Values: [][]any{header}},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("writing %s header: %w", HistorySheetName, err)
		}
	}

	_, err = w.svc.Spreadsheets.Values.Append(
		w.spreadsheetID,
		historyRange(),
		&sheets.ValueRange{Values: [][]any{data}},
	).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending %s row: %w", HistorySheetName, err)
	}

	return nil
}
