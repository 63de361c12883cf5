package export

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/fxcompare/internal/conversion"
	"github.com/mtlprog/fxcompare/internal/domain"
)

var georgia = domain.Profile{Key: "georgia", Name: "Georgia", Flag: "GE", Currency: "GEL", Bank: "NBG"}

func scenarioReport(t *testing.T) Report {
	t.Helper()
	cmp, err := conversion.Compare(100,
		domain.Rates{Reference: 3.16, Street: 3.14, Direct: 3.02, Cross: 1.08, Secondary: 2.9},
		domain.Fees{TransferPct: 1.5, CashPct: 1.5, CashFixed: 1},
	)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	r := BuildReport(georgia, cmp, domain.Dates{ReferenceDate: "2024-05-01", CashDate: "2024-05-02"})
	r.GeneratedAt = time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	return r
}

func TestBuildReport(t *testing.T) {
	r := scenarioReport(t)

	if r.Profile != "GE Georgia (GEL)" || r.Currency != "GEL" || r.Amount != 100 {
		t.Errorf("header = %q %q %v", r.Profile, r.Currency, r.Amount)
	}
	if len(r.Rows) != 4 {
		t.Fatalf("rows = %d, want reference + 3 paths", len(r.Rows))
	}

	ref := r.Rows[0]
	if ref.Label != "Reference (NBG)" || ref.Received != 316 || ref.Best || ref.Date != "2024-05-01" {
		t.Errorf("reference row = %+v", ref)
	}

	wantLabels := []string{"Direct card payment", "Cross-currency transfer", "Cash (ATM + exchange)"}
	for i, want := range wantLabels {
		if r.Rows[i+1].Label != want {
			t.Errorf("row %d label = %q, want %q", i+1, r.Rows[i+1].Label, want)
		}
	}

	best := 0
	for _, row := range r.Rows {
		if row.Best {
			best++
			if row.Label != "Cross-currency transfer" {
				t.Errorf("best row = %q, want transfer", row.Label)
			}
		}
	}
	if best != 1 {
		t.Errorf("best rows = %d, want 1", best)
	}
	if r.Rows[3].Date != "2024-05-02" {
		t.Errorf("cash date = %q", r.Rows[3].Date)
	}
	if r.Winner != "Cross-currency transfer" {
		t.Errorf("winner = %q", r.Winner)
	}
}

func TestValuesLayout(t *testing.T) {
	data := values(scenarioReport(t))

	if len(data) != 9 {
		t.Fatalf("rows = %d, want 5 header lines + 4 data rows", len(data))
	}
	if data[4][1] != "Received GEL" {
		t.Errorf("table header = %v", data[4])
	}
	if data[6][1] != 302.0 || data[6][2] != 4.43 {
		t.Errorf("direct row = %v, want 302 received and 4.43%% loss", data[6])
	}
	if data[7][4] != "yes" || data[6][4] != "" {
		t.Errorf("best flags = %v / %v", data[7][4], data[6][4])
	}
}

func TestBuildHistoryRows(t *testing.T) {
	header, data := buildHistoryRows(scenarioReport(t))

	if len(header) != len(historyColumns) || len(data) != len(historyColumns) {
		t.Fatalf("header %d, data %d, want %d", len(header), len(data), len(historyColumns))
	}
	if header[0] != "Date" || header[len(header)-1] != "Savings" {
		t.Errorf("header = %v", header)
	}
	if data[0] != "03.05.2024" {
		t.Errorf("date = %v, want 03.05.2024", data[0])
	}
	if data[3] != 316.0 || data[4] != 302.0 || data[5] != 308.57 || data[6] != 306.27 {
		t.Errorf("received = %v", data[3:7])
	}
	if data[7] != "Cross-currency transfer" || data[8] != 6.57 {
		t.Errorf("best/savings = %v / %v", data[7], data[8])
	}
	if got := historyRange(); got != "HISTORY!A:I" {
		t.Errorf("historyRange() = %q", got)
	}
}

func TestBuildHistoryRowsMissingPath(t *testing.T) {
	_, data := buildHistoryRows(Report{Rows: []Row{{Label: "Reference (NBG)", Received: 10}}})
	if data[3] != 10.0 {
		t.Errorf("reference = %v", data[3])
	}
	if data[4] != nil || data[5] != nil || data[6] != nil {
		t.Errorf("missing paths should be blank, got %v", data[4:7])
	}
}

func TestXLSXWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	if err := NewXLSXWriter(path).Write(context.Background(), scenarioReport(t)); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(SheetName); err != nil || idx < 0 {
		t.Fatalf("sheet %s missing: %d, %v", SheetName, idx, err)
	}

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 9 {
		t.Fatalf("rows = %d, want 9", len(rows))
	}
	if rows[0][1] != "GE Georgia (GEL)" {
		t.Errorf("profile cell = %q", rows[0][1])
	}
	if rows[7][0] != "Cross-currency transfer" || rows[7][4] != "yes" {
		t.Errorf("transfer row = %v", rows[7])
	}

	received, err := strconv.ParseFloat(rows[7][1], 64)
	if err != nil || received != 308.57 {
		t.Errorf("transfer received = %q, want 308.57", rows[7][1])
	}
}

func TestXLSXWriterBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.xlsx")
	if err := NewXLSXWriter(path).Write(context.Background(), scenarioReport(t)); err == nil {
		t.Error("expected error for a missing directory")
	}
}
