package fundslist

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := book.SetCellValue("Sheet1", name, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseXLSXKeyedByHeader(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Fund Name", "Focus", "Check Size"},
		{"Alpha Capital", "Fintech", "$500k"},
		{"Beta Ventures", "Real Estate", ""},
	})

	funds, err := NewParser().Parse("funds.xlsx", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(funds) != 2 {
		t.Fatalf("expected 2 funds, got %d", len(funds))
	}
	if funds[0]["Fund Name"] != "Alpha Capital" || funds[0]["Focus"] != "Fintech" {
		t.Fatalf("unexpected first fund: %v", funds[0])
	}
	if funds[1]["Check Size"] != "" {
		t.Fatalf("expected empty check size for short row, got %q", funds[1]["Check Size"])
	}
}

func TestParseDetectsXLSXByMagicWithoutExtension(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Fund Name"},
		{"Alpha Capital"},
	})

	funds, err := NewParser().Parse("download", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(funds) != 1 || funds[0]["Fund Name"] != "Alpha Capital" {
		t.Fatalf("unexpected funds: %v", funds)
	}
}

func TestParseCSV(t *testing.T) {
	data := []byte("Fund Name,Focus\nAlpha Capital,Fintech\n\nBeta Ventures,Blockchain\n")

	funds, err := NewParser().Parse("funds.csv", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(funds) != 2 {
		t.Fatalf("expected 2 funds, got %d", len(funds))
	}
	if funds[1]["Focus"] != "Blockchain" {
		t.Fatalf("unexpected second fund: %v", funds[1])
	}
}

func TestParseCSVHeaderOnlyYieldsNoFunds(t *testing.T) {
	funds, err := NewParser().Parse("funds.csv", []byte("Fund Name,Focus\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(funds) != 0 {
		t.Fatalf("expected no funds, got %v", funds)
	}
}

func TestParseRejectsGarbledCSV(t *testing.T) {
	if _, err := NewParser().Parse("funds.csv", []byte("a,\"b\nc")); err == nil {
		t.Fatalf("expected error for malformed csv")
	}
}
