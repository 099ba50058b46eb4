package fundslist

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
)

var zipMagic = []byte("PK\x03\x04")

// Parser decodes funds lists into header-keyed rows. XLSX workbooks are
// detected by the zip magic or file extension; everything else is treated
// as CSV.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(filename string, data []byte) ([]domain.Fund, error) {
	if isXLSX(filename, data) {
		return parseXLSX(data)
	}
	return parseCSV(data)
}

func isXLSX(filename string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return true
	}
	return bytes.HasPrefix(data, zipMagic)
}

func parseXLSX(data []byte) ([]domain.Fund, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rowsToFunds(rows), nil
}

func parseCSV(data []byte) ([]domain.Fund, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rowsToFunds(rows), nil
}

func rowsToFunds(rows [][]string) []domain.Fund {
	if len(rows) < 2 {
		return nil
	}

	header := rows[0]
	funds := make([]domain.Fund, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		fund := make(domain.Fund, len(header))
		for i, name := range header {
			key := strings.TrimSpace(name)
			if key == "" {
				key = fmt.Sprintf("column_%d", i+1)
			}
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			fund[key] = value
		}
		funds = append(funds, fund)
	}
	return funds
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
