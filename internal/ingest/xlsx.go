package ingest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/tablesift/internal/dataset"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

// Read loads the selected sheet using raw (unformatted) cell values.
// Entirely blank rows are skipped.
func (xlsxReader) Read(filename string, data []byte, opt Options) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %w", ErrMalformed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoColumns
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'; available sheets: %s",
				opt.Sheet, filename, strings.Join(sheets, ", "))
		}
	}

	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %w", ErrMalformed, sheet, err)
	}
	var recs [][]string
	width := 0
	for _, row := range grid {
		if blank(row) {
			continue
		}
		recs = append(recs, row)
		if len(row) > width {
			width = len(row)
		}
	}
	if len(recs) == 0 {
		return nil, ErrNoColumns
	}

	// Data wider than the header gets unnamed columns.
	rawHeader := make([]string, width)
	copy(rawHeader, recs[0])
	for j := len(recs[0]); j < width; j++ {
		rawHeader[j] = "Unnamed: " + strconv.Itoa(j)
	}
	header := headerNames(rawHeader)
	na := opt.naSet()
	rows := make([][]dataset.Cell, 0, len(recs)-1)
	for _, rec := range recs[1:] {
		rows = append(rows, toCells(rec, na))
	}
	return dataset.FromRows(header, rows), nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
