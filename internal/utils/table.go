package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth truncates wide cells in terminal tables.
const maxCellWidth = 32

// RenderTable aligns a header and rows into a plain-text grid, measuring
// display width so CJK and emoji cells line up.
func RenderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	cell := func(row []string, j int) string {
		if j < len(row) {
			return runewidth.Truncate(strings.ReplaceAll(row[j], "\n", " "), maxCellWidth, "…")
		}
		return ""
	}
	for j := range header {
		widths[j] = runewidth.StringWidth(cell(header, j))
	}
	for _, row := range rows {
		for j := range header {
			if w := runewidth.StringWidth(cell(row, j)); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for j := range header {
			if j > 0 {
				b.WriteString("  ")
			}
			v := cell(row, j)
			if j == len(header)-1 {
				b.WriteString(v)
			} else {
				b.WriteString(runewidth.FillRight(v, widths[j]))
			}
		}
		b.WriteString("\n")
	}
	writeRow(header)
	sep := make([]string, len(header))
	for j, w := range widths {
		sep[j] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
