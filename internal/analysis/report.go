// Package analysis builds the read-only projections of a cleaned dataset:
// per-column summary statistics and a markdown-friendly report.
package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tablesift/internal/clean"
	"github.com/KaramelBytes/tablesift/internal/dataset"
)

// Report is a markdown-friendly view of one pipeline run.
type Report struct {
	Name     string       `json:"name"`
	RunID    string       `json:"run_id,omitempty"`
	RawRows  int          `json:"raw_rows"`
	Rows     int          `json:"rows"`
	Cols     []ColumnInfo `json:"columns"`
	Required []string     `json:"required"`
	Missing  []string     `json:"missing"`
	Status   string       `json:"status"`
	StatusOK bool         `json:"status_ok"`
	Stats    []NumSummary `json:"stats"`
	Samples  [][]string   `json:"samples,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
}

// ColumnInfo describes one cleaned column.
type ColumnInfo struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Filled int    `json:"filled"`
	Unique int    `json:"unique"`
}

// NewReport summarizes a raw/cleaned pair. sampleRows <= 0 disables samples.
func NewReport(name string, raw, cleaned *dataset.Dataset, sampleRows int) *Report {
	rep := &Report{
		Name:     name,
		RawRows:  raw.NumRows(),
		Rows:     cleaned.NumRows(),
		Required: []string{},
		Missing:  []string{},
		Stats:    Describe(cleaned),
	}
	for _, c := range cleaned.Columns {
		info := ColumnInfo{Name: c.Name, Type: c.Type.String(), Unique: unique(c)}
		if rc, ok := raw.Column(c.Name); ok {
			for r := 0; r < rc.Len(); r++ {
				if rc.At(r).IsAbsent() {
					info.Filled++
				}
			}
		}
		rep.Cols = append(rep.Cols, info)
	}
	if sampleRows > 0 {
		head := cleaned.Head(sampleRows)
		for i := 0; i < head.NumRows(); i++ {
			row := head.Row(i)
			vals := make([]string, len(row))
			for j, cell := range row {
				vals[j] = cell.String()
			}
			rep.Samples = append(rep.Samples, vals)
		}
	}
	if dropped := dropped(raw, cleaned); dropped > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("dropped %d duplicate rows", dropped))
	}
	for _, ci := range rep.Cols {
		if ci.Filled > 0 && ci.Type == dataset.Object.String() && ci.Filled == rep.RawRows {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("column %s has no values (all %q)", safeName(ci.Name), clean.Sentinel))
		}
	}
	return rep
}

func dropped(raw, cleaned *dataset.Dataset) int {
	return raw.NumRows() - cleaned.NumRows()
}

func unique(c dataset.Column) int {
	seen := make(map[dataset.Cell]struct{}, c.Len())
	for r := 0; r < c.Len(); r++ {
		seen[c.At(r)] = struct{}{}
	}
	return len(seen)
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.RawRows != r.Rows {
		b.WriteString(fmt.Sprintf("Rows: %d (cleaned %d)\n", r.RawRows, r.Rows))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		b.WriteString(fmt.Sprintf("- %s: %s (unique %d", safeName(c.Name), c.Type, c.Unique))
		if c.Filled > 0 {
			b.WriteString(fmt.Sprintf(", filled %d", c.Filled))
		}
		b.WriteString(")\n")
	}

	b.WriteString("\n[REQUIRED COLUMNS]\n")
	if len(r.Required) > 0 {
		b.WriteString(fmt.Sprintf("Required: %s\n", strings.Join(r.Required, ", ")))
	}
	if r.StatusOK {
		b.WriteString("✓ ")
	} else {
		b.WriteString("⚠ ")
	}
	b.WriteString(r.Status)
	b.WriteString("\n")

	if len(r.Stats) > 0 {
		b.WriteString("\n[SUMMARY STATISTICS]\n")
		b.WriteString("| column | count | mean | std | min | 25% | 50% | 75% | max |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
		for _, s := range r.Stats {
			b.WriteString(fmt.Sprintf("| %s | %d | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
				safeVal(safeName(s.Column)), s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max))
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeVal(safeName(c.Name)))
		}
		b.WriteString(" |\n")
		b.WriteString("| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
