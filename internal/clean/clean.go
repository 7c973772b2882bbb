// Package clean normalizes raw datasets: absent cells are filled with a
// sentinel, duplicate rows are dropped, and columns whose every value parses
// as a number are converted to Numeric. Each step returns a new dataset and
// never mutates its input.
package clean

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tablesift/internal/dataset"
)

// Sentinel replaces every absent cell.
const Sentinel = "Missing"

// Normalize runs FillMissing, DropDuplicates and CoerceNumeric in order.
// Coercion can make distinct text rows equal ("1" and "1.0" both become 1),
// so duplicates are dropped once more on the coerced result.
func Normalize(raw *dataset.Dataset) *dataset.Dataset {
	return DropDuplicates(CoerceNumeric(DropDuplicates(FillMissing(raw))))
}

// FillMissing replaces absent cells with the Sentinel text.
func FillMissing(ds *dataset.Dataset) *dataset.Dataset {
	out := ds.Clone()
	for i := range out.Columns {
		c := &out.Columns[i]
		if c.Type == dataset.Numeric {
			continue
		}
		for r, cell := range c.Cells {
			if cell.IsAbsent() {
				c.Cells[r] = dataset.String(Sentinel)
			}
		}
	}
	return out
}

// DropDuplicates removes rows equal to an earlier row, keeping the first
// occurrence and the relative order of survivors.
func DropDuplicates(ds *dataset.Dataset) *dataset.Dataset {
	n := ds.NumRows()
	keep := make([]int, 0, n)
	seen := make(map[string]struct{}, n)
	var b strings.Builder
	for r := 0; r < n; r++ {
		b.Reset()
		for _, c := range ds.Columns {
			writeKey(&b, c.At(r))
		}
		key := b.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, r)
	}
	cols := make([]dataset.Column, len(ds.Columns))
	for i, c := range ds.Columns {
		if c.Type == dataset.Numeric {
			nums := make([]float64, len(keep))
			for k, r := range keep {
				nums[k] = c.Nums[r]
			}
			cols[i] = dataset.NewNumeric(c.Name, nums)
			continue
		}
		cells := make([]dataset.Cell, len(keep))
		for k, r := range keep {
			cells[k] = c.Cells[r]
		}
		cols[i] = dataset.NewObject(c.Name, cells)
	}
	return dataset.New(cols...)
}

// writeKey appends an unambiguous encoding of a cell: kind tag, then a
// length-prefixed payload.
func writeKey(b *strings.Builder, c dataset.Cell) {
	var payload string
	switch c.Kind {
	case dataset.Text:
		b.WriteByte('t')
		payload = c.Str
	case dataset.Number:
		b.WriteByte('n')
		if c.Num == 0 {
			payload = "0" // -0 == 0
		} else {
			payload = strconv.FormatFloat(c.Num, 'g', -1, 64)
		}
	default:
		b.WriteByte('a')
	}
	b.WriteString(strconv.Itoa(len(payload)))
	b.WriteByte(':')
	b.WriteString(payload)
}

// CoerceNumeric converts each column to Numeric when every one of its values
// parses as a number; otherwise the column is copied unchanged. Zero-length
// columns keep their type.
func CoerceNumeric(ds *dataset.Dataset) *dataset.Dataset {
	cols := make([]dataset.Column, len(ds.Columns))
	for i, c := range ds.Columns {
		if nums, ok := coerceColumn(c); ok {
			cols[i] = dataset.NewNumeric(c.Name, nums)
		} else {
			cols[i] = c.Clone()
		}
	}
	return dataset.New(cols...)
}

func coerceColumn(c dataset.Column) ([]float64, bool) {
	if c.Type == dataset.Numeric {
		return append([]float64{}, c.Nums...), true
	}
	if len(c.Cells) == 0 {
		return nil, false
	}
	nums := make([]float64, len(c.Cells))
	for i, cell := range c.Cells {
		v, ok := ParseCell(cell)
		if !ok {
			return nil, false
		}
		nums[i] = v
	}
	return nums, true
}

// ParseCell returns the numeric value of a cell. Absent cells never parse.
func ParseCell(c dataset.Cell) (float64, bool) {
	switch c.Kind {
	case dataset.Number:
		return c.Num, true
	case dataset.Text:
		return ParseNumber(c.Str)
	default:
		return 0, false
	}
}

var numberRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber accepts decimal and scientific notation with an optional sign,
// ignoring surrounding whitespace. Infinities, NaN, hex floats, digit
// separators and out-of-range values are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numberRe.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
