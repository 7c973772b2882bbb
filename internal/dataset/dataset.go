// Package dataset holds the in-memory table model shared by ingestion,
// cleaning and the read-only projections (statistics, plot, export).
package dataset

import (
	"math"
	"strconv"
)

// Kind tags the value held by a Cell.
type Kind int

const (
	Absent Kind = iota
	Text
	Number
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "absent"
	}
}

// Cell is a single table value: absent, text or number.
type Cell struct {
	Kind Kind
	Str  string
	Num  float64
}

// Null returns an absent cell.
func Null() Cell { return Cell{} }

// String returns a text cell.
func String(s string) Cell { return Cell{Kind: Text, Str: s} }

// Float returns a numeric cell.
func Float(v float64) Cell { return Cell{Kind: Number, Num: v} }

func (c Cell) IsAbsent() bool { return c.Kind == Absent }

// Equal reports element-wise equality. Text "1" and number 1 differ.
func (c Cell) Equal(o Cell) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case Text:
		return c.Str == o.Str
	case Number:
		return c.Num == o.Num
	default:
		return true
	}
}

// String renders the cell for display and CSV output. Absent cells render empty.
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Str
	case Number:
		return FormatNumber(c.Num)
	default:
		return ""
	}
}

// FormatNumber renders v in its shortest round-trip form, switching to
// exponent notation only for very large or very small magnitudes.
func FormatNumber(v float64) string {
	a := math.Abs(v)
	if a == 0 || (a >= 1e-4 && a < 1e16) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ColumnType distinguishes the two column variants.
type ColumnType int

const (
	// Object columns keep their cells as-is (text, numbers, or a mix).
	Object ColumnType = iota
	// Numeric columns hold only float64 values.
	Numeric
)

func (t ColumnType) String() string {
	if t == Numeric {
		return "numeric"
	}
	return "object"
}

// Column is a named, tagged sequence of values. Exactly one of Cells
// (Object) or Nums (Numeric) is populated.
type Column struct {
	Name  string
	Type  ColumnType
	Cells []Cell
	Nums  []float64
}

// NewObject builds an Object column.
func NewObject(name string, cells []Cell) Column {
	if cells == nil {
		cells = []Cell{}
	}
	return Column{Name: name, Type: Object, Cells: cells}
}

// NewNumeric builds a Numeric column.
func NewNumeric(name string, nums []float64) Column {
	if nums == nil {
		nums = []float64{}
	}
	return Column{Name: name, Type: Numeric, Nums: nums}
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	if c.Type == Numeric {
		return len(c.Nums)
	}
	return len(c.Cells)
}

// At returns the i-th value as a Cell regardless of the column variant.
func (c Column) At(i int) Cell {
	if c.Type == Numeric {
		return Float(c.Nums[i])
	}
	return c.Cells[i]
}

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	out := Column{Name: c.Name, Type: c.Type}
	if c.Type == Numeric {
		out.Nums = append(make([]float64, 0, len(c.Nums)), c.Nums...)
	} else {
		out.Cells = append(make([]Cell, 0, len(c.Cells)), c.Cells...)
	}
	return out
}

// Dataset is an ordered list of columns aligned by row index.
type Dataset struct {
	Columns []Column
}

// New assembles a dataset from columns; callers keep the columns aligned.
func New(cols ...Column) *Dataset {
	if cols == nil {
		cols = []Column{}
	}
	return &Dataset{Columns: cols}
}

// FromRows builds an Object-typed dataset from a header and row-major cells.
// Short rows are padded with absent cells; extra cells are dropped.
func FromRows(header []string, rows [][]Cell) *Dataset {
	cols := make([]Column, len(header))
	for j, name := range header {
		cells := make([]Cell, len(rows))
		for i, row := range rows {
			if j < len(row) {
				cells[i] = row[j]
			}
		}
		cols[j] = NewObject(name, cells)
	}
	return New(cols...)
}

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Name
	}
	return out
}

// NumRows returns the row count (0 for a dataset without columns).
func (d *Dataset) NumRows() int {
	if d == nil || len(d.Columns) == 0 {
		return 0
	}
	return d.Columns[0].Len()
}

func (d *Dataset) NumCols() int { return len(d.Columns) }

// Row returns the i-th row as cells.
func (d *Dataset) Row(i int) []Cell {
	row := make([]Cell, len(d.Columns))
	for j, c := range d.Columns {
		row[j] = c.At(i)
	}
	return row
}

// Index returns the position of the named column, or -1.
func (d *Dataset) Index(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	if i := d.Index(name); i >= 0 {
		return d.Columns[i], true
	}
	return Column{}, false
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	cols := make([]Column, len(d.Columns))
	for i, c := range d.Columns {
		cols[i] = c.Clone()
	}
	return New(cols...)
}

// Head returns a copy limited to the first n rows.
func (d *Dataset) Head(n int) *Dataset {
	if n < 0 || n > d.NumRows() {
		n = d.NumRows()
	}
	cols := make([]Column, len(d.Columns))
	for i, c := range d.Columns {
		if c.Type == Numeric {
			cols[i] = NewNumeric(c.Name, append([]float64{}, c.Nums[:n]...))
		} else {
			cols[i] = NewObject(c.Name, append([]Cell{}, c.Cells[:n]...))
		}
	}
	return New(cols...)
}

// Equal reports deep equality: same column names, types and values.
func (d *Dataset) Equal(o *Dataset) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.Columns) != len(o.Columns) {
		return false
	}
	for i := range d.Columns {
		a, b := d.Columns[i], o.Columns[i]
		if a.Name != b.Name || a.Type != b.Type || a.Len() != b.Len() {
			return false
		}
		for r := 0; r < a.Len(); r++ {
			if !a.At(r).Equal(b.At(r)) {
				return false
			}
		}
	}
	return true
}
