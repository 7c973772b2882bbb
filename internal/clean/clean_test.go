package clean

import (
	"math/rand"
	"testing"

	ds "github.com/KaramelBytes/tablesift/internal/dataset"
)

func TestNormalizeDedupAndFill(t *testing.T) {
	raw := ds.FromRows([]string{"k", "v"}, [][]ds.Cell{
		{ds.String("a"), ds.Float(1)},
		{ds.String("a"), ds.Float(1)},
		{ds.String("b"), ds.Null()},
	})
	got := Normalize(raw)

	want := ds.New(
		ds.NewObject("k", []ds.Cell{ds.String("a"), ds.String("b")}),
		ds.NewObject("v", []ds.Cell{ds.Float(1), ds.String(Sentinel)}),
	)
	if !got.Equal(want) {
		t.Fatalf("Normalize() = %+v, want %+v", got, want)
	}
	if got.Columns[1].Type != ds.Object {
		t.Fatalf("column v should stay object because %q does not parse", Sentinel)
	}
	// input untouched
	if !raw.Columns[1].Cells[2].IsAbsent() || raw.NumRows() != 3 {
		t.Fatalf("Normalize mutated its input")
	}
}

func TestNormalizeCoercesNumericColumn(t *testing.T) {
	raw := ds.New(ds.NewObject("n", []ds.Cell{ds.String("1"), ds.String("2"), ds.String("3")}))
	got := Normalize(raw)
	c := got.Columns[0]
	if c.Type != ds.Numeric {
		t.Fatalf("expected numeric column, got %s", c.Type)
	}
	want := []float64{1, 2, 3}
	for i, v := range want {
		if c.Nums[i] != v {
			t.Fatalf("Nums[%d] = %v, want %v", i, c.Nums[i], v)
		}
	}
}

func TestNormalizeEmptyDataset(t *testing.T) {
	raw := ds.FromRows([]string{"a", "b"}, nil)
	got := Normalize(raw)
	if got.NumRows() != 0 || got.NumCols() != 2 {
		t.Fatalf("shape = %dx%d, want 0x2", got.NumRows(), got.NumCols())
	}
	if !got.Equal(raw) {
		t.Fatalf("empty dataset should come back unchanged in shape and type")
	}
	if got := Normalize(ds.New()); got.NumCols() != 0 {
		t.Fatalf("dataset without columns should stay empty")
	}
}

func TestCoercionIsAllOrNothing(t *testing.T) {
	raw := ds.New(
		ds.NewObject("mixed", []ds.Cell{ds.String("1"), ds.String("x"), ds.String("3")}),
		ds.NewObject("missing", []ds.Cell{ds.Null(), ds.Null(), ds.Null()}),
		ds.NewObject("ok", []ds.Cell{ds.String(" 1.5 "), ds.Float(2), ds.String("-3e2")}),
	)
	got := Normalize(raw)
	mixed, _ := got.Column("mixed")
	if mixed.Type != ds.Object || mixed.Cells[0].Kind != ds.Text || mixed.Cells[0].Str != "1" {
		t.Fatalf("mixed column must keep original text values, got %+v", mixed)
	}
	missing, _ := got.Column("missing")
	if missing.Type != ds.Object {
		t.Fatalf("all-sentinel column must stay object")
	}
	ok, _ := got.Column("ok")
	if ok.Type != ds.Numeric || ok.Nums[0] != 1.5 || ok.Nums[1] != 2 || ok.Nums[2] != -300 {
		t.Fatalf("unexpected coercion result: %+v", ok)
	}
}

func TestDuplicatesAfterFill(t *testing.T) {
	// Rows differ only in a cell that gets filled: they collapse into one.
	raw := ds.FromRows([]string{"a", "b"}, [][]ds.Cell{
		{ds.String("x"), ds.Null()},
		{ds.String("x"), ds.String(Sentinel)},
	})
	if got := Normalize(raw); got.NumRows() != 1 {
		t.Fatalf("rows = %d, want 1", got.NumRows())
	}
}

func TestNormalizeDropsRowsEqualAfterCoercion(t *testing.T) {
	raw := ds.FromRows([]string{"n"}, [][]ds.Cell{{ds.String("1")}, {ds.String("1.0")}, {ds.String("2")}})
	got := Normalize(raw)
	if got.NumRows() != 2 || got.Columns[0].Nums[0] != 1 || got.Columns[0].Nums[1] != 2 {
		t.Fatalf("unexpected result: %+v", got.Columns[0])
	}
}

func TestDropDuplicatesTextVersusNumber(t *testing.T) {
	raw := ds.FromRows([]string{"a"}, [][]ds.Cell{{ds.String("1")}, {ds.Float(1)}})
	if got := DropDuplicates(raw); got.NumRows() != 2 {
		t.Fatalf("text \"1\" and number 1 are distinct rows, got %d rows", got.NumRows())
	}
}

func TestParseNumber(t *testing.T) {
	accept := map[string]float64{
		"0": 0, "-7": -7, "+3": 3, "1.": 1, ".5": 0.5, "2.50": 2.5,
		"1e3": 1000, "1E-2": 0.01, "  42  ": 42, "-1.5e+2": -150,
	}
	for in, want := range accept {
		got, ok := ParseNumber(in)
		if !ok || got != want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, true", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "Missing", "abc", "1,000", "inf", "NaN", "0x1p-2", "1e", "e5", ".", "1_000", "1e999", "--1"} {
		if _, ok := ParseNumber(in); ok {
			t.Errorf("ParseNumber(%q) unexpectedly succeeded", in)
		}
	}
}

// randomDataset draws small values so duplicates and absent cells are common.
func randomDataset(rng *rand.Rand) *ds.Dataset {
	ncol := 1 + rng.Intn(4)
	nrow := rng.Intn(12)
	header := make([]string, ncol)
	for j := range header {
		header[j] = string(rune('a' + j))
	}
	rows := make([][]ds.Cell, nrow)
	for i := range rows {
		row := make([]ds.Cell, ncol)
		for j := range row {
			switch rng.Intn(5) {
			case 0:
				row[j] = ds.Null()
			case 1:
				row[j] = ds.Float(float64(rng.Intn(3)))
			case 2:
				row[j] = ds.String([]string{"x", "y", "1.5"}[rng.Intn(3)])
			default:
				row[j] = ds.String([]string{"1", "2", "3e1"}[rng.Intn(3)])
			}
		}
		rows[i] = row
	}
	return ds.FromRows(header, rows)
}

func TestNormalizeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 300; iter++ {
		raw := randomDataset(rng)
		got := Normalize(raw)

		for _, c := range got.Columns {
			for r := 0; r < c.Len(); r++ {
				if c.At(r).IsAbsent() {
					t.Fatalf("iter %d: absent cell in column %s", iter, c.Name)
				}
			}
		}

		for i := 0; i < got.NumRows(); i++ {
			for j := i + 1; j < got.NumRows(); j++ {
				if rowsEqual(got.Row(i), got.Row(j)) {
					t.Fatalf("iter %d: rows %d and %d are identical", iter, i, j)
				}
			}
		}

		if again := Normalize(got); !again.Equal(got) {
			t.Fatalf("iter %d: Normalize is not idempotent", iter)
		}

		deduped := DropDuplicates(FillMissing(raw))
		for j, c := range got.Columns {
			allParse := deduped.Columns[j].Len() > 0
			for r := 0; r < deduped.Columns[j].Len(); r++ {
				if _, ok := ParseCell(deduped.Columns[j].At(r)); !ok {
					allParse = false
				}
			}
			if (c.Type == ds.Numeric) != allParse {
				t.Fatalf("iter %d: column %s numeric=%v but allParse=%v", iter, c.Name, c.Type == ds.Numeric, allParse)
			}
		}
	}
}

func rowsEqual(a, b []ds.Cell) bool {
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
