package export_test

import (
	"testing"

	"github.com/KaramelBytes/tablesift/internal/clean"
	"github.com/KaramelBytes/tablesift/internal/dataset"
	"github.com/KaramelBytes/tablesift/internal/export"
	"github.com/KaramelBytes/tablesift/internal/ingest"
)

func TestCSV(t *testing.T) {
	ds := dataset.New(
		dataset.NewObject("name", []dataset.Cell{dataset.String("Ada, Countess"), dataset.String("Missing")}),
		dataset.NewNumeric("score", []float64{1, 2.5}),
	)
	got, err := export.CSV(ds)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	want := "name,score\n\"Ada, Countess\",1\nMissing,2.5\n"
	if string(got) != want {
		t.Fatalf("csv = %q, want %q", got, want)
	}
}

func TestCSVHeaderOnly(t *testing.T) {
	got, err := export.CSV(dataset.FromRows([]string{"a", "b"}, nil))
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if string(got) != "a,b\n" {
		t.Fatalf("csv = %q", got)
	}
}

func TestCSVRoundTripThroughNormalize(t *testing.T) {
	in := "k,v,n\na,1,1\na,1,1\nb,,3\n"
	raw, err := ingest.Load("in.csv", []byte(in), ingest.DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cleaned := clean.Normalize(raw)
	out, err := export.CSV(cleaned)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if string(out) != "k,v,n\na,1,1\nb,Missing,3\n" {
		t.Fatalf("csv = %q", out)
	}
	back, err := ingest.Load(export.FileName, out, ingest.DefaultOptions())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !clean.Normalize(back).Equal(cleaned) {
		t.Fatalf("reloading the download should normalize to the same dataset")
	}
}
