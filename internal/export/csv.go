// Package export encodes a cleaned dataset for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/KaramelBytes/tablesift/internal/dataset"
)

const (
	// FileName is the suggested name of the cleaned download.
	FileName = "cleaned_data.csv"
	// ContentType is the MIME type of the cleaned download.
	ContentType = "text/csv"
)

// WriteCSV writes ds as UTF-8 comma-separated text with a header row,
// keeping the dataset's row and column order.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, ds.NumCols())
	for i := 0; i < ds.NumRows(); i++ {
		for j, c := range ds.Columns {
			rec[j] = c.At(i).String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSV returns the encoded bytes of WriteCSV.
func CSV(ds *dataset.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
