// Package pipeline runs one synchronous pass over an uploaded file:
// ingest, normalize, validate, then the read-only projections. Every input
// that an interactive session would hold (bytes, required columns, axes) is
// passed in explicitly, so a run is a pure recomputation.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/KaramelBytes/tablesift/internal/analysis"
	"github.com/KaramelBytes/tablesift/internal/clean"
	"github.com/KaramelBytes/tablesift/internal/dataset"
	"github.com/KaramelBytes/tablesift/internal/export"
	"github.com/KaramelBytes/tablesift/internal/ingest"
	"github.com/KaramelBytes/tablesift/internal/logger"
	"github.com/KaramelBytes/tablesift/internal/plot"
	"github.com/KaramelBytes/tablesift/internal/validate"
)

// Input is everything one run depends on.
type Input struct {
	FileName string
	Data     []byte
	Ingest   ingest.Options
	// Required column names, checked against the cleaned dataset.
	Required []string
	// X and Y select the scatter axes; the plot is skipped when either is empty.
	X, Y       string
	Plot       plot.Options
	SampleRows int
}

// Result carries the cleaned dataset and every projection of it.
type Result struct {
	RunID    string
	Raw      *dataset.Dataset
	Cleaned  *dataset.Dataset
	Missing  []string
	Status   string
	StatusOK bool
	Report   *analysis.Report
	// Plot holds the rendered scatter image, nil when no axes were chosen.
	Plot []byte
	CSV  []byte
}

// Failure is the single user-facing error of a run. Nothing partial is
// returned alongside it.
type Failure struct {
	Err error
}

func (f *Failure) Error() string {
	return "An error occurred while processing the file: " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// Run executes the pipeline. Any error is a *Failure.
func Run(ctx context.Context, in Input) (*Result, error) {
	id := uuid.NewString()
	log := logger.With("run_id", id, "file", in.FileName)
	if err := ctx.Err(); err != nil {
		return nil, &Failure{Err: err}
	}

	raw, err := ingest.Load(in.FileName, in.Data, in.Ingest)
	if err != nil {
		log.Warn("ingest failed", "err", err)
		return nil, &Failure{Err: err}
	}
	cleaned := clean.Normalize(raw)
	log.Debug("normalized", "raw_rows", raw.NumRows(), "rows", cleaned.NumRows(), "cols", cleaned.NumCols())

	missing := validate.Dataset(cleaned, in.Required)
	status, ok := validate.Message(missing)
	if !ok {
		log.Info("required columns missing", "missing", missing)
	}

	rep := analysis.NewReport(in.FileName, raw, cleaned, in.SampleRows)
	rep.RunID = id
	rep.Required = append([]string{}, in.Required...)
	rep.Missing = missing
	rep.Status, rep.StatusOK = status, ok

	res := &Result{
		RunID:    id,
		Raw:      raw,
		Cleaned:  cleaned,
		Missing:  missing,
		Status:   status,
		StatusOK: ok,
		Report:   rep,
	}

	if err := ctx.Err(); err != nil {
		return nil, &Failure{Err: err}
	}
	if in.X != "" && in.Y != "" {
		img, err := plot.Scatter(cleaned, in.X, in.Y, in.Plot)
		if err != nil {
			log.Warn("plot failed", "err", err)
			return nil, &Failure{Err: err}
		}
		res.Plot = img
	}

	b, err := export.CSV(cleaned)
	if err != nil {
		return nil, &Failure{Err: fmt.Errorf("encode download: %w", err)}
	}
	res.CSV = b
	log.Info("run complete", "rows", cleaned.NumRows(), "cols", cleaned.NumCols(), "missing", len(missing))
	return res, nil
}
