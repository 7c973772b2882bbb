package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tablesift/internal/ingest"
	"github.com/KaramelBytes/tablesift/internal/pipeline"
	"github.com/KaramelBytes/tablesift/internal/plot"
	"github.com/KaramelBytes/tablesift/internal/utils"
)

// runFile reads path and runs the pipeline over it with the shared
// ingestion settings filled in.
func runFile(cmd *cobra.Command, path string, in pipeline.Input) (*pipeline.Result, error) {
	if !ingest.Supported(path) {
		return nil, &pipeline.Failure{Err: fmt.Errorf("%w: %s", ingest.ErrUnsupported, filepath.Ext(path))}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	opt, err := ingestOptions(cmd)
	if err != nil {
		return nil, err
	}
	in.FileName = filepath.Base(path)
	in.Data = data
	in.Ingest = opt
	if in.SampleRows == 0 {
		in.SampleRows = cfg.PreviewRows
	}
	return pipeline.Run(cmd.Context(), in)
}

// plotOptions returns the configured image size.
func plotOptions() plot.Options {
	opt := plot.DefaultOptions()
	if cfg != nil {
		if cfg.PlotWidthIn > 0 {
			opt.WidthIn = cfg.PlotWidthIn
		}
		if cfg.PlotHeightIn > 0 {
			opt.HeightIn = cfg.PlotHeightIn
		}
	}
	return opt
}

// writeOutput writes data to path atomically, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
