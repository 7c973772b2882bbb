package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tablesift/internal/logger"
	"github.com/KaramelBytes/tablesift/internal/pipeline"
	"github.com/KaramelBytes/tablesift/internal/utils"
)

var (
	batchOutDir  string
	batchRequire []string
	batchQuiet   bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Clean and report multiple CSV/TSV/XLSX files into one directory",
	Long: `Each matched file produces <name>.cleaned.csv and <name>.summary.md in
--out-dir. Existing outputs are never overwritten: a __N suffix is added.
A failing file is reported and skipped; the command fails at the end if any
file did.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}

		outDir := batchOutDir
		if outDir == "" && cfg != nil {
			outDir = cfg.OutputDir
		}
		if outDir == "" {
			outDir = "cleaned"
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}

		out := cmd.OutOrStdout()
		var failed int
		total := len(files)
		for i, path := range files {
			if !batchQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			res, err := runFile(cmd, path, pipeline.Input{Required: batchRequire})
			if err != nil {
				failed++
				logger.L().Warn("batch file failed", "file", path, "err", err)
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ %s: %v\n", path, err)
				continue
			}
			stem := utils.Stem(path)
			csvPath := utils.UniquePath(outDir, stem, ".cleaned.csv")
			if err := utils.SafeWriteFile(csvPath, res.CSV); err != nil {
				return err
			}
			mdPath := utils.UniquePath(outDir, stem, ".summary.md")
			if err := utils.SafeWriteFile(mdPath, []byte(res.Report.Markdown())); err != nil {
				return err
			}
			if !batchQuiet {
				mark := "✓"
				if !res.StatusOK {
					mark = "⚠"
				}
				fmt.Fprintf(out, "%s %s -> %s (%s)\n", mark, filepath.Base(path), filepath.Base(csvPath), res.Status)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, and returns a
// sorted list without duplicates.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if errors.Is(err, filepath.ErrBadPattern) || len(matches) == 0 {
			matches = nil
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "directory for cleaned CSVs and summaries (default output_dir or ./cleaned)")
	batchCmd.Flags().StringSliceVarP(&batchRequire, "require", "r", nil, "required column names checked in every file")
	batchCmd.Flags().BoolVarP(&batchQuiet, "quiet", "q", false, "suppress progress output")
}
