package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tablesift/internal/config"
	"github.com/KaramelBytes/tablesift/internal/ingest"
	"github.com/KaramelBytes/tablesift/internal/logger"
)

var (
	cfgFile  string
	debug    bool
	logLevel string

	// Ingestion overrides shared by every file-reading command.
	flagDelimiter string
	flagSheet     string
	flagNAValues  []string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tablesift",
	Short: "tablesift: clean, validate and inspect tabular datasets",
	Long: `tablesift loads CSV/TSV/XLSX files, fills missing cells, drops duplicate rows,
converts all-numeric columns and reports required columns that are absent.
Every view is available as a subcommand, and "serve" runs the same pipeline
behind a single-page upload form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.tablesift/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug output")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	pf.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (default sniffed by extension)")
	pf.StringVar(&flagSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	pf.StringSliceVar(&flagNAValues, "na-values", nil, "tokens read as missing (replaces the configured list)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	logger.SetLevel(cfg.LogLevel)
}

// ingestOptions merges the configured ingestion settings with CLI overrides.
func ingestOptions(cmd *cobra.Command) (ingest.Options, error) {
	if cfg == nil {
		cfg = cfgpkg.Defaults()
	}
	c := *cfg
	f := cmd.Flags()
	if f.Changed("delimiter") {
		c.Delimiter = flagDelimiter
	}
	if f.Changed("sheet") {
		c.SheetName = flagSheet
	}
	if f.Changed("na-values") {
		c.NAValues = flagNAValues
	}
	return c.IngestOptions()
}
