package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tablesift/internal/ingest"
)

// Global configuration structure.
type Global struct {
	// Ingestion
	NAValues  []string `mapstructure:"na_values" yaml:"na_values"`
	SheetName string   `mapstructure:"sheet_name" yaml:"sheet_name"`
	Delimiter string   `mapstructure:"delimiter" yaml:"delimiter"`

	// Output
	PreviewRows int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`

	// Plot
	PlotWidthIn  float64 `mapstructure:"plot_width_in" yaml:"plot_width_in"`
	PlotHeightIn float64 `mapstructure:"plot_height_in" yaml:"plot_height_in"`

	// HTTP server
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Defaults returns the configuration used when no file or env overrides exist.
func Defaults() *Global {
	return &Global{
		NAValues:     append([]string(nil), ingest.DefaultNAValues...),
		PreviewRows:  10,
		PlotWidthIn:  6,
		PlotHeightIn: 4,
		ListenAddr:   "127.0.0.1:8501",
		MaxUploadMB:  200,
		LogLevel:     "info",
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tablesift"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tablesift/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLESIFT")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("na_values", d.NAValues)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("preview_rows", d.PreviewRows)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("plot_width_in", d.PlotWidthIn)
	v.SetDefault("plot_height_in", d.PlotHeightIn)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("max_upload_mb", d.MaxUploadMB)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// IngestOptions maps the ingestion keys onto ingest.Options.
func (c *Global) IngestOptions() (ingest.Options, error) {
	opt := ingest.Options{NAValues: c.NAValues, Sheet: c.SheetName}
	d, err := ParseDelimiter(c.Delimiter)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	return opt, nil
}

// ParseDelimiter accepts ",", ";", "|", "tab" or "\t"; empty means auto.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "|":
		return '|', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s (use ',' | ';' | '|' | 'tab')", s)
	}
}
