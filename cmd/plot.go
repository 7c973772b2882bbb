package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tablesift/internal/pipeline"
)

var (
	plotX, plotY string
	plotOutput   string
	plotTitle    string
	plotWidthIn  float64
	plotHeightIn float64
)

var plotCmd = &cobra.Command{
	Use:   "plot <file>",
	Short: "Render a scatter plot of two cleaned columns",
	Long: `Render column --y against column --x. Object columns are placed on
categorical positions. The image format follows the --output extension
(png, svg, pdf, jpg, eps, tif).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if plotX == "" || plotY == "" {
			return fmt.Errorf("both --x and --y are required")
		}
		opt := plotOptions()
		if plotTitle != "" {
			opt.Title = plotTitle
		}
		if plotWidthIn > 0 {
			opt.WidthIn = plotWidthIn
		}
		if plotHeightIn > 0 {
			opt.HeightIn = plotHeightIn
		}
		if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(plotOutput)), "."); ext != "" {
			opt.Format = ext
		}
		res, err := runFile(cmd, args[0], pipeline.Input{X: plotX, Y: plotY, Plot: opt})
		if err != nil {
			return err
		}
		if err := writeOutput(plotOutput, res.Plot); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s vs %s to %s\n", plotY, plotX, plotOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVar(&plotX, "x", "", "column for the X axis")
	plotCmd.Flags().StringVar(&plotY, "y", "", "column for the Y axis")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "scatter.png", "image path")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "plot title (default \"Scatter Plot\")")
	plotCmd.Flags().Float64Var(&plotWidthIn, "width", 0, "image width in inches (overrides config)")
	plotCmd.Flags().Float64Var(&plotHeightIn, "height", 0, "image height in inches (overrides config)")
}
