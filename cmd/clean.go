package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tablesift/internal/pipeline"
)

var cleanOutput string

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Normalize a dataset and write the cleaned CSV",
	Long: `Fill missing cells with "Missing", drop duplicate rows and convert columns
whose every value is numeric. The cleaned CSV goes to --output or stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runFile(cmd, args[0], pipeline.Input{})
		if err != nil {
			return err
		}
		if cleanOutput == "" {
			_, err := cmd.OutOrStdout().Write(res.CSV)
			return err
		}
		if err := writeOutput(cleanOutput, res.CSV); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d rows x %d columns to %s\n", res.Cleaned.NumRows(), res.Cleaned.NumCols(), cleanOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "path to write the cleaned CSV (default stdout)")
}
