package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tablesift/internal/pipeline"
)

var (
	valRequire []string
	valStrict  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Report required columns that the cleaned dataset lacks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runFile(cmd, args[0], pipeline.Input{Required: valRequire})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if res.StatusOK {
			fmt.Fprintf(out, "✓ %s\n", res.Status)
			return nil
		}
		fmt.Fprintf(out, "⚠ %s\n", res.Status)
		if valStrict {
			return fmt.Errorf("%d required column(s) missing", len(res.Missing))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringSliceVarP(&valRequire, "require", "r", nil, "required column names (comma-separated, repeatable)")
	validateCmd.Flags().BoolVar(&valStrict, "strict", false, "exit non-zero when required columns are missing")
}
