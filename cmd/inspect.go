package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tablesift/internal/pipeline"
	"github.com/KaramelBytes/tablesift/internal/utils"
)

var (
	insRequire    []string
	insJSON       bool
	insOutputPath string
	insSampleRows int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Produce a full report: schema, required columns, statistics and samples",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := pipeline.Input{Required: insRequire}
		if cmd.Flags().Changed("sample-rows") {
			// 0 disables samples; runFile only falls back to config for 0.
			in.SampleRows = insSampleRows
			if insSampleRows == 0 {
				in.SampleRows = -1
			}
		}
		res, err := runFile(cmd, args[0], in)
		if err != nil {
			return err
		}

		var body []byte
		if insJSON {
			b, err := utils.PrettyJSON(res.Report)
			if err != nil {
				return err
			}
			body = append(b, '\n')
		} else {
			body = []byte(res.Report.Markdown())
		}

		if insOutputPath != "" {
			if err := writeOutput(insOutputPath, body); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", insOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(body)
		return err
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringSliceVarP(&insRequire, "require", "r", nil, "required column names (comma-separated, repeatable)")
	inspectCmd.Flags().BoolVar(&insJSON, "json", false, "emit the report as JSON")
	inspectCmd.Flags().StringVarP(&insOutputPath, "output", "o", "", "optional path to write the report")
	inspectCmd.Flags().IntVar(&insSampleRows, "sample-rows", 0, "number of sample rows to include (default from config, 0 disables)")
}
