package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tablesift/internal/pipeline"
	"github.com/KaramelBytes/tablesift/internal/utils"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Print summary statistics of the numeric columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runFile(cmd, args[0], pipeline.Input{})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		stats := res.Report.Stats
		if len(stats) == 0 {
			fmt.Fprintln(out, "No numeric columns.")
			return nil
		}
		header := []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}
		rows := make([][]string, 0, len(stats))
		for _, s := range stats {
			rows = append(rows, []string{
				s.Column, strconv.Itoa(s.Count),
				num(s.Mean), num(s.Std), num(s.Min), num(s.Q25), num(s.Median), num(s.Q75), num(s.Max),
			})
		}
		fmt.Fprint(out, utils.RenderTable(header, rows))
		return nil
	},
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

func init() {
	rootCmd.AddCommand(describeCmd)
}
