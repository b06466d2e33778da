package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/assessment-docgen/internal/report"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		format   string
		csvPath  string
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "stats <bank.xml>",
		Short: "Print question statistics and optionally export them as CSV or Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatText, formatJSON, formatYAML); err != nil {
				return err
			}

			result, err := a.bankService().ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return err
				}
				if err := report.WriteCSV(f, result.Courses); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}
			if xlsxPath != "" {
				data, err := report.WriteExcel(result.Courses)
				if err != nil {
					return err
				}
				if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
					return err
				}
			}

			stats := report.Overall(result.Courses)
			out := cmd.OutOrStdout()
			if format != formatText {
				return writeValue(out, format, stats)
			}
			fmt.Fprintf(out, "courses: %d\nquestions: %d\n", stats.TotalCourses, stats.TotalQuestions)
			for _, t := range stats.Types() {
				fmt.Fprintf(out, "  %s: %d\n", t, stats.TypeDistribution[t])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write per-course counts to this CSV file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the statistics workbook to this file")
	return cmd
}
