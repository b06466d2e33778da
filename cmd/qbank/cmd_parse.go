package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		format string
		flat   bool
	)

	cmd := &cobra.Command{
		Use:   "parse <bank.xml>",
		Short: "Parse a question bank and print courses, anomalies and quality issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatText, formatJSON, formatYAML); err != nil {
				return err
			}

			result, err := a.bankService().ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case format == formatText:
				return writeImportSummary(out, result)
			case flat:
				return writeValue(out, format, models.AllQuestions(result.Courses))
			default:
				return writeValue(out, format, result)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&flat, "flat", false, "Print a flat question list instead of the import result (json/yaml only)")
	return cmd
}

func writeImportSummary(w io.Writer, result *models.ImportResult) error {
	fmt.Fprintf(w, "%s: %d courses, %d questions (%s)\n",
		result.FileName, result.CourseCount, result.QuestionCount, result.Status)
	for _, c := range result.Courses {
		fmt.Fprintf(w, "  %s: %d\n", c.Name, c.Len())
	}
	for reason, n := range models.CountByReason(result.Anomalies) {
		fmt.Fprintf(w, "skipped %d, reason: %s\n", n, reason)
	}
	for _, is := range result.Issues {
		fmt.Fprintf(w, "%s: %s / %s: %s\n", is.Severity, is.Course, is.Question, is.Message)
	}
	return nil
}
