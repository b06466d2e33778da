package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/SAP-F-2025/assessment-docgen/internal/errors"
	"github.com/SAP-F-2025/assessment-docgen/internal/models"
	"github.com/SAP-F-2025/assessment-docgen/internal/tmpl"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <template>...",
		Short: "Validate v2 template files (YAML or JSON)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				doc, err := readDocument(path)
				if err != nil {
					return err
				}
				err = a.validator.ValidateTemplate(doc)
				if err == nil {
					fmt.Fprintf(out, "%s: ok\n", path)
					continue
				}
				var verrs apperrors.ValidationErrors
				if !errors.As(err, &verrs) {
					return err
				}
				failed++
				for _, m := range verrs.Messages() {
					fmt.Fprintf(out, "%s: %s\n", path, m)
				}
				a.ops.Debug("Template rejected", "path", path, "errors", len(verrs))
			}
			if failed > 0 {
				return apperrors.NewValidationError("template", fmt.Sprintf("%d of %d files invalid", failed, len(args)), nil)
			}
			return nil
		},
	}
}

func newMigrateCmd(a *app) *cobra.Command {
	var (
		questionType string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "migrate <v1-config>",
		Short: "Convert a legacy v1 template config to v2",
		Long: `Convert a legacy v1 template config to v2.

The result is the table_default preset for the question type with the legacy
styles and table column widths applied. Other legacy layout settings are not
carried over.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatJSON, formatYAML); err != nil {
				return err
			}
			var v1 map[string]any
			if err := readInto(args[0], &v1); err != nil {
				return err
			}
			cfg := tmpl.Migrate(v1, models.QuestionType(questionType))
			a.ops.Debug("Migrated template", "type", questionType, "blocks", len(cfg.Blocks))
			return writeValue(cmd.OutOrStdout(), format, cfg)
		},
	}

	cmd.Flags().StringVar(&questionType, "type", string(models.MultipleChoice), "Question type the config applies to")
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "Output format: json or yaml")
	return cmd
}

func newPresetsCmd(a *app) *cobra.Command {
	var (
		questionType string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Print the built-in template presets for a question type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatJSON, formatYAML); err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), format, tmpl.PresetsFor(models.QuestionType(questionType)))
		},
	}

	cmd.Flags().StringVar(&questionType, "type", string(models.MultipleChoice), "Question type")
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "Output format: json or yaml")
	return cmd
}
