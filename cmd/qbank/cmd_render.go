package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
	"github.com/SAP-F-2025/assessment-docgen/internal/services"
	"github.com/SAP-F-2025/assessment-docgen/internal/tmpl"
	"github.com/SAP-F-2025/assessment-docgen/internal/utils"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		format       string
		preset       string
		templates    []string
		metadataPath string
		course       string
		start        int
	)

	cmd := &cobra.Command{
		Use:   "render <bank.xml>",
		Short: "Render every question of a bank through its type's template",
		Long: `Render every question of a bank into IR nodes.

Each question type uses the selected preset unless a template file is given
with --template type=path. Template files may be v2 or legacy v1 documents
in YAML or JSON; v1 documents are migrated on load. Questions whose type has
no template are skipped and counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatText, formatJSON, formatYAML); err != nil {
				return err
			}

			meta := models.NewMetadata()
			if metadataPath != "" {
				if err := readInto(metadataPath, &meta); err != nil {
					return err
				}
			}
			if err := a.validator.ValidateMetadata(meta); err != nil {
				return fmt.Errorf("invalid metadata: %w", err)
			}

			configs, err := loadTemplates(a.ops, preset, templates)
			if err != nil {
				return err
			}

			result, err := a.bankService().ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			questions := models.AllQuestions(result.Courses)
			if course != "" {
				questions = nil
				for _, c := range result.Courses {
					if c.Name == course {
						questions = c.Questions
					}
				}
			}

			rendered, err := a.renderService().RenderQuestions(cmd.Context(), &services.RenderRequest{
				Questions:   questions,
				Templates:   configs,
				Metadata:    meta,
				StartNumber: start,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != formatText {
				return writeValue(out, format, rendered)
			}
			for _, q := range rendered.Questions {
				if err := writeNodes(out, q.Nodes); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			for t, n := range rendered.SkippedByType() {
				fmt.Fprintf(out, "skipped %d, reason: no template for %s\n", n, t)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().StringVar(&preset, "preset", tmpl.PresetIDTableDefault, "Preset used for types without --template")
	cmd.Flags().StringArrayVarP(&templates, "template", "t", nil, "Template file for one type, as type=path (repeatable)")
	cmd.Flags().StringVarP(&metadataPath, "metadata", "m", "", "YAML or JSON file with task header metadata")
	cmd.Flags().StringVar(&course, "course", "", "Render only the named course")
	cmd.Flags().IntVar(&start, "start", 1, "Number of the first task")
	return cmd
}

// loadTemplates starts from the preset for every known type and overrides
// the types given as type=path.
func loadTemplates(log utils.Logger, preset string, overrides []string) (map[models.QuestionType]tmpl.Config, error) {
	configs := make(map[models.QuestionType]tmpl.Config, len(models.KnownTypes))
	for _, t := range models.KnownTypes {
		p, ok := tmpl.PresetByID(t, preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		configs[t] = p.Config
	}

	for _, o := range overrides {
		name, path, ok := strings.Cut(o, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --template %q: want type=path", o)
		}
		doc, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		t := models.QuestionType(name)
		if tmpl.IsLegacy(doc) {
			log.Warn("Migrating legacy template, only styles and table widths are kept", "type", t, "path", path)
		}
		cfg, err := tmpl.Resolve(doc, t)
		if err != nil {
			return nil, err
		}
		configs[t] = cfg
	}
	return configs, nil
}
