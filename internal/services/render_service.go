package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/assessment-docgen/internal/events"
	"github.com/SAP-F-2025/assessment-docgen/internal/ir"
	"github.com/SAP-F-2025/assessment-docgen/internal/models"
	"github.com/SAP-F-2025/assessment-docgen/internal/tmpl"
)

// RenderService renders batches of questions into IR with skip accounting
type RenderService interface {
	RenderQuestions(ctx context.Context, req *RenderRequest) (*RenderResult, error)
}

type RenderRequest struct {
	Questions []*models.Question
	// Templates maps a question type to its config. Questions of types
	// without an entry are skipped.
	Templates map[models.QuestionType]tmpl.Config
	Metadata  models.Metadata
	// StartNumber is the task number of the first rendered question. Defaults to 1.
	StartNumber int
}

type RenderedQuestion struct {
	Number   int              `json:"number"`
	Question *models.Question `json:"question"`
	Nodes    []ir.Node        `json:"nodes"`
}

type RenderResult struct {
	Questions []RenderedQuestion `json:"questions"`
	// Skipped holds one no_template record per skipped question; Detail is the type.
	Skipped []models.Anomaly `json:"skipped,omitempty"`
	// Errors holds one render_error record per question rendered as a diagnostic.
	Errors []models.Anomaly `json:"errors,omitempty"`
}

// SkippedByType counts skipped questions per question type.
func (r *RenderResult) SkippedByType() map[models.QuestionType]int {
	out := make(map[models.QuestionType]int)
	for _, s := range r.Skipped {
		out[models.QuestionType(s.Detail)]++
	}
	return out
}

// DefaultTemplates returns the table_default preset for every known type.
func DefaultTemplates() map[models.QuestionType]tmpl.Config {
	out := make(map[models.QuestionType]tmpl.Config, len(models.KnownTypes))
	for _, t := range models.KnownTypes {
		out[t] = tmpl.PresetTableDefault(t)
	}
	return out
}

type renderService struct {
	renderer  *tmpl.Renderer
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewRenderService(opts tmpl.RenderOptions, publisher events.EventPublisher, logger *slog.Logger) RenderService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &renderService{
		renderer:  tmpl.NewRenderer(opts),
		publisher: publisher,
		logger:    logger,
	}
}

// RenderQuestions numbers rendered questions consecutively from
// req.StartNumber; skipped questions do not take a number.
func (s *renderService) RenderQuestions(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	number := req.StartNumber
	if number <= 0 {
		number = 1
	}

	result := &RenderResult{Questions: make([]RenderedQuestion, 0, len(req.Questions))}
	for _, q := range req.Questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cfg, ok := req.Templates[q.Type]
		if !ok {
			result.Skipped = append(result.Skipped, models.Anomaly{
				Reason: models.AnomalyNoTemplate,
				Detail: string(q.Type),
			})
			continue
		}

		nodes := s.renderer.Render(cfg, q, req.Metadata, number)
		for _, n := range nodes {
			if n.Kind == ir.KindDiagnostic {
				result.Errors = append(result.Errors, models.Anomaly{
					Reason: models.AnomalyRenderError,
					Detail: q.Name + ": " + n.Diagnostic.Message(),
				})
			}
		}
		result.Questions = append(result.Questions, RenderedQuestion{Number: number, Question: q, Nodes: nodes})
		number++
	}

	for t, n := range result.SkippedByType() {
		s.logger.WarnContext(ctx, "Skipped questions without template", "type", t, "count", n)
	}
	s.logger.InfoContext(ctx, "Questions rendered",
		"rendered", len(result.Questions),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors))

	if s.publisher != nil {
		event := events.NewBankRenderedEvent(len(result.Questions), result.Skipped)
		if err := s.publisher.PublishEvent(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish render event", "error", err)
		}
	}
	return result, nil
}
