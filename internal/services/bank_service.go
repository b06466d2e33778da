package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/SAP-F-2025/assessment-docgen/internal/errors"
	"github.com/SAP-F-2025/assessment-docgen/internal/events"
	"github.com/SAP-F-2025/assessment-docgen/internal/models"
	"github.com/SAP-F-2025/assessment-docgen/internal/parser"
	"github.com/SAP-F-2025/assessment-docgen/internal/validator"
)

// BankService imports Moodle XML question banks
type BankService interface {
	Import(ctx context.Context, r io.Reader, filename string) (*models.ImportResult, error)
	ImportFile(ctx context.Context, path string) (*models.ImportResult, error)
}

type BankServiceConfig struct {
	Parser parser.Options
	// MaxUploadBytes bounds the accepted input size. Zero disables the check.
	MaxUploadBytes int64
}

type bankService struct {
	parser    *parser.Parser
	maxBytes  int64
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewBankService wires the import pipeline. A nil publisher disables events.
func NewBankService(cfg BankServiceConfig, v *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) BankService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &bankService{
		parser:    parser.New(cfg.Parser),
		maxBytes:  cfg.MaxUploadBytes,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *bankService) ImportFile(ctx context.Context, path string) (*models.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank: %w", err)
	}
	defer f.Close()

	return s.Import(ctx, f, filepath.Base(path))
}

// Import parses a whole bank. Structural parse failures are returned as
// *errors.ParseError; grouping and extraction anomalies and quality issues
// are reported in the result.
func (s *bankService) Import(ctx context.Context, r io.Reader, filename string) (*models.ImportResult, error) {
	start := time.Now()
	jobID := uuid.NewString()
	logger := s.logger.With("job_id", jobID, "filename", filename)

	logger.InfoContext(ctx, "Starting question bank import")

	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && ext != ".xml" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := s.read(r)
	if err != nil {
		logger.WarnContext(ctx, "Rejected question bank", "error", err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := s.parser.ParseBytes(data)
	if err != nil {
		var perr *apperrors.ParseError
		if errors.As(err, &perr) {
			logger.ErrorContext(ctx, "Failed to parse question bank",
				"line", perr.Line,
				"column", perr.Column,
				"error", perr.Msg)
			s.publish(ctx, events.NewBankImportFailedEvent(jobID, filename, perr.Msg, perr.Line, perr.Column))
		}
		return nil, fmt.Errorf("failed to import %s: %w", filename, err)
	}

	result := &models.ImportResult{
		JobID:         jobID,
		FileName:      filename,
		Status:        models.ImportCompleted,
		Courses:       parsed.Courses,
		CourseCount:   len(parsed.Courses),
		QuestionCount: len(parsed.Questions()),
		Anomalies:     parsed.Anomalies,
		Issues:        s.validator.Question().CheckCourses(parsed.Courses),
	}
	if validator.HasErrors(result.Issues) {
		result.Status = models.ImportValidationFailed
	}

	for reason, n := range models.CountByReason(result.Anomalies) {
		logger.WarnContext(ctx, "Import anomalies", "reason", reason, "count", n)
	}
	logger.InfoContext(ctx, "Question bank imported",
		"status", result.Status,
		"courses", result.CourseCount,
		"questions", result.QuestionCount,
		"skipped", len(result.Anomalies),
		"issues", len(result.Issues),
		"duration", time.Since(start).String())

	s.publish(ctx, events.NewBankImportedEvent(result))
	return result, nil
}

func (s *bankService) read(r io.Reader) ([]byte, error) {
	if s.maxBytes > 0 {
		r = io.LimitReader(r, s.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrInputTooLarge, s.maxBytes)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	return data, nil
}

// publish never fails the import; delivery errors are only logged.
func (s *bankService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish import event",
			"event_type", event.Type,
			"error", err)
	}
}
