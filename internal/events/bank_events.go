package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

// EventType represents the kinds of question bank events
type EventType string

const (
	EventBankImported     EventType = "question_bank.imported"
	EventBankImportFailed EventType = "question_bank.import_failed"
	EventBankRendered     EventType = "question_bank.rendered"
)

const (
	eventSource  = "assessment-docgen"
	eventVersion = "1.0"
)

// Event is the envelope shared by all question bank events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type BankImportedEvent struct {
	JobID         string                       `json:"job_id"`
	FileName      string                       `json:"file_name"`
	CourseCount   int                          `json:"course_count"`
	QuestionCount int                          `json:"question_count"`
	CourseNames   []string                     `json:"course_names"`
	Anomalies     map[models.AnomalyReason]int `json:"anomalies,omitempty"`
	ErrorIssues   int                          `json:"error_issues"`
	WarningIssues int                          `json:"warning_issues"`
}

type BankImportFailedEvent struct {
	JobID    string `json:"job_id"`
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

type BankRenderedEvent struct {
	Rendered int                          `json:"rendered"`
	Skipped  map[models.AnomalyReason]int `json:"skipped,omitempty"`
}

// Event factory functions

func NewBankImportedEvent(result *models.ImportResult) *Event {
	data := BankImportedEvent{
		JobID:         result.JobID,
		FileName:      result.FileName,
		CourseCount:   result.CourseCount,
		QuestionCount: result.QuestionCount,
		CourseNames:   make([]string, 0, len(result.Courses)),
	}
	for _, c := range result.Courses {
		data.CourseNames = append(data.CourseNames, c.Name)
	}
	if len(result.Anomalies) > 0 {
		data.Anomalies = models.CountByReason(result.Anomalies)
	}
	for _, is := range result.Issues {
		switch is.Severity {
		case models.SeverityError:
			data.ErrorIssues++
		case models.SeverityWarning:
			data.WarningIssues++
		}
	}
	return newEvent(EventBankImported, data)
}

func NewBankImportFailedEvent(jobID, fileName, reason string, line, column int) *Event {
	return newEvent(EventBankImportFailed, BankImportFailedEvent{
		JobID:    jobID,
		FileName: fileName,
		Reason:   reason,
		Line:     line,
		Column:   column,
	})
}

func NewBankRenderedEvent(rendered int, skipped []models.Anomaly) *Event {
	data := BankRenderedEvent{Rendered: rendered}
	if len(skipped) > 0 {
		data.Skipped = models.CountByReason(skipped)
	}
	return newEvent(EventBankRendered, data)
}

func newEvent(t EventType, data interface{}) *Event {
	return &Event{
		ID:        GenerateEventID(),
		Type:      t,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// PartitionKey groups events of the same import job. Events without a job
// are keyed by their own ID.
func (e *Event) PartitionKey() string {
	switch d := e.Data.(type) {
	case BankImportedEvent:
		return d.JobID
	case BankImportFailedEvent:
		return d.JobID
	}
	return e.ID
}

// GenerateEventID returns a random UUID string
func GenerateEventID() string {
	return uuid.NewString()
}
