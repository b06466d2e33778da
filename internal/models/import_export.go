package models

type ImportJobStatus string

const (
	ImportProcessing       ImportJobStatus = "processing"
	ImportCompleted        ImportJobStatus = "completed"
	ImportFailed           ImportJobStatus = "failed"
	ImportValidationFailed ImportJobStatus = "validation_failed"
)

// AnomalyReason classifies anomalies absorbed during parsing or rendering.
type AnomalyReason string

const (
	AnomalyInvalidCategory AnomalyReason = "invalid_category"
	AnomalyEmptyCategory   AnomalyReason = "empty_category"
	AnomalyUncategorized   AnomalyReason = "uncategorized_question"
	AnomalyUnknownType     AnomalyReason = "unknown_question_type"
	AnomalyInvalidFraction AnomalyReason = "invalid_fraction"
	AnomalyNoTemplate      AnomalyReason = "no_template"
	AnomalyRenderError     AnomalyReason = "render_error"
)

// Anomaly is one absorbed irregularity. Detail carries the offending value.
type Anomaly struct {
	Reason AnomalyReason `json:"reason"`
	Detail string        `json:"detail"`
}

// CountByReason aggregates records so callers can report "N skipped, reason: ...".
func CountByReason(records []Anomaly) map[AnomalyReason]int {
	out := make(map[AnomalyReason]int)
	for _, r := range records {
		out[r.Reason]++
	}
	return out
}

type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// QuestionIssue is a quality finding for one imported question.
type QuestionIssue struct {
	Course   string        `json:"course"`
	Question string        `json:"question"`
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
}

type ImportResult struct {
	JobID         string          `json:"job_id"`
	FileName      string          `json:"file_name"`
	Status        ImportJobStatus `json:"status"`
	Courses       []*Course       `json:"courses"`
	CourseCount   int             `json:"course_count"`
	QuestionCount int             `json:"question_count"`
	Anomalies     []Anomaly       `json:"anomalies,omitempty"`
	Issues        []QuestionIssue `json:"issues,omitempty"`
}
