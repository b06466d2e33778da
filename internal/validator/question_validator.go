package validator

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

const MaxQuestionTextLength = 2000

const (
	msgNoText      = "Нет текста вопроса."
	msgNoAnswers   = "Нет вариантов ответов."
	msgNoCorrect   = "Нет правильного ответа."
	msgTextTooLong = "Очень длинный текст вопроса."
	msgUnknownType = "Неизвестный тип вопроса: %s."
)

// QuestionValidator runs quality checks on imported questions. Findings are
// reported, never enforced.
type QuestionValidator struct {
	structs *Validator
}

// NewQuestionValidator creates a question validator that checks struct tags
// with v
func NewQuestionValidator(v *Validator) *QuestionValidator {
	return &QuestionValidator{structs: v}
}

// Check returns the quality issues of a single question. Text and type
// findings come from the models.Question struct tags; answer checks depend
// on the type.
func (v *QuestionValidator) Check(course string, q *models.Question) []models.QuestionIssue {
	var issues []models.QuestionIssue
	add := func(severity models.IssueSeverity, msg string) {
		issues = append(issues, models.QuestionIssue{
			Course:   course,
			Question: q.Name,
			Severity: severity,
			Message:  msg,
		})
	}

	failed := v.failedRules(q)

	if failed["question_text"] == "not_blank" {
		add(models.SeverityError, msgNoText)
	}
	if failed["type"] == "question_type" {
		add(models.SeverityWarning, fmt.Sprintf(msgUnknownType, q.Type))
	}

	switch q.Type {
	case models.MultipleChoice, models.ShortAnswer:
		if len(q.Answers) == 0 && len(q.CorrectAnswers) == 0 {
			add(models.SeverityWarning, msgNoAnswers)
		}
	case models.Matching:
		if len(q.MatchingItems) == 0 {
			add(models.SeverityWarning, msgNoAnswers)
		}
	}

	switch q.Type {
	case models.MultipleChoice, models.ShortAnswer, models.TrueFalse:
		if len(q.CorrectAnswers) == 0 {
			add(models.SeverityError, msgNoCorrect)
		}
	}

	if failed["question_text"] == "max" {
		add(models.SeverityWarning, msgTextTooLong)
	}

	return issues
}

// failedRules maps each failing field to the rule it failed.
func (v *QuestionValidator) failedRules(q *models.Question) map[string]string {
	out := make(map[string]string)
	var verrs ValidationErrors
	if errors.As(v.structs.Validate(q), &verrs) {
		for _, fe := range verrs {
			out[fe.Field] = fe.Rule
		}
	}
	return out
}

// CheckCourses checks every question of every course in order.
func (v *QuestionValidator) CheckCourses(courses []*models.Course) []models.QuestionIssue {
	var issues []models.QuestionIssue
	for _, c := range courses {
		for _, q := range c.Questions {
			issues = append(issues, v.Check(c.Name, q)...)
		}
	}
	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []models.QuestionIssue) bool {
	for _, is := range issues {
		if is.Severity == models.SeverityError {
			return true
		}
	}
	return false
}
