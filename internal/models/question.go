package models

import "sort"

type QuestionType string

const (
	Essay          QuestionType = "essay"
	ShortAnswer    QuestionType = "shortanswer"
	MultipleChoice QuestionType = "multichoice"
	Matching       QuestionType = "matching"
	TrueFalse      QuestionType = "truefalse"

	// Category is the pseudo question type Moodle uses to carry category paths.
	Category QuestionType = "category"
)

// KnownTypes lists the question types with dedicated extractors, in display order.
var KnownTypes = []QuestionType{Essay, ShortAnswer, MultipleChoice, Matching, TrueFalse}

// Known reports whether t has a type-specific extractor.
func (t QuestionType) Known() bool {
	switch t {
	case Essay, ShortAnswer, MultipleChoice, Matching, TrueFalse:
		return true
	}
	return false
}

// MatchingItem pairs a matching prompt with its correct answer.
type MatchingItem struct {
	Item   string `json:"item" yaml:"item"`
	Answer string `json:"answer" yaml:"answer"`
}

// Question is a single bank entry. Answers, CorrectAnswers, MatchingItems and
// MatchingAnswers are populated only for the types that define them.
type Question struct {
	Type            QuestionType   `json:"type" validate:"question_type"`
	Name            string         `json:"name"`
	QuestionText    string         `json:"question_text" validate:"not_blank,max=2000"`
	ReferenceAnswer string         `json:"reference_answer"`
	Answers         []string       `json:"answers"`
	CorrectAnswers  []string       `json:"correct_answers"`
	MatchingItems   []MatchingItem `json:"matching_items"`
	MatchingAnswers []string       `json:"matching_answers"`
}

// IsCorrect reports whether value is one of the question's correct answers.
func (q *Question) IsCorrect(value string) bool {
	for _, c := range q.CorrectAnswers {
		if c == value {
			return true
		}
	}
	return false
}

// SortedUniqueAnswers returns the ascending set of answers paired in items.
func SortedUniqueAnswers(items []MatchingItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Answer]; ok {
			continue
		}
		seen[it.Answer] = struct{}{}
		out = append(out, it.Answer)
	}
	sort.Strings(out)
	return out
}
