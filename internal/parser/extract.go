package parser

import (
	"strconv"
	"strings"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

// rawQuestion mirrors one <question> element of a Moodle XML export.
type rawQuestion struct {
	Type            string           `xml:"type,attr"`
	Category        rawText          `xml:"category"`
	Name            rawText          `xml:"name"`
	QuestionText    rawText          `xml:"questiontext"`
	ReferenceAnswer rawText          `xml:"referenceanswer"`
	Answers         []rawAnswer      `xml:"answer"`
	Subquestions    []rawSubquestion `xml:"subquestion"`
}

type rawText struct {
	Text string `xml:"text"`
}

type rawAnswer struct {
	Fraction string `xml:"fraction,attr"`
	Text     string `xml:"text"`
}

type rawSubquestion struct {
	Text   string     `xml:"text"`
	Answer *rawAnswer `xml:"answer"`
}

// extractor turns raw question elements into model questions. It holds the
// boolean labels and collects anomalies; it keeps no state between questions.
type extractor struct {
	trueLabel  string
	falseLabel string
	note       func(reason models.AnomalyReason, detail string)
}

func (e *extractor) extract(rq *rawQuestion) *models.Question {
	q := &models.Question{
		Type:            models.QuestionType(rq.Type),
		Name:            rq.Name.Text,
		QuestionText:    rq.QuestionText.Text,
		ReferenceAnswer: rq.ReferenceAnswer.Text,
	}

	switch q.Type {
	case models.Essay:
		// generic fields only
	case models.ShortAnswer:
		e.shortAnswer(rq, q)
	case models.MultipleChoice:
		e.multipleChoice(rq, q)
	case models.TrueFalse:
		e.trueFalse(rq, q)
	case models.Matching:
		e.matching(rq, q)
	default:
		e.note(models.AnomalyUnknownType, rq.Type)
	}
	return q
}

// shortAnswer keeps every weighted answer; the first one doubles as the reference answer.
func (e *extractor) shortAnswer(rq *rawQuestion, q *models.Question) {
	q.CorrectAnswers = []string{}
	for _, a := range rq.Answers {
		if e.fraction(a) == 0 || a.Text == "" {
			continue
		}
		q.CorrectAnswers = append(q.CorrectAnswers, a.Text)
	}
	q.ReferenceAnswer = ""
	if len(q.CorrectAnswers) > 0 {
		q.ReferenceAnswer = q.CorrectAnswers[0]
	}
}

func (e *extractor) multipleChoice(rq *rawQuestion, q *models.Question) {
	q.Answers = []string{}
	q.CorrectAnswers = []string{}
	for _, a := range rq.Answers {
		if a.Text == "" {
			continue
		}
		q.Answers = append(q.Answers, a.Text)
		if e.fraction(a) != 0 {
			q.CorrectAnswers = append(q.CorrectAnswers, a.Text)
		}
	}
}

// trueFalse maps "true"/"false" onto the configured labels, true label first.
// Only a full-credit answer (fraction 100) counts as correct.
func (e *extractor) trueFalse(rq *rawQuestion, q *models.Question) {
	var seen []string
	correct := []string{}
	for _, a := range rq.Answers {
		if a.Text == "" {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(a.Text))
		switch label {
		case "true":
			label = e.trueLabel
		case "false":
			label = e.falseLabel
		}
		if !contains(seen, label) {
			seen = append(seen, label)
		}
		if e.fraction(a) == 100 {
			correct = append(correct, label)
		}
	}

	answers := make([]string, 0, len(seen))
	for _, canonical := range []string{e.trueLabel, e.falseLabel} {
		if contains(seen, canonical) {
			answers = append(answers, canonical)
		}
	}
	for _, label := range seen {
		if label != e.trueLabel && label != e.falseLabel {
			answers = append(answers, label)
		}
	}

	q.Answers = answers
	q.CorrectAnswers = correct
}

func (e *extractor) matching(rq *rawQuestion, q *models.Question) {
	q.MatchingItems = []models.MatchingItem{}
	for _, sq := range rq.Subquestions {
		if sq.Answer == nil {
			continue
		}
		if sq.Text == "" || sq.Answer.Text == "" {
			continue
		}
		q.MatchingItems = append(q.MatchingItems, models.MatchingItem{
			Item:   sq.Text,
			Answer: sq.Answer.Text,
		})
	}
	q.MatchingAnswers = models.SortedUniqueAnswers(q.MatchingItems)
}

// fraction parses the answer weight. A missing attribute means 0; an
// unparsable one is noted and treated as 0.
func (e *extractor) fraction(a rawAnswer) float64 {
	raw := strings.TrimSpace(a.Fraction)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		e.note(models.AnomalyInvalidFraction, a.Fraction)
		return 0
	}
	return f
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
