package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

func sampleContext() *Context {
	q := &models.Question{
		Type:            models.MultipleChoice,
		Name:            "Q1",
		QuestionText:    "2 + 2 = ?",
		ReferenceAnswer: "4",
		Answers:         []string{"3", "4", "5"},
		CorrectAnswers:  []string{"4"},
		MatchingItems: []models.MatchingItem{
			{Item: "Paris", Answer: "France"},
			{Item: "Rome", Answer: "Italy"},
		},
		MatchingAnswers: []string{"France", "Italy"},
	}
	meta := models.NewMetadata()
	meta.PKID = "2"
	meta.Description = "<b>desc</b>"
	return NewContext(q, meta, "- header")
}

func TestEval(t *testing.T) {
	ev := NewEvaluator(sampleContext(), "", nil)
	pair := PairItem(2, models.MatchingItem{Item: "Rome", Answer: "Italy"})

	tests := []struct {
		name     string
		expr     string
		item     Item
		expected string
	}{
		{"question field", "question.question_text", NoItem, "2 + 2 = ?"},
		{"question list field", "question.answers", NoItem, "3; 4; 5"},
		{"correct join", "question.correct_join", NoItem, "4"},
		{"matching join", "question.matching_join", NoItem, "Paris→France; Rome→Italy"},
		{"missing question field", "question.nope", NoItem, ""},
		{"metadata field", "metadata.pk_prefix", NoItem, "ПК"},
		{"missing metadata field", "metadata.nope", NoItem, ""},
		{"task header", "task.header", NoItem, "- header"},
		{"padded expression", "  task.header ", NoItem, "- header"},
		{"unbound item", "item", NoItem, ""},
		{"unbound item field", "item.index", NoItem, ""},
		{"string item", "item", StringItem(1, "4"), "4"},
		{"string item index", "item.index", StringItem(3, "5"), "3"},
		{"string item has no pair fields", "item.answer", StringItem(1, "4"), ""},
		{"pair item", "item", pair, "Rome→Italy"},
		{"pair prompt", "item.item", pair, "Rome"},
		{"pair answer", "item.answer", pair, "Italy"},
		{"option on row", "item.option", pair, "Italy"},
		{"option past matching answers", "item.option", StringItem(3, "5"), ""},
		{"unbound option", "item.option", NoItem, ""},
		{"blank cell", "blank", pair, ""},
		{"is_correct hit", "item|is_correct", StringItem(2, "4"), "+"},
		{"is_correct miss", "item | is_correct", StringItem(1, "3"), ""},
		{"if_correct hit", "item|if_correct", StringItem(2, "4"), "4"},
		{"if_correct miss", "item|if_correct", StringItem(1, "3"), ""},
		{"pipe on question field", "question.reference_answer|is_correct", NoItem, "+"},
		{"unknown pipe evaluates base", "item|upper", StringItem(1, "3"), "3"},
		{"unknown base", "answers", NoItem, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ev.Eval(tt.expr, tt.item))
		})
	}
}

func TestExpand(t *testing.T) {
	ev := NewEvaluator(sampleContext(), "✓", nil)

	assert.Equal(t, "Опис: &lt;b&gt;desc&lt;/b&gt;", ev.Expand("Опис: {{metadata.description}}", NoItem))
	assert.Equal(t, "<i>4</i> ✓", ev.Expand("<i>{{item}}</i> {{ item|is_correct }}", StringItem(2, "4")))
	assert.Equal(t, "no placeholders", ev.Expand("no placeholders", NoItem))
	assert.Equal(t, "[]", ev.Expand("[{{question.unknown}}]", NoItem))
}

func TestExpandCustomEscape(t *testing.T) {
	ev := NewEvaluator(sampleContext(), "", func(s string) string { return s })
	assert.Equal(t, "<b>desc</b>", ev.Expand("{{metadata.description}}", NoItem))
}

func TestHTMLEscape(t *testing.T) {
	assert.Equal(t, "&amp;lt; &lt;a href=&quot;x&quot;&gt;&#x27;", HTMLEscape(`&lt; <a href="x">'`))
}
