package tmpl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

const (
	DefaultCorrectMarker = "+"
	joinSeparator        = "; "
	pairArrow            = "→"
)

// BlankCell is a column pattern that always renders an empty cell. Blank
// column patterns are rejected by Validate.
const BlankCell = "{{blank}}"

var placeholderRe = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// HTMLEscape escapes the five markup-significant characters.
func HTMLEscape(s string) string {
	return htmlEscaper.Replace(s)
}

// Item is the loop element bound while a list or table block iterates its
// source. The zero Item is unbound.
type Item struct {
	index int
	value string
	pair  *models.MatchingItem
}

// NoItem is the unbound item used outside loops and for the synthetic row of
// an empty source.
var NoItem = Item{}

// StringItem binds an answer string at 1-based position index.
func StringItem(index int, value string) Item {
	return Item{index: index, value: value}
}

// PairItem binds a matching pair at 1-based position index.
func PairItem(index int, pair models.MatchingItem) Item {
	return Item{index: index, pair: &pair}
}

func (it Item) String() string {
	if it.pair != nil {
		return it.pair.Item + pairArrow + it.pair.Answer
	}
	return it.value
}

func (it Item) field(name string) string {
	if it.index == 0 {
		return ""
	}
	switch name {
	case "index":
		return strconv.Itoa(it.index)
	case "item":
		if it.pair != nil {
			return it.pair.Item
		}
	case "answer":
		if it.pair != nil {
			return it.pair.Answer
		}
	}
	return ""
}

// Context is the lookup namespace of one question render. It is built once
// and never modified.
type Context struct {
	question   map[string]string
	metadata   map[string]string
	taskHeader string
	q          *models.Question
}

// NewContext precomputes the question view, including the derived *_join
// fields, for q.
func NewContext(q *models.Question, meta models.Metadata, taskHeader string) *Context {
	ctx := &Context{
		metadata:   meta.Fields(),
		taskHeader: taskHeader,
		q:          q,
	}

	pairs := make([]string, 0, len(q.MatchingItems))
	for _, p := range q.MatchingItems {
		pairs = append(pairs, p.Item+pairArrow+p.Answer)
	}
	matchingJoin := strings.Join(pairs, joinSeparator)

	ctx.question = map[string]string{
		"type":                  string(q.Type),
		"name":                  q.Name,
		"question_text":         q.QuestionText,
		"reference_answer":      q.ReferenceAnswer,
		"answers":               strings.Join(q.Answers, joinSeparator),
		"correct_answers":       strings.Join(q.CorrectAnswers, joinSeparator),
		"matching_items":        matchingJoin,
		"matching_answers":      strings.Join(q.MatchingAnswers, joinSeparator),
		"answers_join":          strings.Join(q.Answers, joinSeparator),
		"correct_join":          strings.Join(q.CorrectAnswers, joinSeparator),
		"matching_join":         matchingJoin,
		"matching_answers_join": strings.Join(q.MatchingAnswers, joinSeparator),
	}
	return ctx
}

func (c *Context) isCorrect(v string) bool {
	return c.q.IsCorrect(v)
}

// option returns the matching answer listed on row index, if any.
func (c *Context) option(index int) string {
	if index < 1 || index > len(c.q.MatchingAnswers) {
		return ""
	}
	return c.q.MatchingAnswers[index-1]
}

// Evaluator resolves placeholder expressions against a Context. Unresolved
// lookups yield an empty string.
type Evaluator struct {
	ctx    *Context
	marker string
	escape func(string) string
}

func NewEvaluator(ctx *Context, marker string, escape func(string) string) *Evaluator {
	if marker == "" {
		marker = DefaultCorrectMarker
	}
	if escape == nil {
		escape = HTMLEscape
	}
	return &Evaluator{ctx: ctx, marker: marker, escape: escape}
}

// Eval returns the raw, unescaped value of expr.
func (e *Evaluator) Eval(expr string, item Item) string {
	expr = strings.TrimSpace(expr)
	if base, op, piped := strings.Cut(expr, "|"); piped {
		v := e.Eval(base, item)
		switch strings.TrimSpace(op) {
		case "is_correct":
			if e.ctx.isCorrect(v) {
				return e.marker
			}
			return ""
		case "if_correct":
			if e.ctx.isCorrect(v) {
				return v
			}
			return ""
		}
		return v
	}

	switch {
	case expr == "blank":
		return ""
	case expr == "task.header":
		return e.ctx.taskHeader
	case expr == "item.option":
		return e.ctx.option(item.index)
	case expr == "item":
		return item.String()
	case strings.HasPrefix(expr, "item."):
		return item.field(strings.TrimPrefix(expr, "item."))
	case strings.HasPrefix(expr, "question."):
		return e.ctx.question[strings.TrimPrefix(expr, "question.")]
	case strings.HasPrefix(expr, "metadata."):
		return e.ctx.metadata[strings.TrimPrefix(expr, "metadata.")]
	}
	return ""
}

// Expand substitutes every placeholder in pattern with its escaped value.
// Text outside placeholders is copied as is.
func (e *Evaluator) Expand(pattern string, item Item) string {
	return placeholderRe.ReplaceAllStringFunc(pattern, func(m string) string {
		expr := placeholderRe.FindStringSubmatch(m)[1]
		return e.escape(e.Eval(expr, item))
	})
}
