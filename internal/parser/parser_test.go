package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/SAP-F-2025/assessment-docgen/internal/errors"
	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

type answer struct {
	text     string
	fraction string
}

func quiz(elements ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n<quiz>\n" + strings.Join(elements, "\n") + "\n</quiz>\n"
}

func category(course string) string {
	return categoryPath(DefaultCategoryPrefix + "/" + course)
}

func categoryPath(path string) string {
	return `<question type="category"><category><text>` + path + `</text></category></question>`
}

func question(qtype, name, text string, answers ...answer) string {
	var b strings.Builder
	b.WriteString(`<question type="` + qtype + `">`)
	b.WriteString(`<name><text>` + name + `</text></name>`)
	b.WriteString(`<questiontext format="html"><text><![CDATA[` + text + `]]></text></questiontext>`)
	for _, a := range answers {
		b.WriteString(`<answer fraction="` + a.fraction + `" format="moodle_auto_format"><text>` + a.text + `</text>`)
		b.WriteString(`<feedback format="html"><text>feedback</text></feedback></answer>`)
	}
	b.WriteString(`</question>`)
	return b.String()
}

func parse(t *testing.T, doc string) *Result {
	t.Helper()
	res, err := New(Options{}).ParseBytes([]byte(doc))
	require.NoError(t, err)
	return res
}

func TestParseShortAnswerCourse(t *testing.T) {
	doc := quiz(
		category("Course A"),
		question("shortanswer", "Capital", "<p>Capital of France?</p>", answer{"Paris", "100"}, answer{"Lyon", "0"}),
		question("shortanswer", "Second", "Largest city?", answer{"Paris", "50"}),
	)

	res := parse(t, doc)

	require.Len(t, res.Courses, 1)
	course := res.Courses[0]
	assert.Equal(t, "Course A", course.Name)
	require.Len(t, course.Questions, 2)

	q := course.Questions[0]
	assert.Equal(t, models.ShortAnswer, q.Type)
	assert.Equal(t, "Capital", q.Name)
	assert.Equal(t, "Capital of France?", q.QuestionText)
	assert.Equal(t, []string{"Paris"}, q.CorrectAnswers)
	assert.Equal(t, "Paris", q.ReferenceAnswer)
	assert.Empty(t, q.Answers)

	assert.Equal(t, []string{"Paris"}, course.Questions[1].CorrectAnswers)
}

func TestParseShortAnswerWithoutCorrect(t *testing.T) {
	doc := quiz(category("C"), question("shortanswer", "q", "text", answer{"x", "0"}))
	q := parse(t, doc).Courses[0].Questions[0]
	assert.Empty(t, q.CorrectAnswers)
	assert.Equal(t, "", q.ReferenceAnswer)
}

func TestParseMultipleChoice(t *testing.T) {
	doc := quiz(category("Math"), question("multichoice", "Primes", "Pick primes",
		answer{"2", "50"}, answer{"3", "50"}, answer{"4", "0"}, answer{"9", "-100"}))

	q := parse(t, doc).Courses[0].Questions[0]
	assert.Equal(t, []string{"2", "3", "4", "9"}, q.Answers)
	assert.Equal(t, []string{"2", "3", "9"}, q.CorrectAnswers)
	assert.Subset(t, q.Answers, q.CorrectAnswers)
}

func TestParseTrueFalse(t *testing.T) {
	opts := Options{TrueLabel: "True-label", FalseLabel: "False-label"}

	tests := []struct {
		name            string
		answers         []answer
		expectedAnswers []string
		expectedCorrect []string
	}{
		{
			name:            "canonical order",
			answers:         []answer{{"true", "100"}, {"false", "0"}},
			expectedAnswers: []string{"True-label", "False-label"},
			expectedCorrect: []string{"True-label"},
		},
		{
			name:            "false listed first",
			answers:         []answer{{"FALSE", "100"}, {" True ", "0"}},
			expectedAnswers: []string{"True-label", "False-label"},
			expectedCorrect: []string{"False-label"},
		},
		{
			name:            "unexpected label appended",
			answers:         []answer{{"Maybe", "0"}, {"false", "0"}, {"true", "100"}},
			expectedAnswers: []string{"True-label", "False-label", "maybe"},
			expectedCorrect: []string{"True-label"},
		},
		{
			name:            "partial credit is not correct",
			answers:         []answer{{"true", "50"}, {"false", "0"}},
			expectedAnswers: []string{"True-label", "False-label"},
			expectedCorrect: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := quiz(category("C"), question("truefalse", "tf", "Sky is blue", tt.answers...))
			res, err := New(opts).ParseBytes([]byte(doc))
			require.NoError(t, err)

			q := res.Courses[0].Questions[0]
			assert.Equal(t, tt.expectedAnswers, q.Answers)
			assert.Equal(t, tt.expectedCorrect, q.CorrectAnswers)
			assert.Subset(t, q.Answers, q.CorrectAnswers)
		})
	}
}

func TestParseTrueFalseDefaultLabels(t *testing.T) {
	doc := quiz(category("C"), question("truefalse", "tf", "?", answer{"true", "100"}, answer{"false", "0"}))
	q := parse(t, doc).Courses[0].Questions[0]
	assert.Equal(t, []string{"Верно", "Неверно"}, q.Answers)
	assert.Equal(t, []string{"Верно"}, q.CorrectAnswers)
}

func TestParseMatching(t *testing.T) {
	sub := func(text, ans string) string {
		return `<subquestion format="html"><text><![CDATA[<p>` + text + `</p>]]></text><answer><text>` + ans + `</text></answer></subquestion>`
	}
	doc := quiz(category("Geo"), `<question type="matching">
  <name><text>Capitals</text></name>
  <questiontext format="html"><text>Match</text></questiontext>
  `+sub("Paris", "France")+`
  `+sub("Berlin", "Germany")+`
  `+sub("Lyon", "France")+`
  `+sub("", "Distractor")+`
  `+sub("Rome", "")+`
</question>`)

	q := parse(t, doc).Courses[0].Questions[0]
	assert.Equal(t, []models.MatchingItem{
		{Item: "Paris", Answer: "France"},
		{Item: "Berlin", Answer: "Germany"},
		{Item: "Lyon", Answer: "France"},
	}, q.MatchingItems)
	assert.Equal(t, []string{"France", "Germany"}, q.MatchingAnswers)
	assert.IsIncreasing(t, q.MatchingAnswers)
}

func TestParseEssayAndUnknownType(t *testing.T) {
	doc := quiz(category("C"),
		`<question type="essay"><name><text>E</text></name><questiontext><text>Explain</text></questiontext>
		 <referenceanswer><text>Because</text></referenceanswer>
		 <answer fraction="0"><text>ignored</text></answer></question>`,
		`<question type="numerical"><name><text>N</text></name><questiontext><text>1+1</text></questiontext>
		 <referenceanswer><text>2</text></referenceanswer><answer fraction="100"><text>2</text></answer></question>`,
	)

	res := parse(t, doc)
	qs := res.Courses[0].Questions
	require.Len(t, qs, 2)

	assert.Equal(t, "Explain", qs[0].QuestionText)
	assert.Equal(t, "Because", qs[0].ReferenceAnswer)
	assert.Empty(t, qs[0].Answers)

	assert.Equal(t, models.QuestionType("numerical"), qs[1].Type)
	assert.Equal(t, "2", qs[1].ReferenceAnswer)
	assert.Empty(t, qs[1].Answers)
	assert.Empty(t, qs[1].CorrectAnswers)
	assert.Contains(t, res.Anomalies, models.Anomaly{Reason: models.AnomalyUnknownType, Detail: "numerical"})
}

func TestParseInvalidFraction(t *testing.T) {
	doc := quiz(category("C"), question("multichoice", "q", "?", answer{"a", "abc"}, answer{"b", "100"}))
	res := parse(t, doc)

	q := res.Courses[0].Questions[0]
	assert.Equal(t, []string{"a", "b"}, q.Answers)
	assert.Equal(t, []string{"b"}, q.CorrectAnswers)
	assert.Equal(t, 1, models.CountByReason(res.Anomalies)[models.AnomalyInvalidFraction])
}

func TestParseGrouping(t *testing.T) {
	essay := func(name string) string { return question("essay", name, "text") }

	tests := []struct {
		name     string
		elements []string
		order    []string
		expected [][]string
	}{
		{
			name:     "questions before first category",
			elements: []string{essay("q0"), category("A"), essay("q1")},
			order:    []string{DefaultUncategorized, "A"},
			expected: [][]string{{"q0"}, {"q1"}},
		},
		{
			name:     "category without questions is discarded",
			elements: []string{category("A"), category("B"), essay("q1"), category("C")},
			order:    []string{"B"},
			expected: [][]string{{"q1"}},
		},
		{
			name:     "invalid category is ignored",
			elements: []string{category("A"), essay("q1"), categoryPath("$course$/other/X"), essay("q2")},
			order:    []string{"A"},
			expected: [][]string{{"q1", "q2"}},
		},
		{
			name:     "root category alone is not a course",
			elements: []string{category("A"), essay("q1"), categoryPath(DefaultCategoryPrefix), essay("q2")},
			order:    []string{"A"},
			expected: [][]string{{"q1", "q2"}},
		},
		{
			name:     "nested path uses last segment",
			elements: []string{category("Faculty/ Course B /"), essay("q1"), category("A"), essay("q2"), essay("q3")},
			order:    []string{"Course B", "A"},
			expected: [][]string{{"q1"}, {"q2", "q3"}},
		},
		{
			name:     "repeated course name yields separate courses",
			elements: []string{category("A"), essay("q1"), category("B"), essay("q2"), category("A"), essay("q3")},
			order:    []string{"A", "B", "A"},
			expected: [][]string{{"q1"}, {"q2"}, {"q3"}},
		},
		{
			name:     "no questions at all",
			elements: []string{category("A")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, quiz(tt.elements...))

			var names []string
			var questions [][]string
			for _, c := range res.Courses {
				names = append(names, c.Name)
				var qs []string
				for _, q := range c.Questions {
					qs = append(qs, q.Name)
				}
				questions = append(questions, qs)
			}
			assert.Equal(t, tt.order, names)
			assert.Equal(t, tt.expected, questions)
		})
	}
}

func TestParseCourseCountProperty(t *testing.T) {
	// 3 categories followed by questions, 2 empty ones, one leading question.
	elements := []string{
		question("essay", "lead", "x"),
		category("Empty1"),
		category("A"), question("essay", "a", "x"),
		category("B"), question("essay", "b1", "x"), question("essay", "b2", "x"),
		category("Empty2"),
		category("C"), question("essay", "c", "x"),
	}
	res := parse(t, quiz(elements...))

	assert.Len(t, res.Courses, 3+1)
	assert.Len(t, res.Questions(), 5)
	counts := models.CountByReason(res.Anomalies)
	assert.Equal(t, 2, counts[models.AnomalyEmptyCategory])
	assert.Equal(t, 1, counts[models.AnomalyUncategorized])
}

func TestParseHTMLLeakage(t *testing.T) {
	doc := quiz(category("C"), question("essay", "q", "<p>x<sup>2</sup> &amp; y</p>"))
	q := parse(t, doc).Courses[0].Questions[0]
	assert.Equal(t, "x<sup>2</sup> &amp; y", q.QuestionText)
}

func TestParseMalformed(t *testing.T) {
	doc := "<quiz>\n<question type=\"essay\">\n<name><text>x</text></name>\n</quiz>\n"

	_, err := New(Options{}).ParseBytes([]byte(doc))
	require.Error(t, err)

	var pe *apperrors.ParseError
	require.True(t, stderrors.As(err, &pe))
	assert.GreaterOrEqual(t, pe.Line, 1)
	assert.Contains(t, pe.Error(), "line")
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := New(Options{}).ParseBytes(nil)

	var pe *apperrors.ParseError
	require.True(t, stderrors.As(err, &pe))
	assert.ErrorIs(t, err, errNoRoot)
}

func TestParseReader(t *testing.T) {
	doc := quiz(category("A"), question("essay", "q1", "x"))
	res, err := New(DefaultOptions()).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Len(t, res.Courses, 1)
}

func TestCourseName(t *testing.T) {
	p := DefaultCategoryPrefix
	tests := []struct {
		path     string
		expected string
		ok       bool
	}{
		{p + "/Course A", "Course A", true},
		{"  " + p + "/Dept/Course B  ", "Course B", true},
		{p + " /X", "X", true},
		{p, "", false},
		{p + "/", "", false},
		{p + "/ / ", "", false},
		{p + "X/Y", "", false},
		{"$course$/top/Course", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		name, ok := courseName(tt.path, p)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.expected, name, tt.path)
	}
}

func TestGrouperStates(t *testing.T) {
	var notes []models.Anomaly
	g := newGrouper("none", func(r models.AnomalyReason, d string) {
		notes = append(notes, models.Anomaly{Reason: r, Detail: d})
	})
	assert.Equal(t, "NoPendingCategory", g.state.String())

	g.onCategory("A")
	assert.Equal(t, statePending, g.state)
	assert.Nil(t, g.course)

	g.onQuestion(&models.Question{Name: "q"})
	assert.Equal(t, stateInCourse, g.state)
	assert.Equal(t, "A", g.course.Name)
	assert.Empty(t, g.pending)

	g.onCategory("B")
	assert.Equal(t, statePending, g.state)
	courses := g.finish()

	require.Len(t, courses, 1)
	assert.Equal(t, "A", courses[0].Name)
	assert.Equal(t, []models.Anomaly{{Reason: models.AnomalyEmptyCategory, Detail: "B"}}, notes)
}
