package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/assessment-docgen/internal/ir"
	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

func sampleQuestion(t models.QuestionType) *models.Question {
	q := &models.Question{Type: t, Name: "sample", QuestionText: "Question?"}
	switch t {
	case models.Essay:
		q.ReferenceAnswer = "Because."
	case models.ShortAnswer:
		q.CorrectAnswers = []string{"Paris"}
		q.ReferenceAnswer = "Paris"
	case models.MultipleChoice:
		q.Answers = []string{"a", "b"}
		q.CorrectAnswers = []string{"b"}
	case models.TrueFalse:
		q.Answers = []string{"Верно", "Неверно"}
		q.CorrectAnswers = []string{"Верно"}
	case models.Matching:
		q.MatchingItems = []models.MatchingItem{{Item: "x", Answer: "1"}}
		q.MatchingAnswers = []string{"1"}
	}
	return q
}

func TestRenderTableMarksCorrectRows(t *testing.T) {
	cfg := Config{Version: SchemaVersion, Blocks: []Block{
		Table(SourceAnswersAll, nil, []string{"{{item}}", "{{item|is_correct}}"}, nil),
	}}
	q := &models.Question{
		Type:           models.MultipleChoice,
		Answers:        []string{"2", "3", "4"},
		CorrectAnswers: []string{"2", "3"},
	}

	nodes := Render(cfg, q, models.NewMetadata(), 1)

	require.Len(t, nodes, 1)
	require.Equal(t, ir.KindTable, nodes[0].Kind)
	assert.Equal(t, [][]string{{"2", "+"}, {"3", "+"}, {"4", ""}}, nodes[0].Table.Rows)
	assert.Nil(t, nodes[0].Table.Headers)
	assert.Nil(t, nodes[0].Table.ColWidthsPct)
}

func TestRenderBlocks(t *testing.T) {
	cfg := Config{Version: SchemaVersion, Blocks: []Block{
		Line("{{task.header}}"),
		Line("Q: {{question.question_text}}"),
		{Kind: BlockSpacer},
		Spacer(0),
		List(SourceAnswersCorrect, "{{item.index}}. {{item}}", false),
		{Kind: BlockList, Source: SourceMatchingPairs, Pattern: DefaultListPattern},
		Table(SourceMatchingPairs,
			[]string{"№", "Элемент", "Ответ"},
			[]string{"{{item.index}}", "{{item.item}}", "{{item.answer}}"},
			[]int{10, 45, 45}),
	}}
	q := &models.Question{
		Type:           models.Matching,
		QuestionText:   `Match "these" & more`,
		CorrectAnswers: []string{"A", "B"},
		MatchingItems: []models.MatchingItem{
			{Item: "Paris", Answer: "France"},
			{Item: "Rome", Answer: "Italy"},
		},
	}
	meta := models.Metadata{PKID: "1", IPKID: "1.2", Description: "Анализ"}

	nodes := Render(cfg, q, meta, 3)

	require.Len(t, nodes, len(cfg.Blocks))
	assert.Equal(t, ir.NewTextLine("- Задание 3 (ПК-1 – ИПК-1.2 Анализ)"), nodes[0])
	assert.Equal(t, ir.NewTextLine("Q: Match &quot;these&quot; &amp; more"), nodes[1])
	assert.Equal(t, ir.NewSpacer(DefaultSpacerMM), nodes[2])
	assert.Equal(t, ir.NewSpacer(0), nodes[3])
	assert.Equal(t, ir.NewList(false, []string{"1. A", "2. B"}), nodes[4])
	assert.Equal(t, ir.NewList(true, []string{"Paris→France", "Rome→Italy"}), nodes[5])
	assert.Equal(t, ir.NewTable(
		[]string{"№", "Элемент", "Ответ"},
		[][]string{{"1", "Paris", "France"}, {"2", "Rome", "Italy"}},
		[]int{10, 45, 45},
	), nodes[6])
}

func TestRenderEmptySourceEmitsOneEntry(t *testing.T) {
	cfg := Config{Version: SchemaVersion, Blocks: []Block{
		List(SourceAnswersAll, "- {{item}}", true),
		Table(SourceAnswersCorrect, nil, []string{"{{item.index}}", "{{item}}"}, nil),
	}}

	nodes := Render(cfg, &models.Question{Type: models.Essay}, models.NewMetadata(), 1)

	require.Len(t, nodes, 2)
	assert.Equal(t, []string{"- "}, nodes[0].List.Items)
	assert.Equal(t, [][]string{{"", ""}}, nodes[1].Table.Rows)
}

func TestRenderDropsUnusableWidths(t *testing.T) {
	cols := []string{"{{item}}", "{{item|if_correct}}"}
	tests := []struct {
		name     string
		widths   []int
		expected []int
	}{
		{"matching", []int{30, 70}, []int{30, 70}},
		{"length mismatch", []int{100}, nil},
		{"zero sum", []int{0, 0}, nil},
		{"absent", nil, nil},
	}

	q := sampleQuestion(models.MultipleChoice)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Version: SchemaVersion, Blocks: []Block{Table(SourceAnswersAll, nil, cols, tt.widths)}}
			nodes := Render(cfg, q, models.NewMetadata(), 1)
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.expected, nodes[0].Table.ColWidthsPct)
		})
	}
}

func TestRenderInvalidConfigYieldsDiagnostic(t *testing.T) {
	cfg := Config{Version: 1}

	nodes := Render(cfg, sampleQuestion(models.Essay), models.NewMetadata(), 1)

	require.Len(t, nodes, 1)
	require.Equal(t, ir.KindDiagnostic, nodes[0].Kind)
	assert.Equal(t, "Template error: config.version must be 2; config.blocks must be a non-empty list",
		nodes[0].Diagnostic.Message())
	assert.True(t, ir.HasDiagnostic(nodes))
}

func TestRendererOptions(t *testing.T) {
	r := NewRenderer(RenderOptions{TaskLabel: "Task", CorrectMarker: "*", Escape: func(s string) string { return s }})
	cfg := Config{Version: SchemaVersion, Blocks: []Block{
		Line("{{task.header}}"),
		Line("{{question.question_text}}"),
		List(SourceAnswersAll, "{{item}} {{item|is_correct}}", true),
	}}
	q := sampleQuestion(models.MultipleChoice)
	q.QuestionText = "<b>bold</b>"

	nodes := r.Render(cfg, q, models.Metadata{PKPrefix: "PC", PKID: "7", IPKPrefix: "IPC", IPKID: "7.1"}, 12)

	require.Len(t, nodes, 3)
	assert.Equal(t, "- Task 12 (PC-7 – IPC-7.1 )", nodes[0].TextLine.Text)
	assert.Equal(t, "<b>bold</b>", nodes[1].TextLine.Text)
	assert.Equal(t, []string{"a ", "b *"}, nodes[2].List.Items)
}

func TestRenderDoesNotModifyConfig(t *testing.T) {
	cfg := PresetTableDefault(models.MultipleChoice)
	before := cfg.Clone()

	Render(cfg, sampleQuestion(models.MultipleChoice), models.NewMetadata(), 1)

	assert.Equal(t, before, cfg)
}
