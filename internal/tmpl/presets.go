package tmpl

import "github.com/SAP-F-2025/assessment-docgen/internal/models"

const (
	PresetIDTableDefault = "table_default"
	PresetIDDashAnswer   = "dash_answer"
)

type Preset struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Config Config `json:"config" yaml:"config"`
}

func DefaultStyles() Styles {
	return Styles{
		HeaderColor: "#C00000",
		TitleSize:   22,
		HeaderSize:  16,
		BodySize:    14,
		AnswerSize:  12,
	}
}

// PresetTableDefault renders the question text followed by an answer table,
// or by the reference answer for essays and unknown types. Column counts
// follow the legacy layouts so that migrated table_cols_pct still apply.
func PresetTableDefault(t models.QuestionType) Config {
	blocks := []Block{
		Line("{{task.header}}"),
		Line("{{question.question_text}}"),
		Spacer(2),
	}

	switch t {
	case models.Matching:
		blocks = append(blocks, Table(SourceMatchingPairs,
			[]string{"№", "Варианты ответа", "Элемент", "Правильный ответ"},
			[]string{"{{item.index}}", "{{item.option}}", "{{item.item}}", "{{item.answer}}"},
			[]int{10, 25, 35, 30}))
	case models.MultipleChoice, models.TrueFalse:
		blocks = append(blocks, Table(SourceAnswersAll,
			[]string{"№", "Варианты ответа", "Правильный ответ"},
			[]string{"{{item.index}}", "{{item}}", "{{item|if_correct}}"},
			[]int{10, 45, 45}))
	case models.ShortAnswer:
		blocks = append(blocks, Table(SourceAnswersCorrect,
			[]string{"№", "", "Ответ"},
			[]string{"{{item.index}}", BlankCell, "{{item}}"},
			[]int{10, 10, 80}))
	default:
		blocks = append(blocks, Line("Эталон: {{question.reference_answer}}"))
	}

	return Config{Version: SchemaVersion, Styles: DefaultStyles(), Blocks: blocks}
}

// PresetDashAnswer renders each question as a single "question — answer"
// line without tables.
func PresetDashAnswer(t models.QuestionType) Config {
	answer := "{{question.reference_answer}}"
	switch t {
	case models.MultipleChoice, models.TrueFalse, models.ShortAnswer:
		answer = "{{question.correct_join}}"
	case models.Matching:
		answer = "{{question.matching_join}}"
	}
	return Config{
		Version: SchemaVersion,
		Styles:  DefaultStyles(),
		Blocks: []Block{
			Line("{{task.header}}"),
			Line("{{question.question_text}} — " + answer),
		},
	}
}

// PresetsFor lists the built-in presets available for t.
func PresetsFor(t models.QuestionType) []Preset {
	return []Preset{
		{ID: PresetIDTableDefault, Name: "Стандарт (таблица/список)", Config: PresetTableDefault(t)},
		{ID: PresetIDDashAnswer, Name: "Вопрос — Ответ (без таблиц)", Config: PresetDashAnswer(t)},
	}
}

// PresetByID returns the preset with the given id for t.
func PresetByID(t models.QuestionType, id string) (Preset, bool) {
	for _, p := range PresetsFor(t) {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
