package tmpl

import (
	"strings"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

// Migrate converts a legacy v1 document
//
//	{styles: {header_color, title_size, ...}, layout: {<type>: {table_cols_pct: [...]}}}
//
// into a v2 config. The result is the table_default preset for t with the
// legacy styles and, when present, the legacy column widths applied to its
// first table. Other legacy structure is not carried over, so the output is
// an approximation of the old layout. v1 is not modified.
func Migrate(v1 map[string]any, t models.QuestionType) Config {
	cfg := PresetTableDefault(t)

	if styles, ok := v1["styles"].(map[string]any); ok {
		if color, ok := styles["header_color"].(string); ok && strings.TrimSpace(color) != "" {
			cfg.Styles.HeaderColor = color
		}
		for key, dst := range map[string]*int{
			"title_size":  &cfg.Styles.TitleSize,
			"header_size": &cfg.Styles.HeaderSize,
			"body_size":   &cfg.Styles.BodySize,
			"answer_size": &cfg.Styles.AnswerSize,
		} {
			if n, ok := asNumber(styles[key]); ok {
				*dst = n
			}
		}
	}

	widths := legacyWidths(v1, t)
	if len(widths) == 0 {
		return cfg
	}
	for i := range cfg.Blocks {
		if cfg.Blocks[i].Kind == BlockTable {
			cfg.Blocks[i].ColWidthsPct = widths
			break
		}
	}
	return cfg
}

func legacyWidths(v1 map[string]any, t models.QuestionType) []int {
	layout, ok := v1["layout"].(map[string]any)
	if !ok {
		return nil
	}
	entry, ok := layout[string(t)].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := asList(entry["table_cols_pct"])
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, v := range raw {
		n, ok := asNumber(v)
		if !ok {
			return nil
		}
		out = append(out, n)
	}
	return out
}
