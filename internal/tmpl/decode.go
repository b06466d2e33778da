package tmpl

import (
	"fmt"

	apperrors "github.com/SAP-F-2025/assessment-docgen/internal/errors"
	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

// Decode validates a generic v2 document and converts it to a Config. On
// failure the returned error is an errors.ValidationErrors holding every
// validator message.
func Decode(raw any) (Config, error) {
	if errs := Validate(raw); len(errs) > 0 {
		return Config{}, apperrors.FromMessages(errs)
	}
	switch v := raw.(type) {
	case Config:
		return v.Clone(), nil
	case *Config:
		return v.Clone(), nil
	}

	m := raw.(map[string]any)
	cfg := Config{Version: SchemaVersion, Styles: decodeStyles(m["styles"])}

	blocks, _ := asList(m["blocks"])
	for _, item := range blocks {
		cfg.Blocks = append(cfg.Blocks, decodeBlock(item.(map[string]any)))
	}
	return cfg, nil
}

// Resolve returns a v2 config for questionType from whatever the caller has
// stored: nil yields the default preset, a legacy document is migrated and
// anything else is decoded as v2.
func Resolve(raw any, questionType models.QuestionType) (Config, error) {
	if raw == nil {
		return PresetTableDefault(questionType), nil
	}
	if IsLegacy(raw) {
		return Migrate(raw.(map[string]any), questionType), nil
	}
	cfg, err := Decode(raw)
	if err != nil {
		return Config{}, fmt.Errorf("invalid template for %s: %w", questionType, err)
	}
	return cfg, nil
}

// IsLegacy reports whether raw is a generic document whose version is not 2.
// Legacy v1 documents carry "version": 1 or no version at all.
func IsLegacy(raw any) bool {
	m, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	v, ok := asInt(m["version"])
	return !ok || v != SchemaVersion
}

func decodeStyles(v any) Styles {
	var s Styles
	m, ok := v.(map[string]any)
	if !ok {
		return s
	}
	if color, ok := m["header_color"].(string); ok {
		s.HeaderColor = color
	}
	for key, dst := range map[string]*int{
		"title_size":  &s.TitleSize,
		"header_size": &s.HeaderSize,
		"body_size":   &s.BodySize,
		"answer_size": &s.AnswerSize,
	} {
		if n, ok := asNumber(m[key]); ok {
			*dst = n
		}
	}
	return s
}

func decodeBlock(m map[string]any) Block {
	b := Block{Kind: BlockKind(stringValue(m["kind"]))}
	b.Pattern = stringValue(m["pattern"])
	b.Source = Source(stringValue(m["source"]))
	if mm, ok := asInt(m["mm"]); ok {
		b.MM = &mm
	}
	if bullet, ok := m["bullet"].(bool); ok {
		b.Bullet = &bullet
	}
	if l, ok := asList(m["headers"]); ok {
		b.Headers = stringList(l)
	}
	if l, ok := asList(m["cols"]); ok {
		b.Cols = stringList(l)
	}
	if widths, ok := asIntList(m["col_widths_pct"]); ok {
		b.ColWidthsPct = widths
	}
	return b
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func stringList(l []any) []string {
	out := make([]string, len(l))
	for i, v := range l {
		if s, ok := v.(string); ok {
			out[i] = s
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
