package tmpl

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

var (
	validKinds   = map[string]bool{"line": true, "spacer": true, "list": true, "table": true}
	validSources = map[string]bool{"answers_all": true, "answers_correct": true, "matching_pairs": true}
)

// Validate checks a decoded template document (as produced by encoding/json
// or yaml.v3 into an any) or a Config. Problems are accumulated so that one
// call reports all of them; only a missing or empty block list stops the
// per-block checks. A valid document yields nil.
func Validate(raw any) []string {
	switch v := raw.(type) {
	case Config:
		raw = v.Raw()
	case *Config:
		if v != nil {
			raw = v.Raw()
		}
	}

	cfg, ok := raw.(map[string]any)
	if !ok {
		return []string{"config is not an object"}
	}

	var errs []string
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if v, ok := asInt(cfg["version"]); !ok || v != SchemaVersion {
		add("config.version must be %d", SchemaVersion)
	}

	if styles, present := cfg["styles"]; present && styles != nil {
		if _, ok := styles.(map[string]any); !ok {
			add("config.styles must be an object")
		}
	}

	blocks, ok := asList(cfg["blocks"])
	if !ok || len(blocks) == 0 {
		add("config.blocks must be a non-empty list")
		return errs
	}

	for i, item := range blocks {
		b, ok := item.(map[string]any)
		if !ok {
			add("blocks[%d] must be an object", i)
			continue
		}

		kind, _ := b["kind"].(string)
		if !validKinds[kind] {
			add("blocks[%d].kind invalid: %v", i, b["kind"])
			continue
		}

		switch BlockKind(kind) {
		case BlockLine:
			if !nonBlank(b["pattern"]) {
				add("blocks[%d].pattern is required", i)
			}
		case BlockSpacer:
			if mm, present := b["mm"]; present {
				if v, ok := asInt(mm); !ok || v < 0 || v > 50 {
					add("blocks[%d].mm must be int 0..50", i)
				}
			}
		case BlockList:
			if !validSource(b["source"]) {
				add("blocks[%d].source invalid", i)
			}
			if !nonBlank(b["pattern"]) {
				add("blocks[%d].pattern is required", i)
			}
		case BlockTable:
			if !validSource(b["source"]) {
				add("blocks[%d].source invalid", i)
			}
			cols, isList := asList(b["cols"])
			if !isList || len(cols) == 0 {
				add("blocks[%d].cols must be a non-empty list", i)
			} else {
				for _, c := range cols {
					if !nonBlank(c) {
						add("blocks[%d].cols must contain non-empty strings", i)
						break
					}
				}
			}
			if headers, present := b["headers"]; present && headers != nil {
				hs, ok := asList(headers)
				if !ok || (len(cols) > 0 && len(hs) != len(cols)) {
					add("blocks[%d].headers must match cols length", i)
				}
			}
			if widths, present := b["col_widths_pct"]; present && widths != nil {
				if _, ok := asIntList(widths); !ok {
					add("blocks[%d].col_widths_pct must be list[int]", i)
				}
			}
		}
	}

	return errs
}

func validSource(v any) bool {
	s, ok := v.(string)
	return ok && validSources[s]
}

func nonBlank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		return stringsToAny(l), true
	case []int:
		out := make([]any, len(l))
		for i, n := range l {
			out[i] = n
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// asInt accepts integer values in any of the numeric forms decoders produce.
// Booleans and fractional numbers are rejected.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// asNumber accepts any numeric value and truncates it toward zero.
func asNumber(v any) (int, bool) {
	switch n := v.(type) {
	case float32:
		return truncate(float64(n))
	case float64:
		return truncate(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	}
	return asInt(v)
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func asIntList(v any) ([]int, bool) {
	l, ok := asList(v)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(l))
	for _, item := range l {
		n, ok := asInt(item)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}
