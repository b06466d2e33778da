// Package tmpl implements versioned question templates: the v2 block schema,
// its validator, the placeholder language, the block renderer producing IR
// nodes, the built-in presets and the v1 migration.
package tmpl

const SchemaVersion = 2

type BlockKind string

const (
	BlockLine   BlockKind = "line"
	BlockSpacer BlockKind = "spacer"
	BlockList   BlockKind = "list"
	BlockTable  BlockKind = "table"
)

// Source names the question field a list or table iterates over.
type Source string

const (
	SourceAnswersAll     Source = "answers_all"
	SourceAnswersCorrect Source = "answers_correct"
	SourceMatchingPairs  Source = "matching_pairs"
)

const (
	DefaultSpacerMM    = 4
	DefaultListPattern = "{{item}}"
)

// Styles are passed through to document renderers. Zero values are unset.
type Styles struct {
	HeaderColor string `json:"header_color,omitempty" yaml:"header_color,omitempty"`
	TitleSize   int    `json:"title_size,omitempty" yaml:"title_size,omitempty"`
	HeaderSize  int    `json:"header_size,omitempty" yaml:"header_size,omitempty"`
	BodySize    int    `json:"body_size,omitempty" yaml:"body_size,omitempty"`
	AnswerSize  int    `json:"answer_size,omitempty" yaml:"answer_size,omitempty"`
}

// Block is one renderable unit. Kind selects which of the remaining fields
// apply:
//
//	line:   Pattern
//	spacer: MM (default 4)
//	list:   Source, Pattern, Bullet (default true)
//	table:  Source, Cols, Headers, ColWidthsPct
//
// A nil Headers or ColWidthsPct means the key is absent.
type Block struct {
	Kind         BlockKind `json:"kind" yaml:"kind"`
	Pattern      string    `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MM           *int      `json:"mm,omitempty" yaml:"mm,omitempty"`
	Source       Source    `json:"source,omitempty" yaml:"source,omitempty"`
	Bullet       *bool     `json:"bullet,omitempty" yaml:"bullet,omitempty"`
	Headers      []string  `json:"headers,omitempty" yaml:"headers,omitempty"`
	Cols         []string  `json:"cols,omitempty" yaml:"cols,omitempty"`
	ColWidthsPct []int     `json:"col_widths_pct,omitempty" yaml:"col_widths_pct,omitempty"`
}

// Config is a v2 template configuration. Configs are values: functions in
// this package never modify the Config they receive.
type Config struct {
	Version int     `json:"version" yaml:"version"`
	Styles  Styles  `json:"styles" yaml:"styles"`
	Blocks  []Block `json:"blocks" yaml:"blocks"`
}

func Line(pattern string) Block {
	return Block{Kind: BlockLine, Pattern: pattern}
}

func Spacer(mm int) Block {
	return Block{Kind: BlockSpacer, MM: &mm}
}

func List(source Source, pattern string, bullet bool) Block {
	return Block{Kind: BlockList, Source: source, Pattern: pattern, Bullet: &bullet}
}

func Table(source Source, headers, cols []string, widths []int) Block {
	return Block{Kind: BlockTable, Source: source, Headers: headers, Cols: cols, ColWidthsPct: widths}
}

// Validate checks the config structurally. It returns nil when valid.
func (c Config) Validate() []string {
	return Validate(c.Raw())
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := Config{Version: c.Version, Styles: c.Styles}
	if c.Blocks != nil {
		out.Blocks = make([]Block, len(c.Blocks))
		for i, b := range c.Blocks {
			out.Blocks[i] = b.clone()
		}
	}
	return out
}

func (b Block) clone() Block {
	out := b
	if b.MM != nil {
		mm := *b.MM
		out.MM = &mm
	}
	if b.Bullet != nil {
		bullet := *b.Bullet
		out.Bullet = &bullet
	}
	if b.Headers != nil {
		out.Headers = append([]string{}, b.Headers...)
	}
	if b.Cols != nil {
		out.Cols = append([]string{}, b.Cols...)
	}
	if b.ColWidthsPct != nil {
		out.ColWidthsPct = append([]int{}, b.ColWidthsPct...)
	}
	return out
}

// Raw converts c to the generic document form accepted by Validate, keeping
// only the keys that are set.
func (c Config) Raw() map[string]any {
	styles := map[string]any{}
	if c.Styles.HeaderColor != "" {
		styles["header_color"] = c.Styles.HeaderColor
	}
	for key, v := range map[string]int{
		"title_size":  c.Styles.TitleSize,
		"header_size": c.Styles.HeaderSize,
		"body_size":   c.Styles.BodySize,
		"answer_size": c.Styles.AnswerSize,
	} {
		if v != 0 {
			styles[key] = v
		}
	}

	blocks := make([]any, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		blocks = append(blocks, b.raw())
	}
	return map[string]any{
		"version": c.Version,
		"styles":  styles,
		"blocks":  blocks,
	}
}

func (b Block) raw() map[string]any {
	m := map[string]any{"kind": string(b.Kind)}
	if b.Pattern != "" {
		m["pattern"] = b.Pattern
	}
	if b.MM != nil {
		m["mm"] = *b.MM
	}
	if b.Source != "" {
		m["source"] = string(b.Source)
	}
	if b.Bullet != nil {
		m["bullet"] = *b.Bullet
	}
	if b.Headers != nil {
		m["headers"] = stringsToAny(b.Headers)
	}
	if b.Cols != nil {
		m["cols"] = stringsToAny(b.Cols)
	}
	if b.ColWidthsPct != nil {
		widths := make([]any, len(b.ColWidthsPct))
		for i, w := range b.ColWidthsPct {
			widths[i] = w
		}
		m["col_widths_pct"] = widths
	}
	return m
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
