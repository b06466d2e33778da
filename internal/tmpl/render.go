package tmpl

import (
	"fmt"

	"github.com/SAP-F-2025/assessment-docgen/internal/ir"
	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

const DefaultTaskLabel = "Задание"

type RenderOptions struct {
	// TaskLabel is the word before the task number in the header.
	TaskLabel string
	// CorrectMarker is returned by the is_correct pipe.
	CorrectMarker string
	// Escape is applied to every resolved placeholder value. Defaults to
	// HTMLEscape.
	Escape func(string) string
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		TaskLabel:     DefaultTaskLabel,
		CorrectMarker: DefaultCorrectMarker,
		Escape:        HTMLEscape,
	}
}

// Renderer turns a Config and a question into IR nodes. It holds no state
// besides its options and is safe for concurrent use.
type Renderer struct {
	opts RenderOptions
}

func NewRenderer(opts RenderOptions) *Renderer {
	def := DefaultRenderOptions()
	if opts.TaskLabel == "" {
		opts.TaskLabel = def.TaskLabel
	}
	if opts.CorrectMarker == "" {
		opts.CorrectMarker = def.CorrectMarker
	}
	if opts.Escape == nil {
		opts.Escape = def.Escape
	}
	return &Renderer{opts: opts}
}

var defaultRenderer = NewRenderer(DefaultRenderOptions())

// Render renders q with the default options.
func Render(cfg Config, q *models.Question, meta models.Metadata, taskNumber int) []ir.Node {
	return defaultRenderer.Render(cfg, q, meta, taskNumber)
}

// TaskHeader formats the fixed header line of task n.
func (r *Renderer) TaskHeader(meta models.Metadata, n int) string {
	pk, ipk := meta.PKPrefix, meta.IPKPrefix
	if pk == "" {
		pk = models.DefaultPKPrefix
	}
	if ipk == "" {
		ipk = models.DefaultIPKPrefix
	}
	return fmt.Sprintf("- %s %d (%s-%s – %s-%s %s)",
		r.opts.TaskLabel, n, pk, meta.PKID, ipk, meta.IPKID, meta.Description)
}

// Render emits one node per block. An invalid cfg yields a single
// diagnostic node instead.
func (r *Renderer) Render(cfg Config, q *models.Question, meta models.Metadata, taskNumber int) []ir.Node {
	if errs := cfg.Validate(); len(errs) > 0 {
		return []ir.Node{ir.NewDiagnostic(errs)}
	}

	ctx := NewContext(q, meta, r.TaskHeader(meta, taskNumber))
	ev := NewEvaluator(ctx, r.opts.CorrectMarker, r.opts.Escape)

	nodes := make([]ir.Node, 0, len(cfg.Blocks))
	for _, b := range cfg.Blocks {
		switch b.Kind {
		case BlockLine:
			nodes = append(nodes, ir.NewTextLine(ev.Expand(b.Pattern, NoItem)))
		case BlockSpacer:
			mm := DefaultSpacerMM
			if b.MM != nil {
				mm = *b.MM
			}
			nodes = append(nodes, ir.NewSpacer(mm))
		case BlockList:
			pattern := b.Pattern
			if pattern == "" {
				pattern = DefaultListPattern
			}
			bullet := b.Bullet == nil || *b.Bullet
			var lines []string
			for _, it := range sourceItems(q, b.Source) {
				lines = append(lines, ev.Expand(pattern, it))
			}
			nodes = append(nodes, ir.NewList(bullet, lines))
		case BlockTable:
			nodes = append(nodes, r.table(ev, b, q))
		}
	}
	return nodes
}

func (r *Renderer) table(ev *Evaluator, b Block, q *models.Question) ir.Node {
	var rows [][]string
	for _, it := range sourceItems(q, b.Source) {
		row := make([]string, len(b.Cols))
		for i, col := range b.Cols {
			row[i] = ev.Expand(col, it)
		}
		rows = append(rows, row)
	}

	var headers []string
	if len(b.Headers) == len(b.Cols) {
		headers = append([]string{}, b.Headers...)
	}
	return ir.NewTable(headers, rows, normalizeWidths(b.ColWidthsPct, len(b.Cols)))
}

// sourceItems binds the elements of the named source. An empty source yields
// a single unbound item so that lists and tables always have one entry.
func sourceItems(q *models.Question, source Source) []Item {
	var items []Item
	switch source {
	case SourceAnswersAll:
		for i, a := range q.Answers {
			items = append(items, StringItem(i+1, a))
		}
	case SourceAnswersCorrect:
		for i, a := range q.CorrectAnswers {
			items = append(items, StringItem(i+1, a))
		}
	case SourceMatchingPairs:
		for i, p := range q.MatchingItems {
			items = append(items, PairItem(i+1, p))
		}
	}
	if len(items) == 0 {
		return []Item{NoItem}
	}
	return items
}

func normalizeWidths(widths []int, cols int) []int {
	if len(widths) != cols {
		return nil
	}
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum == 0 {
		return nil
	}
	return append([]int{}, widths...)
}
