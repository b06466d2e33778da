// Package ir defines the format-agnostic nodes produced by the block renderer.
// Document generators consume a []Node in order; every node carries exactly
// one payload matching its Kind.
package ir

import "strings"

type NodeKind string

const (
	KindTextLine   NodeKind = "text_line"
	KindSpacer     NodeKind = "spacer"
	KindList       NodeKind = "list"
	KindTable      NodeKind = "table"
	KindDiagnostic NodeKind = "diagnostic"
)

type Node struct {
	Kind       NodeKind    `json:"kind"`
	TextLine   *TextLine   `json:"text_line,omitempty"`
	Spacer     *Spacer     `json:"spacer,omitempty"`
	List       *List       `json:"list,omitempty"`
	Table      *Table      `json:"table,omitempty"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

// TextLine is one paragraph of already escaped text.
type TextLine struct {
	Text string `json:"text"`
}

// Spacer is vertical space in millimetres.
type Spacer struct {
	MM int `json:"mm"`
}

// List is a bulleted (Bullet) or numbered list.
type List struct {
	Bullet bool     `json:"bullet"`
	Items  []string `json:"items"`
}

// Table rows always have len(cols) cells. Headers and ColWidthsPct are nil
// when absent or unusable.
type Table struct {
	Headers      []string   `json:"headers,omitempty"`
	Rows         [][]string `json:"rows"`
	ColWidthsPct []int      `json:"col_widths_pct,omitempty"`
}

// Diagnostic replaces the whole output of a render whose config was invalid.
type Diagnostic struct {
	Errors []string `json:"errors"`
}

func (d *Diagnostic) Message() string {
	return "Template error: " + strings.Join(d.Errors, "; ")
}

func NewTextLine(text string) Node {
	return Node{Kind: KindTextLine, TextLine: &TextLine{Text: text}}
}

func NewSpacer(mm int) Node {
	return Node{Kind: KindSpacer, Spacer: &Spacer{MM: mm}}
}

func NewList(bullet bool, items []string) Node {
	return Node{Kind: KindList, List: &List{Bullet: bullet, Items: items}}
}

func NewTable(headers []string, rows [][]string, widths []int) Node {
	return Node{Kind: KindTable, Table: &Table{Headers: headers, Rows: rows, ColWidthsPct: widths}}
}

func NewDiagnostic(errors []string) Node {
	return Node{Kind: KindDiagnostic, Diagnostic: &Diagnostic{Errors: errors}}
}

// HasDiagnostic reports whether nodes contain a diagnostic node.
func HasDiagnostic(nodes []Node) bool {
	for _, n := range nodes {
		if n.Kind == KindDiagnostic {
			return true
		}
	}
	return false
}
