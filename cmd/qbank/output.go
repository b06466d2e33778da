package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SAP-F-2025/assessment-docgen/internal/ir"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// readDocument loads a YAML or JSON file into generic values.
func readDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}

// readInto decodes a YAML or JSON file into v.
func readInto(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q (want one of %s)", format, strings.Join(allowed, ", "))
}

// writeNodes prints IR nodes as plain text.
func writeNodes(w io.Writer, nodes []ir.Node) error {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case ir.KindTextLine:
			b.WriteString(n.TextLine.Text)
			b.WriteByte('\n')
		case ir.KindSpacer:
			if n.Spacer.MM > 0 {
				b.WriteByte('\n')
			}
		case ir.KindList:
			for i, item := range n.List.Items {
				if n.List.Bullet {
					b.WriteString("  • ")
				} else {
					fmt.Fprintf(&b, "  %d. ", i+1)
				}
				b.WriteString(item)
				b.WriteByte('\n')
			}
		case ir.KindTable:
			if n.Table.Headers != nil {
				b.WriteString("| " + strings.Join(n.Table.Headers, " | ") + " |\n")
			}
			for _, row := range n.Table.Rows {
				b.WriteString("| " + strings.Join(row, " | ") + " |\n")
			}
		case ir.KindDiagnostic:
			b.WriteString("!! " + n.Diagnostic.Message() + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
