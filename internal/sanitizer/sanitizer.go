// Package sanitizer cleans CDATA sections of exported question banks before
// they are handed to the XML decoder.
//
// Cleaning is best-effort: only the tags listed in InlineTags are removed.
// Anything else inside a CDATA section survives, escaped, as literal text.
package sanitizer

import (
	"regexp"
	"strings"
)

// InlineTags is the whitelist of markup removed from CDATA content, applied in
// this order. Each entry strips "<name...>" and "</name>" case-insensitively.
// The open pattern is a plain prefix match, so "b" also removes "<br>" and
// "<blockquote>", and "i" removes "<img ...>".
var InlineTags = []string{
	"p", "br", "div", "span",
	"strong", "b", "em", "i", "u",
	"ul", "ol", "li",
	"table", "tr", "td", "th",
}

var (
	cdataRe      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	whitespaceRe = regexp.MustCompile(`[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]+`)

	xmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
)

// Sanitizer strips a fixed tag whitelist from CDATA sections.
type Sanitizer struct {
	rules []*regexp.Regexp
}

// New builds a sanitizer for the given tag names.
func New(tags []string) *Sanitizer {
	s := &Sanitizer{rules: make([]*regexp.Regexp, 0, len(tags)*2)}
	for _, tag := range tags {
		name := regexp.QuoteMeta(tag)
		s.rules = append(s.rules,
			regexp.MustCompile(`(?i)<`+name+`[^>]*>`),
			regexp.MustCompile(`(?i)</`+name+`>`),
		)
	}
	return s
}

var defaultSanitizer = New(InlineTags)

// Clean cleans a whole document with the default whitelist.
func Clean(raw string) string {
	return defaultSanitizer.Clean(raw)
}

// Clean replaces every CDATA section of raw with its cleaned, XML-escaped
// content. Text outside CDATA is returned as is.
func (s *Sanitizer) Clean(raw string) string {
	if raw == "" {
		return raw
	}
	return cdataRe.ReplaceAllStringFunc(raw, func(section string) string {
		m := cdataRe.FindStringSubmatch(section)
		return s.CleanSegment(m[1])
	})
}

// CleanSegment cleans the content of a single CDATA section.
func (s *Sanitizer) CleanSegment(content string) string {
	for _, re := range s.rules {
		content = re.ReplaceAllString(content, "")
	}
	content = whitespaceRe.ReplaceAllString(content, " ")
	content = strings.Trim(content, " ")
	return EscapeXML(content)
}

// EscapeXML escapes the five XML-reserved characters, ampersand first.
func EscapeXML(text string) string {
	if text == "" {
		return text
	}
	return xmlEscaper.Replace(text)
}
