package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsWhitelistedTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "paragraph and break",
			input:    `<text><![CDATA[<p>Hello<br/>world</p>]]></text>`,
			expected: `<text>Helloworld</text>`,
		},
		{
			name:     "case insensitive with attributes",
			input:    `<text><![CDATA[<P class="x">A <STRONG>bold</STRONG> move</P>]]></text>`,
			expected: `<text>A bold move</text>`,
		},
		{
			name:     "whitespace collapsed and trimmed",
			input:    "<text><![CDATA[  <div>\n\t one \n\n two </div>  ]]></text>",
			expected: `<text>one two</text>`,
		},
		{
			name:     "reserved characters escaped",
			input:    `<text><![CDATA[a < b && c > "d" 'e']]></text>`,
			expected: `<text>a &lt; b &amp;&amp; c &gt; &quot;d&quot; &apos;e&apos;</text>`,
		},
		{
			name:     "table markup",
			input:    `<text><![CDATA[<table><tr><td>1</td><th>2</th></tr></table>]]></text>`,
			expected: `<text>12</text>`,
		},
		{
			name:     "unlisted tag leaks as escaped text",
			input:    `<text><![CDATA[<sup>2</sup>]]></text>`,
			expected: `<text>&lt;sup&gt;2&lt;/sup&gt;</text>`,
		},
		{
			name:     "non-breaking space collapsed",
			input:    "<text><![CDATA[a\u00a0 \u00a0b]]></text>",
			expected: `<text>a b</text>`,
		},
		{
			name:     "multiple sections",
			input:    `<a><![CDATA[<b>x</b>]]></a><c><![CDATA[<i>y</i>]]></c>`,
			expected: `<a>x</a><c>y</c>`,
		},
		{
			name:     "text outside cdata untouched",
			input:    `<name><text>Q1 &amp; more</text></name>`,
			expected: `<name><text>Q1 &amp; more</text></name>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestCleanEmptyInput(t *testing.T) {
	assert.Equal(t, "", Clean(""))
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		`<text><![CDATA[<p>Fish &amp; chips</p>]]></text>`,
		`<text><![CDATA[x < y]]></text><text>plain</text>`,
		"<q><![CDATA[<ul><li>one</li>\n<li>two</li></ul>]]></q>",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), in)
	}
}

func TestPrefixPatternLeakage(t *testing.T) {
	// "i" matches any tag starting with i, so an image tag disappears too.
	assert.Equal(t, "<t>ab</t>", Clean(`<t><![CDATA[a<img src="x.png">b]]></t>`))
}

func TestCustomWhitelist(t *testing.T) {
	s := New([]string{"sup"})
	assert.Equal(t, "<t>x2</t>", s.Clean(`<t><![CDATA[x<sup>2</sup>]]></t>`))
	assert.Equal(t, "&lt;p&gt;y", s.CleanSegment("<p>y"))
}

func TestEscapeXMLOrder(t *testing.T) {
	assert.Equal(t, "&amp;lt;", EscapeXML("&lt;"))
	assert.Equal(t, "", EscapeXML(""))
}
