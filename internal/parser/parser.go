// Package parser reads Moodle XML question bank exports and groups their
// questions into courses.
//
// The export is a flat sequence of <question> elements. Elements of type
// "category" carry a slash-delimited category path; every other element is a
// question that belongs to the closest preceding course-bearing category.
package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	apperrors "github.com/SAP-F-2025/assessment-docgen/internal/errors"
	"github.com/SAP-F-2025/assessment-docgen/internal/models"
	"github.com/SAP-F-2025/assessment-docgen/internal/sanitizer"
)

const (
	// DefaultCategoryPrefix is the root category of the course question banks.
	DefaultCategoryPrefix = "$module$/top/По умолчанию для Банк вопросов курса Оценочные материалы"
	DefaultUncategorized  = "Без категории"
	DefaultTrueLabel      = "Верно"
	DefaultFalseLabel     = "Неверно"
)

var errNoRoot = errors.New("no root element found")

// Options configures a Parser. Zero-valued fields fall back to the defaults.
type Options struct {
	CategoryPrefix    string
	UncategorizedName string
	TrueLabel         string
	FalseLabel        string
	Sanitizer         *sanitizer.Sanitizer
}

func DefaultOptions() Options {
	return Options{
		CategoryPrefix:    DefaultCategoryPrefix,
		UncategorizedName: DefaultUncategorized,
		TrueLabel:         DefaultTrueLabel,
		FalseLabel:        DefaultFalseLabel,
		Sanitizer:         sanitizer.New(sanitizer.InlineTags),
	}
}

// Result is the outcome of one parse. Anomalies lists everything that was
// absorbed rather than reported as an error.
type Result struct {
	Courses   []*models.Course
	Anomalies []models.Anomaly
}

// Questions returns all questions in document order.
func (r *Result) Questions() []*models.Question {
	return models.AllQuestions(r.Courses)
}

// Parser is safe for concurrent use; each call keeps its own state.
type Parser struct {
	opts Options
}

func New(opts Options) *Parser {
	def := DefaultOptions()
	if opts.CategoryPrefix == "" {
		opts.CategoryPrefix = def.CategoryPrefix
	}
	if opts.UncategorizedName == "" {
		opts.UncategorizedName = def.UncategorizedName
	}
	if opts.TrueLabel == "" {
		opts.TrueLabel = def.TrueLabel
	}
	if opts.FalseLabel == "" {
		opts.FalseLabel = def.FalseLabel
	}
	if opts.Sanitizer == nil {
		opts.Sanitizer = def.Sanitizer
	}
	return &Parser{opts: opts}
}

// Parse reads a whole export from r.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseFile parses the export stored at path.
func (p *Parser) ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes sanitizes data and runs the grouping pass over it. A document
// that is not well-formed after sanitizing fails as a whole with a
// *errors.ParseError; nothing is extracted from it.
func (p *Parser) ParseBytes(data []byte) (*Result, error) {
	cleaned := p.opts.Sanitizer.Clean(string(data))

	res := &Result{}
	note := func(reason models.AnomalyReason, detail string) {
		res.Anomalies = append(res.Anomalies, models.Anomaly{Reason: reason, Detail: detail})
	}
	ex := &extractor{trueLabel: p.opts.TrueLabel, falseLabel: p.opts.FalseLabel, note: note}
	g := newGrouper(p.opts.UncategorizedName, note)

	dec := xml.NewDecoder(strings.NewReader(cleaned))
	dec.CharsetReader = charset.NewReaderLabel

	sawRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, positioned(dec, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if se.Name.Local != "question" {
			continue
		}

		var rq rawQuestion
		if err := dec.DecodeElement(&rq, &se); err != nil {
			return nil, positioned(dec, err)
		}

		if models.QuestionType(rq.Type) == models.Category {
			name, ok := courseName(rq.Category.Text, p.opts.CategoryPrefix)
			if !ok {
				note(models.AnomalyInvalidCategory, rq.Category.Text)
				continue
			}
			g.onCategory(name)
			continue
		}
		g.onQuestion(ex.extract(&rq))
	}

	if !sawRoot {
		return nil, apperrors.NewParseError(1, 1, errNoRoot)
	}

	res.Courses = g.finish()
	return res, nil
}

// positioned attaches the decoder position, which refers to the sanitized text.
func positioned(dec *xml.Decoder, err error) error {
	line, col := dec.InputPos()
	return apperrors.NewParseError(line, col, err)
}
