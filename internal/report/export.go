package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

const (
	coursesSheet   = "Courses"
	questionsSheet = "Questions"
)

// WriteCSV writes one "Course,Question Count" row per course.
func WriteCSV(w io.Writer, courses []*models.Course) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Course", "Question Count"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, c := range courses {
		if err := writer.Write([]string{c.Name, strconv.Itoa(c.Len())}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// WriteExcel builds a workbook with a per-course summary sheet and a sheet
// listing every question.
func WriteExcel(courses []*models.Course) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", coursesSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if _, err := f.NewSheet(questionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	stats := Overall(courses)
	types := stats.Types()

	headers := []interface{}{"Course", "Question Count"}
	for _, t := range types {
		headers = append(headers, string(t))
	}
	if err := setRow(f, coursesSheet, 1, headers); err != nil {
		return nil, err
	}
	for i, cs := range stats.Courses {
		row := []interface{}{cs.Name, cs.QuestionCount}
		for _, t := range types {
			row = append(row, cs.TypeDistribution[t])
		}
		if err := setRow(f, coursesSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	total := []interface{}{"Total", stats.TotalQuestions}
	for _, t := range types {
		total = append(total, stats.TypeDistribution[t])
	}
	if err := setRow(f, coursesSheet, len(stats.Courses)+2, total); err != nil {
		return nil, err
	}

	if err := setRow(f, questionsSheet, 1, []interface{}{
		"Course", "Type", "Name", "Question Text", "Answers", "Correct Answers",
	}); err != nil {
		return nil, err
	}
	rowIndex := 2
	for _, c := range courses {
		for _, q := range c.Questions {
			if err := setRow(f, questionsSheet, rowIndex, questionRow(c.Name, q)); err != nil {
				return nil, err
			}
			rowIndex++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func questionRow(course string, q *models.Question) []interface{} {
	answers := q.Answers
	correct := q.CorrectAnswers
	if q.Type == models.Matching {
		answers = q.MatchingAnswers
		correct = make([]string, 0, len(q.MatchingItems))
		for _, p := range q.MatchingItems {
			correct = append(correct, p.Item+" → "+p.Answer)
		}
	}
	return []interface{}{
		course,
		string(q.Type),
		q.Name,
		q.QuestionText,
		strings.Join(answers, "; "),
		strings.Join(correct, "; "),
	}
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
