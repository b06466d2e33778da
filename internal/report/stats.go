// Package report computes question bank statistics and exports them as CSV
// or Excel workbooks.
package report

import (
	"slices"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

type CourseStats struct {
	Name             string                      `json:"name"`
	QuestionCount    int                         `json:"question_count"`
	TypeDistribution map[models.QuestionType]int `json:"type_distribution"`
}

type Stats struct {
	TotalQuestions   int                         `json:"total_questions"`
	TotalCourses     int                         `json:"total_courses"`
	TypeDistribution map[models.QuestionType]int `json:"type_distribution"`
	Courses          []CourseStats               `json:"courses"`
}

// ForCourse counts the questions of one course by type.
func ForCourse(c *models.Course) CourseStats {
	return CourseStats{
		Name:             c.Name,
		QuestionCount:    c.Len(),
		TypeDistribution: typeDistribution(c.Questions),
	}
}

// Overall aggregates statistics over all courses, keeping course order.
func Overall(courses []*models.Course) Stats {
	s := Stats{
		TotalCourses:     len(courses),
		TypeDistribution: typeDistribution(models.AllQuestions(courses)),
		Courses:          make([]CourseStats, 0, len(courses)),
	}
	for _, c := range courses {
		cs := ForCourse(c)
		s.TotalQuestions += cs.QuestionCount
		s.Courses = append(s.Courses, cs)
	}
	return s
}

// Types returns the question types present in the distribution: known types
// in display order, then the remaining types alphabetically.
func (s Stats) Types() []models.QuestionType {
	var out []models.QuestionType
	seen := make(map[models.QuestionType]bool)
	for _, t := range models.KnownTypes {
		if s.TypeDistribution[t] > 0 {
			out = append(out, t)
			seen[t] = true
		}
	}
	for t := range s.TypeDistribution {
		if !seen[t] {
			out = append(out, t)
		}
	}
	slices.Sort(out[len(seen):])
	return out
}

func typeDistribution(questions []*models.Question) map[models.QuestionType]int {
	out := make(map[models.QuestionType]int)
	for _, q := range questions {
		out[q.Type]++
	}
	return out
}
