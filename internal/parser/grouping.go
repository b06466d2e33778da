package parser

import (
	"strings"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
)

// groupState is the position of the grouping machine in the element stream.
type groupState int

const (
	// stateNoPending: no category seen yet and no course open.
	stateNoPending groupState = iota
	// statePending: a course-bearing category was seen; its course opens on the next question.
	statePending
	// stateInCourse: questions are appended to the open course.
	stateInCourse
)

func (s groupState) String() string {
	switch s {
	case stateNoPending:
		return "NoPendingCategory"
	case statePending:
		return "PendingCategory"
	case stateInCourse:
		return "InCourse"
	default:
		return "unknown"
	}
}

// grouper attaches questions to the most recent course-bearing category.
// A category only becomes a course once a question follows it.
type grouper struct {
	state         groupState
	pending       string
	course        *models.Course
	uncategorized bool

	uncategorizedName string
	courses           []*models.Course
	note              func(reason models.AnomalyReason, detail string)
}

func newGrouper(uncategorizedName string, note func(models.AnomalyReason, string)) *grouper {
	return &grouper{
		state:             stateNoPending,
		uncategorizedName: uncategorizedName,
		note:              note,
	}
}

// onCategory handles a resolved category name. Unresolvable categories never
// reach the grouper.
func (g *grouper) onCategory(name string) {
	switch g.state {
	case stateInCourse:
		g.flush()
	case statePending:
		g.note(models.AnomalyEmptyCategory, g.pending)
	}
	g.state = statePending
	g.pending = name
	g.course = nil
	g.uncategorized = false
}

func (g *grouper) onQuestion(q *models.Question) {
	switch g.state {
	case statePending:
		g.course = models.NewCourse(g.pending)
		g.pending = ""
		g.state = stateInCourse
	case stateNoPending:
		g.course = models.NewCourse(g.uncategorizedName)
		g.uncategorized = true
		g.state = stateInCourse
	}
	if g.uncategorized {
		g.note(models.AnomalyUncategorized, q.Name)
	}
	g.course.AddQuestion(q)
}

// finish flushes the open course and drops a trailing pending category.
func (g *grouper) finish() []*models.Course {
	switch g.state {
	case stateInCourse:
		g.flush()
	case statePending:
		g.note(models.AnomalyEmptyCategory, g.pending)
	}
	g.state = stateNoPending
	g.pending = ""
	g.course = nil
	return g.courses
}

func (g *grouper) flush() {
	if g.course != nil && g.course.Len() > 0 {
		g.courses = append(g.courses, g.course)
	}
}

// courseName extracts the course from a category path such as
// "<prefix>/Faculty/Course A". The course is the last non-empty segment
// below prefix; paths outside prefix or equal to it yield false.
func courseName(path, prefix string) (string, bool) {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, prefix) {
		return "", false
	}

	rel := strings.TrimSpace(path[len(prefix):])
	if !strings.HasPrefix(rel, "/") {
		return "", false
	}
	rel = rel[1:]

	var last string
	for _, part := range strings.Split(rel, "/") {
		if part = strings.TrimSpace(part); part != "" {
			last = part
		}
	}
	return last, last != ""
}
