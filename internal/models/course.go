package models

// Course is a named group of questions in document order.
type Course struct {
	Name      string      `json:"name"`
	Questions []*Question `json:"questions"`
}

func NewCourse(name string) *Course {
	return &Course{Name: name}
}

func (c *Course) AddQuestion(q *Question) {
	c.Questions = append(c.Questions, q)
}

func (c *Course) Len() int {
	return len(c.Questions)
}

// AllQuestions flattens courses into one list, preserving course and question order.
func AllQuestions(courses []*Course) []*Question {
	var out []*Question
	for _, c := range courses {
		out = append(out, c.Questions...)
	}
	return out
}
