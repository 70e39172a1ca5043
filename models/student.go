package models

import (
	"fmt"
	"strings"
)

// Student represents one student record: a display name, a unique roll
// number and a mapping of subject name to score.
type Student struct {
	Name  string             `json:"name"`
	Roll  int                `json:"roll"`
	Marks map[string]float64 `json:"marks"`
}

// OutOfRangeError reports an attempt to record a score outside [0, 100].
type OutOfRangeError struct {
	Subject string
	Score   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("score %.2f for %q is out of range: must be between 0 and 100", e.Score, e.Subject)
}

// NewStudent creates a student with a trimmed name and no marks.
func NewStudent(name string, roll int) *Student {
	return &Student{
		Name:  strings.TrimSpace(name),
		Roll:  roll,
		Marks: make(map[string]float64),
	}
}

// SetMark records or overwrites the score for a subject. The subject name
// is trimmed. A score outside [0, 100] is rejected and nothing is stored.
func (s *Student) SetMark(subject string, score float64) error {
	subject = strings.TrimSpace(subject)
	if score < 0 || score > 100 {
		return &OutOfRangeError{Subject: subject, Score: score}
	}
	if s.Marks == nil {
		s.Marks = make(map[string]float64)
	}
	s.Marks[subject] = score
	return nil
}

// RemoveMark deletes the score for a subject, reporting whether one existed.
func (s *Student) RemoveMark(subject string) bool {
	subject = strings.TrimSpace(subject)
	if _, ok := s.Marks[subject]; !ok {
		return false
	}
	delete(s.Marks, subject)
	return true
}

// Average returns the arithmetic mean of the student's scores. The second
// return value is false when no marks are recorded; absence is never
// reported as a zero average.
func (s *Student) Average() (float64, bool) {
	if len(s.Marks) == 0 {
		return 0, false
	}
	var total float64
	for _, score := range s.Marks {
		total += score
	}
	return total / float64(len(s.Marks)), true
}
