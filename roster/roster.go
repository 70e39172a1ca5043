// Package roster implements the in-memory keyed collection of students for
// one session. Rolls are unique; Add never overwrites an existing student.
package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gradebook/models"
)

// ErrNotFound is returned by operations that reference a roll with no
// student behind it.
var ErrNotFound = errors.New("student not found")

// DuplicateRollError reports an Add with a roll that is already taken.
type DuplicateRollError struct {
	Roll int
}

func (e *DuplicateRollError) Error() string {
	return fmt.Sprintf("roll %d already exists", e.Roll)
}

// Roster owns the students of the current session, keyed by roll number.
type Roster struct {
	students map[int]*models.Student
}

// New returns an empty roster.
func New() *Roster {
	return &Roster{students: make(map[int]*models.Student)}
}

// Add inserts a student. An existing roll is never silently overwritten.
func (r *Roster) Add(s *models.Student) error {
	if _, ok := r.students[s.Roll]; ok {
		return &DuplicateRollError{Roll: s.Roll}
	}
	r.students[s.Roll] = s
	return nil
}

// Put inserts or replaces the student for its roll. Used by codecs that
// load documents where the last entry for a roll wins.
func (r *Roster) Put(s *models.Student) {
	r.students[s.Roll] = s
}

// Get returns the student with the given roll, or ErrNotFound.
func (r *Roster) Get(roll int) (*models.Student, error) {
	s, ok := r.students[roll]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove deletes the student with the given roll, or returns ErrNotFound.
func (r *Roster) Remove(roll int) error {
	if _, ok := r.students[roll]; !ok {
		return ErrNotFound
	}
	delete(r.students, roll)
	return nil
}

// Rename replaces the student's name, trimmed, or returns ErrNotFound.
func (r *Roster) Rename(roll int, newName string) error {
	s, ok := r.students[roll]
	if !ok {
		return ErrNotFound
	}
	s.Name = strings.TrimSpace(newName)
	return nil
}

// SearchByName returns students whose name contains the query,
// case-insensitively, ordered by ascending roll.
func (r *Roster) SearchByName(substr string) []*models.Student {
	q := strings.ToLower(strings.TrimSpace(substr))
	var matches []*models.Student
	for _, s := range r.students {
		if strings.Contains(strings.ToLower(s.Name), q) {
			matches = append(matches, s)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Roll < matches[j].Roll })
	return matches
}

// ListAll returns every student ordered by ascending roll.
func (r *Roster) ListAll() []*models.Student {
	all := make([]*models.Student, 0, len(r.students))
	for _, s := range r.students {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Roll < all[j].Roll })
	return all
}

// Len returns the number of students in the roster.
func (r *Roster) Len() int {
	return len(r.students)
}
