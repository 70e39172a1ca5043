// Package stats derives aggregate reporting figures from a roster: the
// class-wide average, a ranked leaderboard and the grade distribution.
package stats

import (
	"sort"

	"gradebook/models"
	"gradebook/roster"
)

// Grade is one of the five ordinal buckets students fall into.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Grades lists the buckets in display order.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

// Ranked pairs a student with the score used to order the leaderboard.
type Ranked struct {
	Student *models.Student
	Score   float64
}

// ClassAverage returns the mean of the per-student averages. Students with
// no marks are excluded from the mean rather than counted as zero; the
// second return value is false when no student has any marks.
func ClassAverage(r *roster.Roster) (float64, bool) {
	var total float64
	var counted int
	for _, s := range r.ListAll() {
		if avg, ok := s.Average(); ok {
			total += avg
			counted++
		}
	}
	if counted == 0 {
		return 0, false
	}
	return total / float64(counted), true
}

// TopN returns the n best students ordered by descending rank score. The
// rank score is the student's average, or 0.0 when they have no marks; this
// deliberately differs from ClassAverage, which excludes such students.
// Equal scores are broken by ascending roll.
func TopN(r *roster.Roster, n int) []Ranked {
	scored := make([]Ranked, 0, r.Len())
	for _, s := range r.ListAll() {
		avg, _ := s.Average()
		scored = append(scored, Ranked{Student: s, Score: avg})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Student.Roll < scored[j].Student.Roll
	})
	if n < 0 {
		n = 0
	}
	if n > len(scored) {
		n = len(scored)
	}
	return scored[:n]
}

// GradeDistribution partitions every student into exactly one bucket by
// average: A >= 80, B [60, 80), C [50, 60), D [40, 50), F below 40 or no
// marks at all. All five buckets are always present and the counts sum to
// the roster size.
func GradeDistribution(r *roster.Roster) map[Grade]int {
	buckets := map[Grade]int{GradeA: 0, GradeB: 0, GradeC: 0, GradeD: 0, GradeF: 0}
	for _, s := range r.ListAll() {
		avg, ok := s.Average()
		switch {
		case !ok:
			buckets[GradeF]++
		case avg >= 80:
			buckets[GradeA]++
		case avg >= 60:
			buckets[GradeB]++
		case avg >= 50:
			buckets[GradeC]++
		case avg >= 40:
			buckets[GradeD]++
		default:
			buckets[GradeF]++
		}
	}
	return buckets
}
