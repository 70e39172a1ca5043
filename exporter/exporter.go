// Package exporter renders a roster to flat tabular forms: CSV and XLSX
// files for external tools, and aligned console tables for the menu. The
// column set is derived from the data: one column per subject that appears
// anywhere in the roster, sorted alphabetically. Export only; none of these
// forms can be read back into a roster.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gradebook/models"
	"gradebook/roster"
)

// Subjects returns the alphabetically sorted union of subject names across
// every student in the roster.
func Subjects(r *roster.Roster) []string {
	set := make(map[string]struct{})
	for _, s := range r.ListAll() {
		for subject := range s.Marks {
			set[subject] = struct{}{}
		}
	}
	subjects := make([]string, 0, len(set))
	for subject := range set {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

// SubjectsOf returns one student's subject names, sorted alphabetically.
func SubjectsOf(s *models.Student) []string {
	subjects := make([]string, 0, len(s.Marks))
	for subject := range s.Marks {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

// Header builds the header row: roll, name, the subject columns, average.
func Header(subjects []string) []string {
	header := make([]string, 0, len(subjects)+3)
	header = append(header, "roll", "name")
	header = append(header, subjects...)
	return append(header, "average")
}

// Row builds one data row for the given subject columns. Subjects the
// student has no score for render as empty cells, as does a missing
// average; the average is formatted to two decimal places.
func Row(s *models.Student, subjects []string) []string {
	row := make([]string, 0, len(subjects)+3)
	row = append(row, strconv.Itoa(s.Roll), s.Name)
	for _, subject := range subjects {
		if score, ok := s.Marks[subject]; ok {
			row = append(row, strconv.FormatFloat(score, 'g', -1, 64))
		} else {
			row = append(row, "")
		}
	}
	if avg, ok := s.Average(); ok {
		row = append(row, fmt.Sprintf("%.2f", avg))
	} else {
		row = append(row, "")
	}
	return row
}

// WriteCSV writes the roster to w as comma-delimited text, one row per
// student ordered by ascending roll.
func WriteCSV(w io.Writer, r *roster.Roster) error {
	subjects := Subjects(r)
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(subjects)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range r.ListAll() {
		if err := cw.Write(Row(s, subjects)); err != nil {
			return fmt.Errorf("writing row for roll %d: %w", s.Roll, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// ExportCSV writes the roster as CSV to the file at path.
func ExportCSV(path string, r *roster.Roster) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	if err := WriteCSV(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing csv file: %w", err)
	}
	return nil
}
