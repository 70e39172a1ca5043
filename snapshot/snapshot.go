// Package snapshot persists a roster as a single JSON document: an array of
// {name, roll, marks} objects ordered by ascending roll. Loading a snapshot
// reproduces names, rolls and marks exactly.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gradebook/models"
	"gradebook/roster"
)

// ParseError reports a snapshot document that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed snapshot: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Save writes the roster to w as an indented JSON array ordered by roll.
func Save(w io.Writer, r *roster.Roster) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.ListAll()); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// SaveFile writes the roster snapshot to the file at path.
func SaveFile(path string, r *roster.Roster) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	if err := Save(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing snapshot file: %w", err)
	}
	return nil
}

// Load decodes a snapshot document into a fresh roster.
func Load(rd io.Reader) (*roster.Roster, error) {
	r := roster.New()
	if err := LoadInto(rd, r); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadInto decodes a snapshot document and inserts every entry into r by
// roll, overwriting students already present; when a roll appears more than
// once in the document the last entry wins. Scores are taken as written:
// the document is trusted and bounds are not re-checked.
func LoadInto(rd io.Reader, r *roster.Roster) error {
	var entries []*models.Student
	if err := json.NewDecoder(rd).Decode(&entries); err != nil {
		return &ParseError{Err: err}
	}
	for _, s := range entries {
		if s == nil {
			return &ParseError{Err: fmt.Errorf("null student entry")}
		}
		s.Name = strings.TrimSpace(s.Name)
		if s.Marks == nil {
			s.Marks = make(map[string]float64)
		}
		r.Put(s)
	}
	return nil
}

// LoadFile reads the snapshot file at path into a fresh roster.
func LoadFile(path string) (*roster.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
