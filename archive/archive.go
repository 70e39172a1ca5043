// Package archive stores a roster in Postgres as a durable alternative to
// the JSON snapshot file. One archive holds one roster: saving replaces the
// previous contents wholesale.
package archive

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"gradebook/migrations"
	"gradebook/models"
	"gradebook/roster"
)

// Store wraps the Postgres connection holding the archived roster.
type Store struct {
	db *sql.DB
}

// Open connects to the database described by the DB_HOST, DB_PORT, DB_USER,
// DB_PASSWORD and DB_NAME environment variables and makes sure the archive
// schema exists.
func Open() (*Store, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"))

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := migrations.InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection. The schema must already exist.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRoster replaces the archived roster with r in a single transaction.
func (s *Store) SaveRoster(r *roster.Roster) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM students`); err != nil {
		return fmt.Errorf("clearing archive: %w", err)
	}

	for _, st := range r.ListAll() {
		_, err := tx.Exec(`
			INSERT INTO students (roll, name)
			VALUES ($1, $2)
			ON CONFLICT (roll)
			DO UPDATE SET name = EXCLUDED.name`,
			st.Roll, st.Name)
		if err != nil {
			return fmt.Errorf("archiving student %d: %w", st.Roll, err)
		}

		for subject, score := range st.Marks {
			_, err := tx.Exec(`
				INSERT INTO marks (roll, subject, score)
				VALUES ($1, $2, $3)
				ON CONFLICT (roll, subject)
				DO UPDATE SET score = EXCLUDED.score`,
				st.Roll, subject, score)
			if err != nil {
				return fmt.Errorf("archiving mark %q for roll %d: %w", subject, st.Roll, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing archive: %w", err)
	}
	return nil
}

// LoadRoster rebuilds a fresh roster from the archive.
func (s *Store) LoadRoster() (*roster.Roster, error) {
	r := roster.New()

	rows, err := s.db.Query(`SELECT roll, name FROM students ORDER BY roll`)
	if err != nil {
		return nil, fmt.Errorf("querying students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roll int
		var name string
		if err := rows.Scan(&roll, &name); err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		r.Put(models.NewStudent(name, roll))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading students: %w", err)
	}

	markRows, err := s.db.Query(`SELECT roll, subject, score FROM marks`)
	if err != nil {
		return nil, fmt.Errorf("querying marks: %w", err)
	}
	defer markRows.Close()

	for markRows.Next() {
		var roll int
		var subject string
		var score float64
		if err := markRows.Scan(&roll, &subject, &score); err != nil {
			return nil, fmt.Errorf("scanning mark: %w", err)
		}
		st, err := r.Get(roll)
		if err != nil {
			return nil, fmt.Errorf("mark for unknown roll %d", roll)
		}
		st.Marks[subject] = score
	}
	if err := markRows.Err(); err != nil {
		return nil, fmt.Errorf("reading marks: %w", err)
	}

	return r, nil
}
