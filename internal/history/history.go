package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Entry is one rendered document.
type Entry struct {
	ID        int64
	Template  string
	Number    string
	Executor  string
	Date      string
	Amount    int64
	Output    string
	CreatedAt time.Time
}

// Store is the render journal. A Store opened with an empty path is disabled:
// it records nothing and finds nothing.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the journal at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return &Store{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Enabled reports whether the store writes to a database.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.db.Close()
}

// Record appends e to the journal and returns its ID. A zero CreatedAt is set
// to the current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO renders (template, doc_num, executor, doc_date, amount, output_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Template, e.Number, e.Executor, e.Date, e.Amount, e.Output,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record render: %w", err)
	}
	return res.LastInsertId()
}

// List returns the latest entries, newest first. A limit of zero or less
// returns every entry.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1
	}
	return s.query(ctx,
		`SELECT id, template, doc_num, executor, doc_date, amount, output_path, created_at
		 FROM renders ORDER BY id DESC LIMIT ?`, limit)
}

// FindByNumber returns the entries issued for template under number, oldest first.
func (s *Store) FindByNumber(ctx context.Context, template, number string) ([]Entry, error) {
	if !s.Enabled() {
		return nil, nil
	}
	return s.query(ctx,
		`SELECT id, template, doc_num, executor, doc_date, amount, output_path, created_at
		 FROM renders WHERE template = ? AND doc_num = ? ORDER BY id`, template, number)
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Template, &e.Number, &e.Executor, &e.Date, &e.Amount, &e.Output, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("invalid created_at %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}
