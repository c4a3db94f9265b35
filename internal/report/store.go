package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/typeinfer/internal/analyzer"
	"github.com/funvibe/typeinfer/internal/verify"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	file       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	solved     INTEGER NOT NULL,
	verified   INTEGER NOT NULL,
	passed     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS parameters (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	function  TEXT NOT NULL,
	parameter TEXT NOT NULL,
	position  INTEGER NOT NULL,
	outcome   TEXT NOT NULL,
	type      TEXT,
	message   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS diagnostics (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	category TEXT NOT NULL,
	code     TEXT NOT NULL,
	line     INTEGER NOT NULL,
	col      INTEGER NOT NULL,
	message  TEXT NOT NULL
);
`

// Store keeps run results in a SQLite database.
type Store struct {
	db *sql.DB
}

// Run is the stored summary of one inference run.
type Run struct {
	ID          string
	File        string
	CreatedAt   time.Time
	Solved      bool
	Verified    bool
	Passed      bool
	Parameters  int
	Diagnostics int
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open report store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init report store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save records a run and returns its generated id. res is nil when
// verification was skipped.
func (s *Store) Save(ctx context.Context, r *analyzer.Report, res *verify.Result) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	verified := res != nil
	passed := verified && res.Passed()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, file, created_at, solved, verified, passed) VALUES (?, ?, ?, ?, ?, ?)`,
		id, r.File, time.Now().UTC().Format(time.RFC3339Nano), r.Solved(), verified, passed)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}

	for _, fn := range r.Functions {
		for i, p := range fn.Parameters {
			var typeName sql.NullString
			if p.Type != nil {
				typeName = sql.NullString{String: p.Type.String(), Valid: true}
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO parameters (run_id, function, parameter, position, outcome, type, message) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, fn.Name, p.Name, i, p.Outcome.String(), typeName, p.Message())
			if err != nil {
				return "", fmt.Errorf("save parameter %s.%s: %w", fn.Name, p.Name, err)
			}
		}
	}

	if verified {
		for _, d := range res.All() {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO diagnostics (run_id, category, code, line, col, message) VALUES (?, ?, ?, ?, ?, ?)`,
				id, string(d.Category), d.Code, d.Line, d.Column, d.Message)
			if err != nil {
				return "", fmt.Errorf("save diagnostic: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.file, r.created_at, r.solved, r.verified, r.passed,
       (SELECT COUNT(*) FROM parameters p WHERE p.run_id = r.id),
       (SELECT COUNT(*) FROM diagnostics d WHERE d.run_id = r.id)
FROM runs r
ORDER BY r.created_at DESC, r.rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var created string
		if err := rows.Scan(&run.ID, &run.File, &created, &run.Solved, &run.Verified, &run.Passed, &run.Parameters, &run.Diagnostics); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %s: bad timestamp %q: %w", run.ID, created, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
