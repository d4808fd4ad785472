package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

// SQLiteStore keeps records in a local SQLite database.
type SQLiteStore struct {
	database *sql.DB
	dbPath   string
	now      func() time.Time
}

// OpenSQLite opens or creates the database at dbPath and applies the schema.
// The path ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	database.SetMaxOpenConns(1)

	s := &SQLiteStore{database: database, dbPath: dbPath, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = database.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.database.Close()
}

func (s *SQLiteStore) DBPath() string {
	return s.dbPath
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			short_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			folder TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS proposals (
			id TEXT PRIMARY KEY,
			number TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			project_ref TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_proposals_project_ref ON proposals(project_ref);`,
	}
	for _, statement := range statements {
		if _, err := s.database.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to migrate sqlite db: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*Project, error) {
	row := s.database.QueryRowContext(ctx,
		`SELECT id, name, short_name, status, folder, updated_at FROM projects WHERE id = ?`, id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, projectNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", id, err)
	}
	return p, nil
}

func (s *SQLiteStore) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.database.QueryContext(ctx,
		`SELECT id, name, short_name, status, folder, updated_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read project row: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (s *SQLiteStore) PutProject(ctx context.Context, p *Project) error {
	if err := validateProject(p); err != nil {
		return err
	}
	_, err := s.database.ExecContext(ctx, `
		INSERT INTO projects (id, name, short_name, status, folder, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			short_name = excluded.short_name,
			status = excluded.status,
			folder = excluded.folder,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, p.ShortName, string(p.Status), p.Folder, s.timestamp())
	if err != nil {
		return fmt.Errorf("failed to save project %s: %w", p.ID, err)
	}
	return nil
}

func (s *SQLiteStore) UpdateProjectStatus(ctx context.Context, id string, status lifecycle.Status, folder string) error {
	result, err := s.database.ExecContext(ctx, `
		UPDATE projects
		SET status = ?, folder = CASE WHEN ? = '' THEN folder ELSE ? END, updated_at = ?
		WHERE id = ?`,
		string(status), folder, folder, s.timestamp(), id)
	if err != nil {
		return fmt.Errorf("failed to update status of %s: %w", id, err)
	}
	return requireAffected(result, projectNotFound(id))
}

func (s *SQLiteStore) ListProposals(ctx context.Context) ([]Proposal, error) {
	rows, err := s.database.QueryContext(ctx,
		`SELECT id, number, name, project_ref, status, updated_at FROM proposals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	proposals := []Proposal{}
	for rows.Next() {
		var (
			p         Proposal
			status    string
			updatedAt string
		)
		if err := rows.Scan(&p.ID, &p.Number, &p.Name, &p.ProjectRef, &status, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to read proposal row: %w", err)
		}
		p.Status = lifecycle.ProposalStatus(status)
		p.UpdatedAt = parseTimestamp(updatedAt)
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (s *SQLiteStore) PutProposal(ctx context.Context, p *Proposal) error {
	if err := validateProposal(p); err != nil {
		return err
	}
	_, err := s.database.ExecContext(ctx, `
		INSERT INTO proposals (id, number, name, project_ref, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			number = excluded.number,
			name = excluded.name,
			project_ref = excluded.project_ref,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		p.ID, p.Number, p.Name, p.ProjectRef, string(p.Status), s.timestamp())
	if err != nil {
		return fmt.Errorf("failed to save proposal %s: %w", p.ID, err)
	}
	return nil
}

func (s *SQLiteStore) UpdateProposalStatus(ctx context.Context, id string, status lifecycle.ProposalStatus) error {
	result, err := s.database.ExecContext(ctx,
		`UPDATE proposals SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), s.timestamp(), id)
	if err != nil {
		return fmt.Errorf("failed to update proposal %s: %w", id, err)
	}
	return requireAffected(result, proposalNotFound(id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var (
		p         Project
		status    string
		updatedAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.ShortName, &status, &p.Folder, &updatedAt); err != nil {
		return nil, err
	}
	p.Status = lifecycle.Status(status)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}

func requireAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
