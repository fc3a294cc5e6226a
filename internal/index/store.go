// Package index keeps a local SQLite index of observation metadata records.
package index

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/gammasky/dl3kit/pkg/constants"
	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/metadata"
)

const timeLayout = time.RFC3339Nano

// Entry is one indexed record.
type Entry struct {
	ID        uuid.UUID
	Name      string
	Telescope []string
	ObsIDs    []string
	CreatedAt utc.Time
	UpdatedAt utc.Time
	Record    *metadata.MapDatasetMetadata
}

// Store is a SQLite-backed index of metadata records keyed by name.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the index at path.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", filepath.Dir(path), err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	// :memory: databases exist per connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("migrate", "index", path, err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	PRAGMA busy_timeout = 5000;

	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		telescope TEXT NOT NULL DEFAULT '',
		obs_ids TEXT NOT NULL DEFAULT '',
		record TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_telescope ON records(telescope);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores record under name, replacing any record of the same name.
// It returns the id of the entry, which is stable across replacements.
func (s *Store) Put(ctx context.Context, name string, record *metadata.MapDatasetMetadata) (uuid.UUID, error) {
	if strings.TrimSpace(name) == "" {
		return uuid.Nil, errors.NewValidationError("name", name, "must not be empty")
	}
	if record == nil {
		return uuid.Nil, errors.NewValidationError("record", nil, "must not be nil")
	}

	data, err := metadata.Marshal(record)
	if err != nil {
		return uuid.Nil, errors.WrapParse("yaml", name, err)
	}

	now := utc.Now().Format(timeLayout)
	id := uuid.New()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, name, telescope, obs_ids, record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			telescope = excluded.telescope,
			obs_ids = excluded.obs_ids,
			record = excluded.record,
			updated_at = excluded.updated_at
	`, id.String(), name, join(record.Telescope().Items()), join(record.ObsIDs().Items()), string(data), now, now)
	if err != nil {
		return uuid.Nil, errors.WrapResource("store", "index", name, err)
	}

	var stored string
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM records WHERE name = ?`, name).Scan(&stored); err != nil {
		return uuid.Nil, errors.WrapResource("store", "index", name, err)
	}
	return uuid.Parse(stored)
}

// Get returns the entry stored under name.
func (s *Store) Get(ctx context.Context, name string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, telescope, obs_ids, record, created_at, updated_at
		FROM records WHERE name = ?
	`, name)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("record", name)
	}
	if err != nil {
		return nil, errors.WrapResource("load", "index", name, err)
	}
	return entry, nil
}

// List returns every entry ordered by name.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, telescope, obs_ids, record, created_at, updated_at
		FROM records ORDER BY name
	`)
	if err != nil {
		return nil, errors.WrapResource("list", "index", "", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.WrapResource("list", "index", "", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("list", "index", "", err)
	}
	return entries, nil
}

// Delete removes the entry stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE name = ?`, name)
	if err != nil {
		return errors.WrapResource("delete", "index", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WrapResource("delete", "index", name, err)
	}
	if n == 0 {
		return errors.NewNotFoundError("record", name)
	}
	return nil
}

// Stack loads the named records and stacks them in the given order.
func (s *Store) Stack(ctx context.Context, names ...string) (*metadata.MapDatasetMetadata, error) {
	records := make([]*metadata.MapDatasetMetadata, 0, len(names))
	for _, name := range names {
		entry, err := s.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		records = append(records, entry.Record)
	}
	return metadata.StackAll(records...)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		id, name, telescope, obsIDs, record string
		created, updated                    string
	)
	if err := row.Scan(&id, &name, &telescope, &obsIDs, &record, &created, &updated); err != nil {
		return nil, err
	}

	entry := &Entry{Name: name, Telescope: split(telescope), ObsIDs: split(obsIDs)}
	var err error
	if entry.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if entry.CreatedAt, err = utc.Parse(timeLayout, created); err != nil {
		return nil, err
	}
	if entry.UpdatedAt, err = utc.Parse(timeLayout, updated); err != nil {
		return nil, err
	}
	if entry.Record, err = metadata.Unmarshal([]byte(record)); err != nil {
		return nil, err
	}
	return entry, nil
}

func join(items []string) string {
	return strings.Join(items, ",")
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
