package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/presentai/presentai/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the store
// interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.presentai/data/presentai.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".presentai", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "presentai.db")

	// WAL mode lets the HTTP server read while the CLI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PresentationStore returns a PresentationStore interface backed by this store.
func (s *Store) PresentationStore() driven.PresentationStore {
	return &presentationStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// ==================== Presentation Store ====================

// presentationStore implements driven.PresentationStore.
type presentationStore struct {
	store *Store
}

var _ driven.PresentationStore = (*presentationStore)(nil)

// Save stores or updates a presentation. Updating a presentation owned by
// someone else is forbidden.
func (s *presentationStore) Save(ctx context.Context, p *domain.Presentation) error {
	if p == nil || p.ID == "" || p.OwnerID == "" {
		return domain.ErrInvalidInput
	}
	content, err := domain.MarshalSlides(p.Slides)
	if err != nil {
		return fmt.Errorf("marshalling slides: %w", err)
	}

	now := time.Now().UTC()
	createdAt, updatedAt := p.CreatedAt, p.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO presentations (id, owner_id, title, language, theme, slide_count, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			language = excluded.language,
			theme = excluded.theme,
			slide_count = excluded.slide_count,
			content = excluded.content,
			updated_at = excluded.updated_at
		WHERE presentations.owner_id = excluded.owner_id
	`, p.ID, p.OwnerID, p.Title, p.Language, p.ThemeName, len(p.Slides), string(content),
		createdAt.UTC(), updatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving presentation: %w", err)
	}

	// The conflict clause skips rows owned by someone else.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrForbidden
	}
	return nil
}

// Get retrieves a presentation owned by ownerID.
func (s *presentationStore) Get(ctx context.Context, ownerID, id string) (*domain.Presentation, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, language, theme, content, created_at, updated_at
		FROM presentations WHERE id = ?
	`, id)

	var p domain.Presentation
	var content string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Language, &p.ThemeName, &content,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning presentation: %w", err)
	}
	if p.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	slides, err := domain.UnmarshalSlides([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("unmarshalling slides: %w", err)
	}
	p.Slides = slides
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}

// List returns the owner's presentations, most recently updated first.
func (s *presentationStore) List(ctx context.Context, ownerID string) ([]domain.PresentationSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, title, theme, slide_count, created_at, updated_at
		FROM presentations WHERE owner_id = ?
		ORDER BY updated_at DESC, id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying presentations: %w", err)
	}
	defer rows.Close()

	result := make([]domain.PresentationSummary, 0)
	for rows.Next() {
		var summary domain.PresentationSummary
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&summary.ID, &summary.OwnerID, &summary.Title, &summary.ThemeName,
			&summary.SlideCount, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning presentation: %w", err)
		}
		if createdAt.Valid {
			summary.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			summary.UpdatedAt = updatedAt.Time
		}
		result = append(result, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating presentations: %w", err)
	}
	return result, nil
}

// Delete removes a presentation owned by ownerID.
func (s *presentationStore) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM presentations WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting presentation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	var owner string
	err = s.store.db.QueryRowContext(ctx, "SELECT owner_id FROM presentations WHERE id = ?", id).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case err != nil:
		return fmt.Errorf("checking presentation owner: %w", err)
	default:
		return domain.ErrForbidden
	}
}
