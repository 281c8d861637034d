package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/gwork-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// Store is a SQLite-backed token cache.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.gwork/data/credentials.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gwork", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "credentials.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// CredentialsStore returns a CredentialsStore interface backed by this store.
func (s *Store) CredentialsStore() driven.CredentialsStore {
	return &credentialsStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Credentials Store ====================

// credentialsStore implements driven.CredentialsStore.
type credentialsStore struct {
	store *Store
}

var _ driven.CredentialsStore = (*credentialsStore)(nil)

// Save stores or updates credentials.
func (s *credentialsStore) Save(ctx context.Context, creds domain.Credentials) error {
	if creds.ID == "" {
		return domain.ErrInvalidInput
	}

	oauthJSON, err := json.Marshal(creds.OAuth)
	if err != nil {
		return fmt.Errorf("marshalling oauth credentials: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO credentials
			(id, account_identifier, oauth, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_identifier = excluded.account_identifier,
			oauth = excluded.oauth,
			updated_at = excluded.updated_at
	`, creds.ID, creds.AccountIdentifier,
		string(oauthJSON), creds.CreatedAt, creds.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// Get retrieves credentials by ID.
func (s *credentialsStore) Get(ctx context.Context, id string) (*domain.Credentials, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, account_identifier, oauth, created_at, updated_at
		FROM credentials WHERE id = ?
	`, id)

	return scanCredentials(row)
}

// GetByAccount retrieves credentials for a specific account identifier.
func (s *credentialsStore) GetByAccount(ctx context.Context, account string) (*domain.Credentials, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, account_identifier, oauth, created_at, updated_at
		FROM credentials WHERE account_identifier = ?
	`, account)

	creds, err := scanCredentials(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil // No credentials for this account is valid
	}
	return creds, err
}

// Delete removes credentials by ID.
func (s *credentialsStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM credentials WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}

// scanCredentials scans a single credentials row.
func scanCredentials(row *sql.Row) (*domain.Credentials, error) {
	var creds domain.Credentials
	var oauthJSON sql.NullString

	if err := row.Scan(&creds.ID, &creds.AccountIdentifier,
		&oauthJSON, &creds.CreatedAt, &creds.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning credentials: %w", err)
	}

	if oauthJSON.Valid && oauthJSON.String != jsonNull {
		var oauth domain.OAuthCredentials
		if err := json.Unmarshal([]byte(oauthJSON.String), &oauth); err != nil {
			return nil, fmt.Errorf("unmarshalling oauth credentials: %w", err)
		}
		creds.OAuth = &oauth
	}

	return &creds, nil
}
