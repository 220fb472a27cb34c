package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// stateKey is the fixed key the serialized state lives under.
const stateKey = "app_state"

// SQLite keeps the state document in a key-value table and retains a bounded
// history of saved states in state_snapshots.
type SQLite struct {
	db   *sql.DB
	keep int
	log  *logger.Logger
}

// Open opens (or creates) the database at path and applies migrations.
// keep bounds the snapshot history; zero disables snapshots entirely.
func Open(path string, keep int) (*SQLite, error) {
	log := logger.Default().WithPrefix("storage")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening database: %s", path)

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1) // SQLite best practice for single writer

	s := &SQLite{db: sqlDB, keep: keep, log: log}

	log.Debug("applying migrations")
	if err := s.applyMigrations(context.Background()); err != nil {
		log.Error("failed to apply migrations: %v", err)
		return nil, err
	}

	log.Info("database ready")
	return s, nil
}

func (s *SQLite) applyMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		version := entry.Name()
		applied, err := s.isMigrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			s.log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile("migrations/" + version)
		if err != nil {
			return err
		}
		s.log.Info("applying migration: %s", version)
		if _, err := s.db.ExecContext(ctx, string(sqlBytes)); err != nil {
			s.log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return err
		}
		s.log.Info("migration %s applied successfully", version)
	}
	return nil
}

func (s *SQLite) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_migrations WHERE version = ?`, version).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Load reads the persisted state. Returns (nil, nil) on first run.
func (s *SQLite) Load(ctx context.Context) (*models.State, error) {
	log := logger.FromContext(ctx).WithPrefix("storage")

	query, args, err := sqlBuilder.
		Select("data").
		From("app_state").
		Where(squirrel.Eq{"key": stateKey}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var data []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no persisted state, starting fresh")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load state: %v", err)
		return nil, err
	}

	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		log.Error("persisted state is corrupt: %v", err)
		return nil, fmt.Errorf("decode persisted state: %w", err)
	}
	log.Debug("state loaded: %d bytes", len(data))
	return &state, nil
}

// Save serializes the full state and writes it under the fixed key. Every
// save also appends a snapshot and prunes history beyond the keep limit.
func (s *SQLite) Save(ctx context.Context, state *models.State) error {
	log := logger.FromContext(ctx).WithPrefix("storage")

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO app_state (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
`, stateKey, data); err != nil {
		log.Error("failed to save state: %v", err)
		return err
	}

	if s.keep > 0 {
		insert, args, err := sqlBuilder.
			Insert("state_snapshots").
			Columns("data").
			Values(data).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			log.Error("failed to record snapshot: %v", err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `
DELETE FROM state_snapshots
WHERE id NOT IN (SELECT id FROM state_snapshots ORDER BY id DESC LIMIT ?)
`, s.keep); err != nil {
			log.Error("failed to prune snapshots: %v", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit save: %v", err)
		return err
	}
	log.Debug("state saved: %d bytes", len(data))
	return nil
}

// Snapshots lists recent snapshot metadata, newest first.
func (s *SQLite) Snapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("storage")

	if limit <= 0 {
		limit = 20
	}
	query, args, err := sqlBuilder.
		Select("id", "length(data)", "created_at").
		From("state_snapshots").
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list snapshots: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.SizeBytes, &snap.CreatedAt); err != nil {
			log.Error("failed to scan snapshot row: %v", err)
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
