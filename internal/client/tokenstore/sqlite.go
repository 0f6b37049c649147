package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/scmclient/internal/client/migrations"
	"github.com/dmitrijs2005/scmclient/internal/common"
	"github.com/dmitrijs2005/scmclient/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the session in a key/value table of a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dsn, applies the embedded
// migrations and moves a credential stored under the legacy key to the
// canonical one.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	// one connection: keeps ":memory:" databases shared and avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session store: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrateLegacyKey(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	v, err := get(ctx, s.db, common.TokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return del(ctx, s.db, common.TokenKey)
	}
	return set(ctx, s.db, common.TokenKey, []byte(token))
}

func (s *SQLiteStore) Profile(ctx context.Context) ([]byte, error) {
	return get(ctx, s.db, common.ProfileKey)
}

func (s *SQLiteStore) Save(ctx context.Context, token string, profile []byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		if profile == nil {
			return del(ctx, tx, common.ProfileKey)
		}
		return set(ctx, tx, common.ProfileKey, profile)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range []string{common.TokenKey, common.ProfileKey, common.LegacyTokenKey} {
			if err := del(ctx, tx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) migrateLegacyKey(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		legacy, err := get(ctx, tx, common.LegacyTokenKey)
		if err != nil || legacy == nil {
			return err
		}
		current, err := get(ctx, tx, common.TokenKey)
		if err != nil {
			return err
		}
		if current == nil {
			if err := set(ctx, tx, common.TokenKey, legacy); err != nil {
				return err
			}
		}
		return del(ctx, tx, common.LegacyTokenKey)
	})
}

func get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get storage[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set storage[%s]: %w", key, err)
	}
	return nil
}

func del(ctx context.Context, db dbx.DBTX, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete storage[%s]: %w", key, err)
	}
	return nil
}
