package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS profiles (
		email TEXT PRIMARY KEY,
		name TEXT,
		photo TEXT,
		last_login DATETIME
	);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// --- Key-value store ---

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ports.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key)
	return err
}

// --- Profiles ---

func (r *SQLiteRepository) SaveProfile(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (email, name, photo, last_login) VALUES (?, ?, ?, ?)
			  ON CONFLICT(email) DO UPDATE SET name = excluded.name, photo = excluded.photo, last_login = excluded.last_login`
	_, err := r.db.ExecContext(ctx, query, p.Email, p.Name, p.Photo, p.LastLogin.UTC())
	return err
}

func (r *SQLiteRepository) GetProfile(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT email, name, photo, last_login FROM profiles WHERE email = ?`

	var p domain.Profile
	var name, photo sql.NullString
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, query, email).Scan(&p.Email, &name, &photo, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Name = name.String
	p.Photo = photo.String
	if lastLogin.Valid {
		p.LastLogin = lastLogin.Time
	}
	return &p, nil
}

// Ensure interface compliance
var (
	_ ports.KeyValueStore = (*SQLiteRepository)(nil)
	_ ports.ProfileStore  = (*SQLiteRepository)(nil)
)
