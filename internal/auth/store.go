// Package auth is the default collab.Authorizer: a bcrypt-backed user
// store plus an Authorize method checking the transport-authenticated
// username against it. Credential verification against raw HTTP
// Basic-Auth headers happens in internal/transport, which calls
// VerifyPassword to turn a username/password pair into the
// ClientEnvelope.AuthenticatedUser the dispatcher's Authorizer sees —
// grounded on the teacher's internal/store/password.go split between
// hashing (store) and challenge parsing (server).
package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// User is one local account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Store is the sqlite-backed user table.
type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin      INTEGER NOT NULL DEFAULT 0,
		created_at    DATETIME NOT NULL
	)`)
	return err
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// CreateUser hashes password and inserts a new account.
func (s *Store) CreateUser(ctx context.Context, username, password string, isAdmin bool) error {
	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	adminInt := 0
	if isAdmin {
		adminInt = 1
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?)`,
		username, hash, adminInt, time.Now().UTC())
	return err
}

func (s *Store) getUser(ctx context.Context, username string) (User, error) {
	var u User
	var isAdmin int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = ?`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &isAdmin, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	u.IsAdmin = isAdmin != 0
	return u, nil
}

// VerifyPassword checks username/password against the stored bcrypt
// hash; called by internal/transport while handling an HTTP Basic-Auth
// header, never by the dispatcher itself.
func (s *Store) VerifyPassword(ctx context.Context, username, password string) (User, bool) {
	u, err := s.getUser(ctx, username)
	if err != nil {
		return User{}, false
	}
	if err := checkPassword(u.PasswordHash, password); err != nil {
		return User{}, false
	}
	return u, true
}

// EnsureAdminUser creates the given admin account if the users table is
// empty, matching the teacher's EnsureAdminUser convenience so a fresh
// install always has one usable credential.
func (s *Store) EnsureAdminUser(ctx context.Context, username, password string) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin"
	}
	return s.CreateUser(ctx, username, password, true)
}

// HasUsers reports whether any account exists.
func (s *Store) HasUsers(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
