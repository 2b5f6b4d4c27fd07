package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mlindqvist/minauth/internal/logging"
	"github.com/mlindqvist/minauth/internal/models"
	"github.com/mlindqvist/minauth/internal/storage"
	"github.com/mlindqvist/minauth/migrations"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

const (
	createUser = `INSERT INTO users (username, password_hash, mail, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, username, password_hash, mail, created_at`

	findUserByUsername = `SELECT id, username, password_hash, mail, created_at
FROM users
WHERE username = $1`
)

// Store provides Postgres-backed persistence for users. Conflicting
// concurrent registrations are serialized by the username uniqueness
// constraint, not by application logic.
type Store struct {
	db  *sql.DB
	log *logging.Logger
}

// NewUserStore opens the database through the pgx stdlib driver, verifies
// connectivity, and applies pending migrations.
func NewUserStore(ctx context.Context, dsn string, log *logging.Logger) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrations.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Msg("connected to database")
	return &Store{db: db, log: log}, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user row and returns the canonical database
// representation with server-assigned fields.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	row := s.db.QueryRowContext(ctx, createUser, user.Username, user.PasswordHash, user.Mail, user.CreatedAt)

	var created models.User
	if err := row.Scan(&created.ID, &created.Username, &created.PasswordHash, &created.Mail, &created.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return created, nil
}

// FindByUsername fetches a user by exact username match.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, findUserByUsername, username)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Mail, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user: %w", err)
	}

	return user, nil
}
