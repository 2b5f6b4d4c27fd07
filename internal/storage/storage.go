package storage

import (
	"context"
	"errors"

	"github.com/mlindqvist/minauth/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the persistence operations needed by handlers. User
// records are created at registration and read back by exact username
// match at login; nothing in this service updates or deletes them.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}
