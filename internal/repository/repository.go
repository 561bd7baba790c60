package repository

import (
	"context"
	"database/sql"

	"monteuros/internal/models"
)

// LocalStore is durable key-value storage on the device running the service.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ActivityRepo is the append-only activity log.
type ActivityRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, q ActivityQuery) ([]models.ActivityEvent, error)
}

type Repository struct {
	Local    LocalStore
	Activity ActivityRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Local:    NewKVSQLite(db),
		Activity: NewActivitySQLite(db),
	}
}
