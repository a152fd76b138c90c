package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/TouhidPavel/Project-CRUD/internal/projects/domain"
)

// Store provides persistence operations for projects.
// Lookups by an unknown or malformed id return domain.ErrNotFound; every other
// backend failure is wrapped with domain.ErrStorage.
type Store interface {
	Insert(ctx context.Context, in domain.CreateInput) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	UpdateByID(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error)
	DeleteByID(ctx context.Context, id string) (*domain.Project, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Clock returns the time used to stamp createdAt/updatedAt.
type Clock func() time.Time

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}
