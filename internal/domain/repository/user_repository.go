package repository

import (
	"context"

	"user-service-backend/internal/domain/entity"
)

// UserRepository defines persistence behavior for the User entity. Backends
// are interchangeable: the service layer observes identical behavior for the
// same operation sequence regardless of implementation.
//
// Lookup misses surface as *entity.NotFoundError. No ordering guarantee is
// made across concurrent callers; each individual operation is atomic at the
// backend's own layer only.
type UserRepository interface {
	// Save inserts or overwrites by id and returns the stored entity.
	Save(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetAll returns all entities in unspecified order.
	GetAll(ctx context.Context) ([]*entity.User, error)
	// Update overwrites an existing entity and fails with not-found when the
	// id is absent.
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	// Delete reports true when an entity was removed, false when absent.
	Delete(ctx context.Context, id int64) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
