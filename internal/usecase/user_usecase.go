package usecase

import (
	"context"
	"time"

	"user-service-backend/internal/domain/entity"
)

// UserUsecase exposes application-level operations for User.
type UserUsecase interface {
	Create(ctx context.Context, input CreateUserInput) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsername returns (nil, nil) when no user carries the username.
	// This asymmetry with GetByID is deliberate.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ListAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	SearchByEmailDomain(ctx context.Context, domain string) ([]*entity.User, error)
	ListCreatedAfter(ctx context.Context, threshold time.Time) ([]*entity.User, error)
}

// CreateUserInput carries data required to create a user.
type CreateUserInput struct {
	Username string
	Email    string
	FullName string
}

// UpdateUserInput carries the optional profile fields; nil leaves a field
// unchanged. Username is immutable after creation and therefore absent.
type UpdateUserInput struct {
	FullName *string
	Email    *string
}
