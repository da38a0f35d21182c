package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"user-service-backend/internal/domain/entity"
	"user-service-backend/internal/domain/repository"
)

// UserService implements UserUsecase with repository dependency. The storage
// handle is passed in at construction; there is no ambient state.
type UserService struct {
	repo repository.UserRepository
}

var _ UserUsecase = (*UserService)(nil)

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create enforces username uniqueness, assigns the next id as count+1 and
// persists the validated entity.
//
// The existence check, count read and save are three separate repository
// calls, so concurrent creates can race; ids are also recomputed from the
// live count, which can collide after deletions. Both behaviors are kept on
// purpose, see DESIGN.md.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &entity.AlreadyExistsError{Username: username}
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewUser(count+1, input.Username, input.Email, input.FullName, time.Time{})
	if err != nil {
		return nil, err
	}

	return s.repo.Save(ctx, user)
}

// GetByID fails with not-found when the id is absent.
func (s *UserService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername returns (nil, nil) for a missing username instead of an
// error.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		var notFound *entity.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]*entity.User, error) {
	return s.repo.GetAll(ctx)
}

// Update fetches the user, applies the profile change through the entity and
// persists the result. Not-found and validation failures propagate unchanged.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*entity.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(input.FullName, input.Email); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, user)
}

// Delete checks existence first so callers get a not-found error rather than
// a silent false for an absent id. The two calls are not atomic with respect
// to concurrent deletes.
func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, id)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// SearchByEmailDomain filters users whose email ends with "@"+domain. Linear
// scan, no index.
func (s *UserService) SearchByEmailDomain(ctx context.Context, domain string) ([]*entity.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	suffix := "@" + strings.ToLower(strings.TrimSpace(domain))
	matched := make([]*entity.User, 0)
	for _, user := range users {
		if strings.HasSuffix(user.Email, suffix) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

// ListCreatedAfter returns users created strictly after the threshold.
func (s *UserService) ListCreatedAfter(ctx context.Context, threshold time.Time) ([]*entity.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*entity.User, 0)
	for _, user := range users {
		if user.CreatedAt.After(threshold) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}
