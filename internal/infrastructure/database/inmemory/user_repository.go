package inmemory

import (
	"context"
	"sync"

	"user-service-backend/internal/domain/entity"
	"user-service-backend/internal/domain/repository"
)

// UserRepository is an in-memory implementation of UserRepository. It keeps
// an id map and a username index in lockstep so both stay consistent across
// save, update and delete.
type UserRepository struct {
	mu       sync.RWMutex
	users    map[int64]*entity.User
	username map[string]int64
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:    make(map[int64]*entity.User),
		username: make(map[string]int64),
	}
}

func (r *UserRepository) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// overwriting an id with a different username must not leave a stale
	// index entry behind
	if prev, ok := r.users[user.ID]; ok && prev.Username != user.Username {
		delete(r.username, prev.Username)
	}

	userCopy := *user
	r.users[userCopy.ID] = &userCopy
	r.username[userCopy.Username] = userCopy.ID

	result := userCopy
	return &result, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, &entity.NotFoundError{ID: id}
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.username[username]
	if !ok {
		return nil, &entity.NotFoundError{Username: username}
	}

	user, ok := r.users[id]
	if !ok {
		return nil, &entity.NotFoundError{Username: username}
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		userCopy := *user
		result = append(result, &userCopy)
	}
	return result, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.users[user.ID]
	if !ok {
		return nil, &entity.NotFoundError{ID: user.ID}
	}

	// a username rename removes the old mapping before inserting the new one
	if prev.Username != user.Username {
		delete(r.username, prev.Username)
		r.username[user.Username] = user.ID
	}

	userCopy := *user
	r.users[userCopy.ID] = &userCopy

	result := userCopy
	return &result, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return false, nil
	}

	delete(r.users, id)
	delete(r.username, user.Username)
	return true, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.username[username]
	return ok, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.users)), nil
}
