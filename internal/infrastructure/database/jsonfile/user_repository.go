package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"user-service-backend/internal/domain/entity"
	"user-service-backend/internal/domain/repository"
)

// UserRepository stores the whole collection in a single JSON file. Every
// operation reads the file, mutates the collection in memory and rewrites
// the file in full, so each call costs O(n).
//
// The mutex serializes access within one process only. Concurrent writers
// from separate processes can lose updates; callers needing that must add
// external locking.
type UserRepository struct {
	mu   sync.Mutex
	path string
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates the backing file holding an empty list when it
// does not exist yet.
func NewUserRepository(path string) (*UserRepository, error) {
	repo := &UserRepository{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := repo.writeRecords(nil); err != nil {
			return nil, fmt.Errorf("init storage file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat storage file: %w", err)
	}

	return repo, nil
}

func (r *UserRepository) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.loadUsers()

	replaced := false
	for i, existing := range users {
		if existing.ID == user.ID {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}

	if err := r.storeUsers(users); err != nil {
		return nil, err
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.loadUsers() {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, &entity.NotFoundError{ID: id}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.loadUsers() {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, &entity.NotFoundError{Username: username}
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadUsers(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.loadUsers()
	for i, existing := range users {
		if existing.ID == user.ID {
			users[i] = user
			if err := r.storeUsers(users); err != nil {
				return nil, err
			}
			userCopy := *user
			return &userCopy, nil
		}
	}

	return nil, &entity.NotFoundError{ID: user.ID}
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.loadUsers()
	for i, user := range users {
		if user.ID == id {
			users = append(users[:i], users[i+1:]...)
			if err := r.storeUsers(users); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.loadUsers() {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.loadUsers())), nil
}

// loadUsers reads the whole collection. A missing or malformed file is
// treated as an empty list, as are individual records that no longer pass
// entity validation.
func (r *UserRepository) loadUsers() []*entity.User {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}

	var records []entity.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}

	users := make([]*entity.User, 0, len(records))
	for _, rec := range records {
		user, err := entity.UserFromRecord(rec)
		if err != nil {
			continue
		}
		users = append(users, user)
	}
	return users
}

func (r *UserRepository) storeUsers(users []*entity.User) error {
	records := make([]entity.Record, 0, len(users))
	for _, user := range users {
		records = append(records, user.ToRecord())
	}
	return r.writeRecords(records)
}

func (r *UserRepository) writeRecords(records []entity.Record) error {
	if records == nil {
		records = []entity.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	return nil
}
