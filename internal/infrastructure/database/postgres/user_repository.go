package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"user-service-backend/internal/domain/entity"
	"user-service-backend/internal/domain/repository"
)

// UserRepository is a PostgreSQL implementation of UserRepository backed by
// database/sql with the pgx stdlib driver.
type UserRepository struct {
	db *sql.DB
}

var _ repository.UserRepository = (*UserRepository)(nil)

const (
	saveUserQuery = `
		INSERT INTO users (user_id, username, email, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`
	getUserByIDQuery = `
		SELECT user_id, username, email, full_name, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	getUserByUsernameQuery = `
		SELECT user_id, username, email, full_name, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	listUsersQuery = `
		SELECT user_id, username, email, full_name, created_at, updated_at
		FROM users
		ORDER BY user_id
	`
	updateUserQuery = `
		UPDATE users
		SET username = $2,
			email = $3,
			full_name = $4,
			updated_at = $5
		WHERE user_id = $1
	`
	deleteUserQuery       = `DELETE FROM users WHERE user_id = $1`
	existsByUsernameQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	countUsersQuery       = `SELECT COUNT(*) FROM users`
	createUsersTableQuery = `
		CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			full_name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`
)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureSchema creates the users table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createUsersTableQuery); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	_, err := r.db.ExecContext(ctx, saveUserQuery,
		user.ID, user.Username, user.Email, user.FullName, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, getUserByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &entity.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, getUserByUsernameQuery, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &entity.NotFoundError{Username: username}
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	result, err := r.db.ExecContext(ctx, updateUserQuery,
		user.ID, user.Username, user.Email, user.FullName, user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return nil, &entity.NotFoundError{ID: user.ID}
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return affected > 0, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, existsByUsernameQuery, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by username: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countUsersQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
