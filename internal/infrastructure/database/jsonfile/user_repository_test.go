package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"user-service-backend/internal/domain/entity"
)

func newRepo(t *testing.T) (*UserRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	repo, err := NewUserRepository(path)
	if err != nil {
		t.Fatalf("creating repository: %v", err)
	}
	return repo, path
}

func mustUser(t *testing.T, id int64, username, email, fullName string) *entity.User {
	t.Helper()
	user, err := entity.NewUser(id, username, email, fullName, time.Time{})
	if err != nil {
		t.Fatalf("building test user: %v", err)
	}
	return user
}

func TestNewUserRepository_CreatesEmptyFile(t *testing.T) {
	_, path := newRepo(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected storage file to exist: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty list, got %q", string(data))
	}
}

func TestPersistenceAcrossInstances(t *testing.T) {
	repo, path := newRepo(t)
	ctx := context.Background()

	original := mustUser(t, 1, "alice", "alice@x.com", "Alice A")
	if _, err := repo.Save(ctx, original); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// a fresh instance over the same file must see the same state
	reopened, err := NewUserRepository(path)
	if err != nil {
		t.Fatalf("reopening repository: %v", err)
	}

	got, err := reopened.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("get after reopen failed: %v", err)
	}
	if got.Username != "alice" || got.Email != "alice@x.com" {
		t.Fatalf("unexpected user %+v", got)
	}
	if !got.CreatedAt.Equal(original.CreatedAt) || !got.UpdatedAt.Equal(original.UpdatedAt) {
		t.Fatalf("timestamps not preserved: %+v vs %+v", got, original)
	}
}

func TestMalformedFileTreatedAsEmpty(t *testing.T) {
	repo, path := newRepo(t)
	ctx := context.Background()

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupting file: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil || count != 0 {
		t.Fatalf("expected empty collection, got %d (%v)", count, err)
	}

	// the next mutation starts from the empty list and rewrites the file
	if _, err := repo.Save(ctx, mustUser(t, 1, "alice", "alice@x.com", "Alice A")); err != nil {
		t.Fatalf("save over corrupt file failed: %v", err)
	}
	count, _ = repo.Count(ctx)
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	if _, err := repo.Save(ctx, mustUser(t, 1, "alice", "alice@x.com", "Alice A")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	updated := mustUser(t, 1, "alice", "alice@y.com", "Alice B")
	if _, err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, 1)
	if got.Email != "alice@y.com" || got.FullName != "Alice B" {
		t.Fatalf("update not persisted: %+v", got)
	}

	var notFound *entity.NotFoundError
	if _, err := repo.Update(ctx, mustUser(t, 9, "ghost", "g@x.com", "Gone G")); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	removed, err := repo.Delete(ctx, 1)
	if err != nil || !removed {
		t.Fatalf("expected delete true, got %v %v", removed, err)
	}
	removed, err = repo.Delete(ctx, 1)
	if err != nil || removed {
		t.Fatalf("expected delete false for absent id, got %v %v", removed, err)
	}
}

func TestExistsAndCount(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	if _, err := repo.Save(ctx, mustUser(t, 1, "alice", "alice@x.com", "Alice A")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := repo.Save(ctx, mustUser(t, 2, "bob", "bob@y.com", "Bob B")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if exists, _ := repo.ExistsByUsername(ctx, "bob"); !exists {
		t.Fatal("expected bob to exist")
	}
	if exists, _ := repo.ExistsByUsername(ctx, "carol"); exists {
		t.Fatal("carol must not exist")
	}
	if count, _ := repo.Count(ctx); count != 2 {
		t.Fatalf("expected 2 users, got %d", count)
	}
}
