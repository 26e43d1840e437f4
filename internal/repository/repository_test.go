package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/causeshare-api/internal/mocks"
	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/repository"
)

func TestMockUserRepository_ConditionalInsert(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	first := &models.User{ID: "user-1", Email: "a@b.com", Username: "a", Role: "user", CreatedAt: time.Now()}
	inserted, err := repo.Create(ctx, first)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !inserted {
		t.Fatal("First insert should succeed")
	}

	// Same email, different id: the insert must not happen
	second := &models.User{ID: "user-2", Email: "a@b.com", Username: "b", Role: "admin"}
	inserted, err = repo.Create(ctx, second)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if inserted {
		t.Error("Insert with a taken email should report false")
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}
}

func TestMockUserRepository_UpdateUniqueViolation(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	repo.Create(ctx, &models.User{ID: "user-1", Email: "a@b.com", Role: "user"})
	repo.Create(ctx, &models.User{ID: "user-2", Email: "c@d.com", Role: "user"})

	// Moving user-2 onto a taken email surfaces the unique index breach
	_, err := repo.Update(ctx, &models.User{ID: "user-2", Email: "a@b.com", Role: "user"})
	if err == nil || !repository.IsUniqueViolation(err) {
		t.Errorf("Expected unique violation, got %v", err)
	}
}

func TestMockUserRepository_DeleteMissing(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	repo.Create(ctx, &models.User{ID: "user-1", Email: "a@b.com", Role: "user"})

	deleted, err := repo.Delete(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Error("Deleting a missing id should report false")
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Errorf("Expected collection unchanged, got %d users", count)
	}
}

func TestMockPostRepository_ConditionalInsert(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	ctx := context.Background()

	inserted, err := repo.Create(ctx, &models.Post{ID: "post-1", Title: "Save the Bees", Username: "alice"})
	if err != nil || !inserted {
		t.Fatalf("First insert should succeed, got inserted=%v err=%v", inserted, err)
	}

	inserted, err = repo.Create(ctx, &models.Post{ID: "post-2", Title: "Save the Bees", Username: "bob"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if inserted {
		t.Error("Insert with a taken title should report false")
	}

	byTitle, err := repo.GetByTitle(ctx, "Save the Bees")
	if err != nil {
		t.Fatalf("GetByTitle failed: %v", err)
	}
	if byTitle == nil || byTitle.Username != "alice" {
		t.Errorf("Expected the original post to survive, got %+v", byTitle)
	}
}

func TestIsUniqueViolation_OtherErrors(t *testing.T) {
	if repository.IsUniqueViolation(context.DeadlineExceeded) {
		t.Error("Unrelated errors must not look like unique violations")
	}
	if repository.IsUniqueViolation(nil) {
		t.Error("nil is not a unique violation")
	}
}
