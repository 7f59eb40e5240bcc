package store_test

import (
	"context"
	"strings"
	"testing"

	platformerrors "github.com/jmgilman/go/errors"

	"github.com/dzhatdoev/go-task-catalog/pkg/testsupport"
	"github.com/dzhatdoev/go-task-catalog/store"
)

func TestUserStore_Get(t *testing.T) {
	db := testsupport.NewDB(t)
	seeded := testsupport.SeedUser(t, db, "alice@example.com")

	got, err := store.NewUserStore(db).Get(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("unexpected snapshot: %+v", got)
	}
}

func TestUserStore_GetByEmail(t *testing.T) {
	db := testsupport.NewDB(t)
	seeded := testsupport.SeedUser(t, db, "alice@example.com")
	users := store.NewUserStore(db)
	ctx := context.Background()

	got, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("expected user %d, got %d", seeded.ID, got.ID)
	}

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	if platformerrors.GetCode(err) != platformerrors.CodeNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "nobody@example.com") {
		t.Errorf("expected the email in the message, got %q", err.Error())
	}
}

func TestUserStore_Get_NotFound(t *testing.T) {
	db := testsupport.NewDB(t)

	_, err := store.NewUserStore(db).Get(context.Background(), 404)
	if platformerrors.GetCode(err) != platformerrors.CodeNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestTaskStore_SetCompleted(t *testing.T) {
	db := testsupport.NewDB(t)
	user := testsupport.SeedUser(t, db, "alice@example.com")
	category := testsupport.SeedCategory(t, db, user.ID, "Work")
	catID := category.ID
	seeded := testsupport.SeedTask(t, db, user.ID, &catID, "Report", false)
	tasks := store.NewTaskStore(db)
	ctx := context.Background()

	got, err := tasks.SetCompleted(ctx, seeded.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Completed {
		t.Error("expected the task to be completed")
	}
	if got.CategoryID == nil || *got.CategoryID != category.ID {
		t.Errorf("expected the category reference in the snapshot, got %v", got.CategoryID)
	}

	_, err = tasks.SetCompleted(ctx, 404, true)
	if platformerrors.GetCode(err) != platformerrors.CodeNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
