package catalogservice_test

import (
	"context"
	"testing"

	platformerrors "github.com/jmgilman/go/errors"

	"github.com/dzhatdoev/go-task-catalog/catalog"
	"github.com/dzhatdoev/go-task-catalog/pkg/di"
	"github.com/dzhatdoev/go-task-catalog/pkg/testsupport"
	"github.com/dzhatdoev/go-task-catalog/store"
)

// TestCategoryLifecycle drives the full stack: real SQLite store, real
// in-process cache, services and counter syncer wired the way production
// composes them.
func TestCategoryLifecycle(t *testing.T) {
	db := testsupport.NewDB(t)
	container, err := di.NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	cat := di.NewCatalog(container, db)
	tasks := store.NewTaskStore(db)
	ctx := context.Background()

	user := testsupport.SeedUser(t, db, "alice@example.com")

	// Create a category through the service.
	created, err := cat.Categories.Add(ctx, catalog.Category{Title: "Work", UserID: user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CompletedCount != 0 || created.UncompletedCount != 0 {
		t.Fatalf("new categories start at zero, got %d/%d", created.CompletedCount, created.UncompletedCount)
	}

	// A pre-set id is rejected before the store.
	if _, err := cat.Categories.Add(ctx, catalog.Category{ID: 5, Title: "Nope", UserID: user.ID}); platformerrors.GetCode(err) != platformerrors.CodeInvalidInput {
		t.Fatalf("expected InvalidInput for pre-set id, got %v", err)
	}

	// A blank title is rejected on update.
	if err := cat.Categories.Update(ctx, catalog.Category{ID: created.ID, Title: "  ", UserID: user.ID}); platformerrors.GetCode(err) != platformerrors.CodeInvalidInput {
		t.Fatalf("expected InvalidInput for blank title, got %v", err)
	}

	// Cache the entity, then flip a task and sync.
	if _, err := cat.Categories.FindByID(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	task, err := tasks.Create(ctx, catalog.Task{Title: "Report", CategoryID: &created.ID, UserID: user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated, err := tasks.SetCompleted(ctx, task.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cat.Syncer.OnTaskStateChanged(ctx, *updated.CategoryID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The cached snapshot was invalidated: the next read sees the new counters.
	fresh, err := cat.Categories.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.CompletedCount != 1 || fresh.UncompletedCount != 0 {
		t.Fatalf("expected counters 1/0 after sync, got %d/%d", fresh.CompletedCount, fresh.UncompletedCount)
	}

	// Listing twice is idempotent and serves the second read from cache.
	first, err := cat.Categories.FindAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cat.Categories.FindAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || len(second) != 1 || first[0].CompletedCount != second[0].CompletedCount {
		t.Fatalf("expected stable listings, got %+v then %+v", first, second)
	}

	// Search reflects the synced counters too.
	matches, err := cat.Categories.FindByTitle(ctx, "wor", user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].CompletedCount != 1 {
		t.Fatalf("expected one match with counters 1/0, got %+v", matches)
	}

	// Delete and verify the entry is gone from store and cache.
	if err := cat.Categories.DeleteByID(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cat.Categories.FindByID(ctx, created.ID); platformerrors.GetCode(err) != platformerrors.CodeNotFound {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
	remaining, err := cat.Categories.FindAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected an empty listing after delete, got %+v", remaining)
	}
}

// TestCounterSync_RendersThroughAllProjections verifies that a task flip
// invalidates entity, list, and search entries for the owning category.
func TestCounterSync_RendersThroughAllProjections(t *testing.T) {
	db := testsupport.NewDB(t)
	container, err := di.NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	cat := di.NewCatalog(container, db)
	tasks := store.NewTaskStore(db)
	ctx := context.Background()

	user := testsupport.SeedUser(t, db, "alice@example.com")
	category := testsupport.SeedCategory(t, db, user.ID, "Work")
	catID := category.ID
	task := testsupport.SeedTask(t, db, user.ID, &catID, "Report", false)

	// Warm all three projections.
	if _, err := cat.Categories.FindByID(ctx, category.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cat.Categories.FindAll(ctx, user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cat.Categories.FindByTitle(ctx, "work", user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tasks.SetCompleted(ctx, task.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cat.Syncer.OnTaskStateChanged(ctx, category.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entity, err := cat.Categories.FindByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entity.CompletedCount != 1 {
		t.Errorf("entity projection stale: %+v", entity)
	}

	list, err := cat.Categories.FindAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].CompletedCount != 1 {
		t.Errorf("list projection stale: %+v", list)
	}

	matches, err := cat.Categories.FindByTitle(ctx, "work", user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].CompletedCount != 1 {
		t.Errorf("search projection stale: %+v", matches)
	}
}
