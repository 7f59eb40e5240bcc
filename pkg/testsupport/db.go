// Package testsupport provides database and seeding helpers shared by the
// catalog's test packages.
package testsupport

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/dzhatdoev/go-task-catalog/catalog"
	"github.com/dzhatdoev/go-task-catalog/store"
)

// NewDB opens an in-memory SQLite database with the catalog schema applied.
// The handle is closed automatically when the test finishes.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// An in-memory SQLite database exists per connection; a second pooled
	// connection would see an empty schema.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	if err := store.CreateSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

// SeedUser inserts a user and returns it with its generated id.
func SeedUser(t *testing.T, db bun.IDB, email string) *catalog.User {
	t.Helper()

	user := &catalog.User{
		Email:    email,
		Username: "test-user",
		Password: "secret",
	}
	if _, err := db.NewInsert().Model(user).Exec(context.Background()); err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}

	return user
}

// SeedCategory inserts a category owned by userID and returns it with its
// generated id. Counters start at zero.
func SeedCategory(t *testing.T, db bun.IDB, userID int64, title string) *catalog.Category {
	t.Helper()

	category := &catalog.Category{
		Title:  title,
		UserID: userID,
	}
	if _, err := db.NewInsert().Model(category).Exec(context.Background()); err != nil {
		t.Fatalf("failed to seed category %s: %v", title, err)
	}

	return category
}

// SeedPriority inserts a priority owned by userID and returns it with its
// generated id.
func SeedPriority(t *testing.T, db bun.IDB, userID int64, title, color string) *catalog.Priority {
	t.Helper()

	priority := &catalog.Priority{
		Title:  title,
		Color:  color,
		UserID: userID,
	}
	if _, err := db.NewInsert().Model(priority).Exec(context.Background()); err != nil {
		t.Fatalf("failed to seed priority %s: %v", title, err)
	}

	return priority
}

// SeedTask inserts a task in categoryID and returns it with its generated id.
func SeedTask(t *testing.T, db bun.IDB, userID int64, categoryID *int64, title string, completed bool) *catalog.Task {
	t.Helper()

	task := &catalog.Task{
		Title:      title,
		Completed:  completed,
		CategoryID: categoryID,
		UserID:     userID,
	}
	if _, err := db.NewInsert().Model(task).Exec(context.Background()); err != nil {
		t.Fatalf("failed to seed task %s: %v", title, err)
	}

	return task
}
