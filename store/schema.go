package store

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/dzhatdoev/go-task-catalog/catalog"
)

// CreateSchema creates the catalog tables from the bun models. Real
// deployments run migrations outside this module; tests and examples use
// this to bootstrap an empty database.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []any{
		(*catalog.User)(nil),
		(*catalog.Category)(nil),
		(*catalog.Priority)(nil),
		(*catalog.Task)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return wrapError(err, "create schema")
		}
	}
	return nil
}
