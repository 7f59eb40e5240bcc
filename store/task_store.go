package store

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/dzhatdoev/go-task-catalog/catalog"
)

// TaskStore models the external task mutations the counters react to. The
// real task API lives in the task-tracking service; tests and examples use
// this to produce the state RecomputeCounters counts.
type TaskStore struct {
	db bun.IDB
}

func NewTaskStore(db bun.IDB) *TaskStore {
	return &TaskStore{db: db}
}

// Create inserts the task and returns it with the store-assigned id.
func (s *TaskStore) Create(ctx context.Context, t catalog.Task) (catalog.Task, error) {
	t.ID = 0
	if _, err := s.db.NewInsert().Model(&t).Exec(ctx); err != nil {
		return catalog.Task{}, wrapError(err, "create task")
	}
	return t, nil
}

// SetCompleted flips the completion flag and returns the updated snapshot,
// so the caller knows which category needs a counter recomputation.
func (s *TaskStore) SetCompleted(ctx context.Context, id int64, completed bool) (catalog.Task, error) {
	res, err := s.db.NewUpdate().Model((*catalog.Task)(nil)).
		Set("completed = ?", completed).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return catalog.Task{}, wrapError(err, "set task completed")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.Task{}, notFound("task", id)
	}

	var t catalog.Task
	if err := s.db.NewSelect().Model(&t).Where("id = ?", id).Scan(ctx); err != nil {
		return catalog.Task{}, wrapError(err, "reload task")
	}
	return t, nil
}
