package catalog

import "github.com/uptrace/bun"

// Task is the row the category counters are derived from. Task lifecycle
// belongs to the task-tracking service; this module only reads completion
// state during counter recomputation and flips it in tests and examples.
type Task struct {
	bun.BaseModel `bun:"table:task" json:"-"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	Title      string `bun:"title,notnull" json:"title"`
	Completed  bool   `bun:"completed,notnull,default:false" json:"completed"`
	CategoryID *int64 `bun:"category_id" json:"categoryId,omitempty"`
	UserID     int64  `bun:"user_id,notnull" json:"userId"`
}
