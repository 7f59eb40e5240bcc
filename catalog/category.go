package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// Category groups a user's tasks by area. The two counters mirror the
// completion state of the tasks referencing this category; they are computed
// by the store-side recomputation hook, never accepted from callers.
type Category struct {
	bun.BaseModel `bun:"table:category" json:"-"`

	ID               int64  `bun:"id,pk,autoincrement" json:"id"`
	Title            string `bun:"title,notnull" json:"title"`
	CompletedCount   int64  `bun:"completed_count,notnull,default:0" json:"completedCount"`
	UncompletedCount int64  `bun:"uncompleted_count,notnull,default:0" json:"uncompletedCount"`
	UserID           int64  `bun:"user_id,notnull" json:"userId"`
}

// Validate checks the fields a caller must supply when creating a category.
// ID rules differ between add and update, so they are enforced at the service
// boundary.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, NotBlank),
		validation.Field(&c.UserID, validation.Required),
	)
}

// ValidateUpdate checks only the mutable fields. The owner is immutable and
// re-read from the store on update, so an update payload may omit it.
func (c Category) ValidateUpdate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, NotBlank),
	)
}

// CategorySearchValues is the search request shape for categories. A blank
// Title returns every category owned by UserID.
type CategorySearchValues struct {
	Title  string `json:"title"`
	UserID int64  `json:"userId"`
}
