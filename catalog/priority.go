package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// Priority is a user-defined task priority. No derived fields: simpler than
// Category, no counter synchronization obligations.
type Priority struct {
	bun.BaseModel `bun:"table:priority" json:"-"`

	ID     int64  `bun:"id,pk,autoincrement" json:"id"`
	Title  string `bun:"title,notnull" json:"title"`
	Color  string `bun:"color,notnull" json:"color"`
	UserID int64  `bun:"user_id,notnull" json:"userId"`
}

// Validate checks the fields a caller must supply when creating a priority.
func (p Priority) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, NotBlank),
		validation.Field(&p.Color, validation.Required, NotBlank),
		validation.Field(&p.UserID, validation.Required),
	)
}

// ValidateUpdate checks only the mutable fields. The owner is immutable and
// re-read from the store on update, so an update payload may omit it.
func (p Priority) ValidateUpdate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, NotBlank),
		validation.Field(&p.Color, validation.Required, NotBlank),
	)
}

// PrioritySearchValues is the search request shape for priorities.
type PrioritySearchValues struct {
	Title  string `json:"title"`
	UserID int64  `json:"userId"`
}
