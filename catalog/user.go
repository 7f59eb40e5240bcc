package catalog

import "github.com/uptrace/bun"

// User owns categories and priorities by back-reference. The relation is weak:
// user lifecycle is managed elsewhere and deleting a user does not cascade
// through this module.
type User struct {
	bun.BaseModel `bun:"table:user_data" json:"-"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Email    string `bun:"email,notnull" json:"email"`
	Username string `bun:"username,notnull" json:"username"`
	// Password is write-only in outward representations.
	Password string `bun:"userpassword" json:"-"`
}
