package store

import (
	"context"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/uptrace/bun"

	"github.com/dzhatdoev/go-task-catalog/catalog"
)

// UserStore reads users. User lifecycle is managed by another service; the
// catalog only resolves owners.
type UserStore struct {
	db bun.IDB
}

func NewUserStore(db bun.IDB) *UserStore {
	return &UserStore{db: db}
}

// Get returns the user snapshot, or NotFound.
func (s *UserStore) Get(ctx context.Context, id int64) (catalog.User, error) {
	var u catalog.User
	err := s.db.NewSelect().Model(&u).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return catalog.User{}, notFound("user", id)
		}
		return catalog.User{}, wrapError(err, "get user")
	}
	return u, nil
}

// GetByEmail returns the user with the given email, or NotFound.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (catalog.User, error) {
	var u catalog.User
	err := s.db.NewSelect().Model(&u).Where("email = ?", email).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return catalog.User{}, platformerrors.Newf(platformerrors.CodeNotFound, "user email=%s not found", email)
		}
		return catalog.User{}, wrapError(err, "get user by email")
	}
	return u, nil
}
