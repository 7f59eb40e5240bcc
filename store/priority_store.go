package store

import (
	"context"
	"strings"

	"github.com/uptrace/bun"

	"github.com/dzhatdoev/go-task-catalog/catalog"
)

// PriorityStore persists priorities. No derived columns, so no recomputation
// hook: plain owner-scoped CRUD.
type PriorityStore struct {
	db bun.IDB
}

func NewPriorityStore(db bun.IDB) *PriorityStore {
	return &PriorityStore{db: db}
}

// Create inserts the priority and returns it with the store-assigned id.
func (s *PriorityStore) Create(ctx context.Context, p catalog.Priority) (catalog.Priority, error) {
	p.ID = 0
	if _, err := s.db.NewInsert().Model(&p).Exec(ctx); err != nil {
		return catalog.Priority{}, wrapError(err, "create priority")
	}
	return p, nil
}

// Get returns the priority snapshot, or NotFound.
func (s *PriorityStore) Get(ctx context.Context, id int64) (catalog.Priority, error) {
	var p catalog.Priority
	err := s.db.NewSelect().Model(&p).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return catalog.Priority{}, notFound("priority", id)
		}
		return catalog.Priority{}, wrapError(err, "get priority")
	}
	return p, nil
}

// ListByUser returns every priority owned by userID, ordered by title.
func (s *PriorityStore) ListByUser(ctx context.Context, userID int64) ([]catalog.Priority, error) {
	var list []catalog.Priority
	err := s.db.NewSelect().Model(&list).
		Where("user_id = ?", userID).
		Order("title ASC").
		Scan(ctx)
	if err != nil {
		return nil, wrapError(err, "list priorities")
	}
	return list, nil
}

// Update persists title and color, the only mutable fields.
func (s *PriorityStore) Update(ctx context.Context, p catalog.Priority) error {
	res, err := s.db.NewUpdate().Model(&p).
		Column("title", "color").
		WherePK().
		Exec(ctx)
	if err != nil {
		return wrapError(err, "update priority")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("priority", p.ID)
	}
	return nil
}

// Delete removes the priority, or returns NotFound.
func (s *PriorityStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*catalog.Priority)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return wrapError(err, "delete priority")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("priority", id)
	}
	return nil
}

// SearchByTitle returns the owner's priorities whose title contains fragment,
// case-insensitively. A blank fragment returns all owner rows.
func (s *PriorityStore) SearchByTitle(ctx context.Context, userID int64, fragment string) ([]catalog.Priority, error) {
	var list []catalog.Priority
	q := s.db.NewSelect().Model(&list).Where("user_id = ?", userID)
	if frag := strings.TrimSpace(fragment); frag != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(frag)+"%")
	}
	if err := q.Order("title ASC").Scan(ctx); err != nil {
		return nil, wrapError(err, "search priorities")
	}
	return list, nil
}
