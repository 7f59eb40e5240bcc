package store

import (
	"context"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/dzhatdoev/go-task-catalog/catalog"
)

// CategoryStore persists categories and owns their aggregate counters.
type CategoryStore struct {
	db bun.IDB
}

func NewCategoryStore(db bun.IDB) *CategoryStore {
	return &CategoryStore{db: db}
}

// Create inserts the category and returns it with the store-assigned id.
// Counters always start at zero regardless of what the snapshot carries.
func (s *CategoryStore) Create(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	c.ID = 0
	c.CompletedCount = 0
	c.UncompletedCount = 0
	if _, err := s.db.NewInsert().Model(&c).Exec(ctx); err != nil {
		return catalog.Category{}, wrapError(err, "create category")
	}
	return c, nil
}

// Get returns the category snapshot, or NotFound.
func (s *CategoryStore) Get(ctx context.Context, id int64) (catalog.Category, error) {
	var c catalog.Category
	err := s.db.NewSelect().Model(&c).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return catalog.Category{}, notFound("category", id)
		}
		return catalog.Category{}, wrapError(err, "get category")
	}
	return c, nil
}

// ListByUser returns every category owned by userID, ordered by title.
func (s *CategoryStore) ListByUser(ctx context.Context, userID int64) ([]catalog.Category, error) {
	var list []catalog.Category
	err := s.db.NewSelect().Model(&list).
		Where("user_id = ?", userID).
		Order("title ASC").
		Scan(ctx)
	if err != nil {
		return nil, wrapError(err, "list categories")
	}
	return list, nil
}

// Update persists the title. The column list is explicit: counter columns can
// never reach the database through this path, whatever the snapshot carries.
func (s *CategoryStore) Update(ctx context.Context, c catalog.Category) error {
	res, err := s.db.NewUpdate().Model(&c).
		Column("title").
		WherePK().
		Exec(ctx)
	if err != nil {
		return wrapError(err, "update category")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("category", c.ID)
	}
	return nil
}

// Delete removes the category, or returns NotFound.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*catalog.Category)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return wrapError(err, "delete category")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("category", id)
	}
	return nil
}

// SearchByTitle returns the owner's categories whose title contains fragment,
// case-insensitively. A blank fragment returns all owner rows.
func (s *CategoryStore) SearchByTitle(ctx context.Context, userID int64, fragment string) ([]catalog.Category, error) {
	var list []catalog.Category
	q := s.db.NewSelect().Model(&list).Where("user_id = ?", userID)
	if frag := strings.TrimSpace(fragment); frag != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(frag)+"%")
	}
	if err := q.Order("title ASC").Scan(ctx); err != nil {
		return nil, wrapError(err, "search categories")
	}
	return list, nil
}

// RecomputeCounters recounts the completed and uncompleted tasks referencing
// the category and persists both counters in a single transaction, returning
// the updated snapshot. This is the trigger-equivalent: the only writer of
// the counter columns.
//
// On Postgres the category row is locked FOR UPDATE so concurrent
// recomputations of the same category serialize instead of losing updates;
// sqlite serializes write transactions on its own.
func (s *CategoryStore) RecomputeCounters(ctx context.Context, id int64) (catalog.Category, error) {
	var out catalog.Category

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var c catalog.Category
		sel := tx.NewSelect().Model(&c).Where("id = ?", id)
		if tx.Dialect().Name() == dialect.PG {
			sel = sel.For("UPDATE")
		}
		if err := sel.Scan(ctx); err != nil {
			return err
		}

		completed, err := tx.NewSelect().Model((*catalog.Task)(nil)).
			Where("category_id = ?", id).
			Where("completed = ?", true).
			Count(ctx)
		if err != nil {
			return err
		}
		uncompleted, err := tx.NewSelect().Model((*catalog.Task)(nil)).
			Where("category_id = ?", id).
			Where("completed = ?", false).
			Count(ctx)
		if err != nil {
			return err
		}

		if _, err := tx.NewUpdate().Model((*catalog.Category)(nil)).
			Set("completed_count = ?", completed).
			Set("uncompleted_count = ?", uncompleted).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		c.CompletedCount = int64(completed)
		c.UncompletedCount = int64(uncompleted)
		out = c
		return nil
	})
	if err != nil {
		if isNoRows(err) {
			return catalog.Category{}, notFound("category", id)
		}
		return catalog.Category{}, wrapError(err, "recompute category counters")
	}
	return out, nil
}
