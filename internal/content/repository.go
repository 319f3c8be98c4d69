package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists one content resource. M is the model value type,
// PT its pointer type carrying the Row methods.
type Repository[M any, PT rowPtr[M]] struct {
	db  *gorm.DB
	def Definition
}

// NewRepository builds a repository for the given resource definition.
func NewRepository[M any, PT rowPtr[M]](db *gorm.DB, def Definition) *Repository[M, PT] {
	return &Repository[M, PT]{db: db, def: def}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository[M, PT]) WithTx(tx *gorm.DB) *Repository[M, PT] {
	return &Repository[M, PT]{db: tx, def: r.def}
}

// Definition returns the resource definition the repository serves.
func (r *Repository[M, PT]) Definition() Definition {
	return r.def
}

// List returns rows matching the input, ordered by ordre then recency.
func (r *Repository[M, PT]) List(ctx context.Context, input ListInput) ([]M, error) {
	qb := r.db.WithContext(ctx).Model(new(M))

	if input.Scope == ScopePublic {
		qb = qb.Where("publie = ?", true)
	}

	if search := strings.TrimSpace(input.Query); search != "" && len(r.def.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, 0, len(r.def.SearchColumns))
		args := make([]any, 0, len(r.def.SearchColumns))
		for _, column := range r.def.SearchColumns {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", column))
			args = append(args, pattern)
		}
		qb = qb.Where(strings.Join(clauses, " OR "), args...)
	}

	if categorie := strings.TrimSpace(input.Categorie); categorie != "" && r.def.CategoryColumn != "" {
		qb = qb.Where(fmt.Sprintf("%s = ?", r.def.CategoryColumn), categorie)
	}

	qb = qb.Order("ordre ASC").Order("created_at DESC").
		Limit(normalizeLimit(input.Limit))
	if input.Offset > 0 {
		qb = qb.Offset(input.Offset)
	}

	var rows []M
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one row.
func (r *Repository[M, PT]) FindByID(ctx context.Context, id uuid.UUID) (PT, error) {
	var row M
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return PT(&row), nil
}

// Create inserts the row, assigning an ID when the caller left it zero.
// IDs are assigned client side so the insert works the same on every driver.
func (r *Repository[M, PT]) Create(ctx context.Context, row PT) error {
	if row.GetID() == uuid.Nil {
		row.SetID(uuid.New())
	}
	return r.db.WithContext(ctx).Create((*M)(row)).Error
}

// Save writes the full row back.
func (r *Repository[M, PT]) Save(ctx context.Context, row PT) error {
	return r.db.WithContext(ctx).Save((*M)(row)).Error
}

// Delete removes the row and reports whether it existed.
func (r *Repository[M, PT]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// TogglePublished flips the publie column in place without touching the
// rest of the row, so concurrent edits are not overwritten.
func (r *Repository[M, PT]) TogglePublished(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(new(M)).
		Where("id = ?", id).
		UpdateColumn("publie", gorm.Expr("NOT publie"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// NextOrdre returns the position for a newly appended row.
func (r *Repository[M, PT]) NextOrdre(ctx context.Context) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Model(new(M)).
		Select("COALESCE(MAX(ordre), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	if next < 1 {
		next = 1
	}
	return next, nil
}

// OrderEntry is one row of the current ordering.
type OrderEntry struct {
	ID    uuid.UUID
	Ordre int
}

// ListOrdering returns id and ordre for every row, in display order.
func (r *Repository[M, PT]) ListOrdering(ctx context.Context) ([]OrderEntry, error) {
	var entries []OrderEntry
	err := r.db.WithContext(ctx).Model(new(M)).
		Select("id", "ordre").
		Order("ordre ASC").Order("created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateOrdre sets the position of one row.
func (r *Repository[M, PT]) UpdateOrdre(ctx context.Context, id uuid.UUID, ordre int) error {
	return r.db.WithContext(ctx).Model(new(M)).
		Where("id = ?", id).
		UpdateColumn("ordre", ordre).Error
}
