// Package content implements the shared management layer for the
// publishable resources of the site (actualites, documents, offres,
// jurisprudences, ...). Every resource shares the same lifecycle:
// draft/published flag, manual ordering, creator stamping and audit
// trail. The per-resource differences (table, searchable columns,
// default visibility) are captured in a Definition.
package content

import (
	"github.com/google/uuid"
)

// Row is implemented by every content model through models.ContentBase.
type Row interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
	IsPublished() bool
	SetPublished(published bool)
	GetOrdre() int
	SetOrdre(ordre int)
	StampCreator(actorID *uuid.UUID)
}

// rowPtr ties the pointer type PT to its value type M so repositories
// can allocate rows without a factory.
type rowPtr[M any] interface {
	Row
	*M
}

// Definition describes one managed resource.
type Definition struct {
	// Resource is the table name, also used in audit entries and errors.
	Resource string
	// SearchColumns are matched case-insensitively by the q filter.
	SearchColumns []string
	// CategoryColumn enables the categorie filter when non-empty.
	CategoryColumn string
	// DefaultPublished is the visibility applied when a create payload
	// does not set publie explicitly.
	DefaultPublished bool
}

// Scope selects which rows a read operation may see.
type Scope int

const (
	// ScopeAdmin sees every row, drafts included.
	ScopeAdmin Scope = iota
	// ScopePublic sees published rows only.
	ScopePublic
)

// Direction moves a row one position within the ordering.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// IsValid reports whether the direction is one of the known values.
func (d Direction) IsValid() bool {
	return d == DirectionUp || d == DirectionDown
}

// ListInput carries the filters for a list call.
type ListInput struct {
	Scope     Scope
	Query     string
	Categorie string
	Limit     int
	Offset    int
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
