// Package repo holds the embeddable base shared by the GORM-backed
// repositories.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the database handle for a domain repository. Embed it
// and reach the connection through DB so statements inherit the
// request context.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB binds the connection to ctx. A nil context returns the raw
// handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
