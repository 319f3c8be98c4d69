package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/agence-judiciaire/aje-backend/pkg/db"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recorder receives audit entries for every mutation. Recording is best
// effort and must never fail the operation it describes.
type Recorder interface {
	Record(ctx context.Context, action enums.AuditAction, table string, recordID *uuid.UUID, actorID *uuid.UUID, payload map[string]any)
}

// Service manages one content resource end to end.
type Service[M any, PT rowPtr[M]] struct {
	repo     *Repository[M, PT]
	dbClient *db.Client
	def      Definition
	audit    Recorder
}

// NewService constructs the service for one resource.
func NewService[M any, PT rowPtr[M]](repo *Repository[M, PT], dbClient *db.Client, audit Recorder) (*Service[M, PT], error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &Service[M, PT]{
		repo:     repo,
		dbClient: dbClient,
		def:      repo.Definition(),
		audit:    audit,
	}, nil
}

// Definition exposes the resource definition, mainly for controllers.
func (s *Service[M, PT]) Definition() Definition {
	return s.def
}

// List returns rows visible in the requested scope.
func (s *Service[M, PT]) List(ctx context.Context, input ListInput) ([]M, error) {
	rows, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list "+s.def.Resource)
	}
	return rows, nil
}

// Get loads one row. In the public scope a draft behaves like a missing row.
func (s *Service[M, PT]) Get(ctx context.Context, id uuid.UUID, scope Scope) (PT, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+s.def.Resource)
	}
	if scope == ScopePublic && !row.IsPublished() {
		return nil, s.notFound()
	}
	return row, nil
}

// Create inserts the row at the end of the ordering, stamping the actor.
// The publie flag must already be set by the caller; the resource default
// applies when the payload left it untouched.
func (s *Service[M, PT]) Create(ctx context.Context, actorID *uuid.UUID, row PT) (PT, error) {
	row.StampCreator(actorID)

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		next, err := txRepo.NextOrdre(ctx)
		if err != nil {
			return err
		}
		row.SetOrdre(next)
		return txRepo.Create(ctx, row)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create "+s.def.Resource)
	}

	s.record(ctx, enums.AuditActionCreate, row.GetID(), actorID, nil)
	return row, nil
}

// Update loads the row, applies the mutation and writes it back whole.
func (s *Service[M, PT]) Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, apply func(PT)) (PT, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+s.def.Resource)
	}

	apply(row)
	row.SetID(id)

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update "+s.def.Resource)
	}

	s.record(ctx, enums.AuditActionUpdate, id, actorID, nil)
	return row, nil
}

// Delete removes the row permanently.
func (s *Service[M, PT]) Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete "+s.def.Resource)
	}
	if !deleted {
		return s.notFound()
	}

	s.record(ctx, enums.AuditActionDelete, id, actorID, nil)
	return nil
}

// TogglePublished flips the visibility flag and returns the fresh row.
func (s *Service[M, PT]) TogglePublished(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) (PT, error) {
	toggled, err := s.repo.TogglePublished(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle "+s.def.Resource)
	}
	if !toggled {
		return nil, s.notFound()
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload "+s.def.Resource)
	}

	s.record(ctx, enums.AuditActionTogglePublish, id, actorID, map[string]any{
		"publie": row.IsPublished(),
	})
	return row, nil
}

// Reorder replaces the whole ordering. The id list must cover every row
// exactly once; positions are renumbered densely from 1 in one transaction.
func (s *Service[M, PT]) Reorder(ctx context.Context, actorID *uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "ids list cannot be empty")
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate id in ordering")
		}
		seen[id] = struct{}{}
	}

	current, err := s.repo.ListOrdering(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ordering for "+s.def.Resource)
	}

	existing := make(map[uuid.UUID]struct{}, len(current))
	for _, entry := range current {
		existing[entry.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			return s.notFound()
		}
	}
	if len(ids) != len(current) {
		return pkgerrors.New(pkgerrors.CodeValidation, "ordering must list every row exactly once")
	}

	if err := s.applyOrdering(ctx, ids); err != nil {
		return err
	}

	s.record(ctx, enums.AuditActionReorder, uuid.Nil, actorID, map[string]any{
		"count": len(ids),
	})
	return nil
}

// Move shifts one row a single position up or down. At the edge of the
// list the call is a no-op.
func (s *Service[M, PT]) Move(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, direction Direction) error {
	if !direction.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "direction must be up or down")
	}

	current, err := s.repo.ListOrdering(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ordering for "+s.def.Resource)
	}

	index := -1
	for i, entry := range current {
		if entry.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return s.notFound()
	}

	target := index - 1
	if direction == DirectionDown {
		target = index + 1
	}
	if target < 0 || target >= len(current) {
		return nil
	}

	ids := make([]uuid.UUID, len(current))
	for i, entry := range current {
		ids[i] = entry.ID
	}
	ids[index], ids[target] = ids[target], ids[index]

	if err := s.applyOrdering(ctx, ids); err != nil {
		return err
	}

	s.record(ctx, enums.AuditActionReorder, id, actorID, map[string]any{
		"direction": string(direction),
	})
	return nil
}

func (s *Service[M, PT]) applyOrdering(ctx context.Context, ids []uuid.UUID) error {
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for position, id := range ids {
			if err := txRepo.UpdateOrdre(ctx, id, position+1); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder "+s.def.Resource)
	}
	return nil
}

func (s *Service[M, PT]) notFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, s.def.Resource+" not found")
}

func (s *Service[M, PT]) record(ctx context.Context, action enums.AuditAction, recordID uuid.UUID, actorID *uuid.UUID, payload map[string]any) {
	if s.audit == nil {
		return
	}
	var recordPtr *uuid.UUID
	if recordID != uuid.Nil {
		recordPtr = &recordID
	}
	s.audit.Record(ctx, action, s.def.Resource, recordPtr, actorID, payload)
}
