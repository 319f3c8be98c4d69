// Package audit writes the trail of back-office mutations. Every entry
// lands in the audit_logs table; when a Pub/Sub topic is configured the
// entry is also published for downstream consumers (SIEM export,
// notifications). Publishing is best effort: a broker outage must never
// fail the mutation being recorded.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
	"github.com/agence-judiciaire/aje-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const publishTimeout = 5 * time.Second

// Publisher matches the Pub/Sub v2 publisher surface the service needs.
type Publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) *gcppubsub.PublishResult
}

// Repository persists audit entries.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an audit repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an audit row.
func (r *Repository) Create(ctx context.Context, row *models.AuditLog) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// ListQuery filters the audit trail listing.
type ListQuery struct {
	Table      string
	Action     enums.AuditAction
	Pagination pagination.Params
}

// ListResult is one page of the audit trail.
type ListResult struct {
	Entries    []models.AuditLog `json:"entries"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// List pages through the trail, newest first.
func (r *Repository) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	qb := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if table := strings.TrimSpace(query.Table); table != "" {
		qb = qb.Where("table_name = ?", table)
	}
	if query.Action != "" {
		qb = qb.Where("action = ?", query.Action)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.AuditLog
	if err := qb.Order("created_at DESC").Order("id DESC").
		Limit(pageSize + 1).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &ListResult{Entries: rows, NextCursor: nextCursor}, nil
}

// Service records and serves the audit trail.
type Service struct {
	repo      *Repository
	publisher Publisher
	logg      *logger.Logger
}

// NewService constructs the audit service. The publisher may be nil when
// Pub/Sub is not configured.
func NewService(repo *Repository, publisher Publisher, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &Service{repo: repo, publisher: publisher, logg: logg}, nil
}

// Record writes one audit entry. Failures are logged, never returned:
// the mutation the entry describes has already happened.
func (s *Service) Record(ctx context.Context, action enums.AuditAction, table string, recordID *uuid.UUID, actorID *uuid.UUID, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	row := &models.AuditLog{
		Action:   action,
		Table:    table,
		RecordID: recordID,
		ActorID:  actorID,
		Payload:  payload,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "audit: persist entry failed", err)
		}
		return
	}

	s.publish(ctx, row)
}

func (s *Service) publish(ctx context.Context, row *models.AuditLog) {
	if s.publisher == nil {
		return
	}

	data, err := json.Marshal(row)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "audit: encode entry failed", err)
		}
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	result := s.publisher.Publish(publishCtx, &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"action": row.Action.String(),
			"table":  row.Table,
		},
	})
	if result == nil {
		return
	}
	if _, err := result.Get(publishCtx); err != nil && s.logg != nil {
		s.logg.Error(ctx, "audit: publish entry failed", err)
	}
}

// List pages through the audit trail for the back office.
func (s *Service) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	if query.Action != "" && !query.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid action filter")
	}
	result, err := s.repo.List(ctx, query)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries")
	}
	return result, nil
}
