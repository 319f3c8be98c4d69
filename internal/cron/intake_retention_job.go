package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

const defaultIntakeRetention = 365 * 24 * time.Hour

type intakePurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// IntakeRetentionJobParams configure the purge of old form submissions.
type IntakeRetentionJobParams struct {
	Logger    *logger.Logger
	Forms     intakePurger
	Retention time.Duration
}

func NewIntakeRetentionJob(params IntakeRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Forms == nil {
		return nil, fmt.Errorf("forms service required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultIntakeRetention
	}
	return &intakeRetentionJob{
		logg:      params.Logger,
		forms:     params.Forms,
		retention: retention,
		now:       time.Now,
	}, nil
}

type intakeRetentionJob struct {
	logg      *logger.Logger
	forms     intakePurger
	retention time.Duration
	now       func() time.Time
}

func (j *intakeRetentionJob) Name() string { return "intake-retention" }

func (j *intakeRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)
	purged, err := j.forms.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge intake submissions: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"rows_deleted": purged,
	})
	j.logg.Info(logCtx, "intake retention purge complete")
	return nil
}
