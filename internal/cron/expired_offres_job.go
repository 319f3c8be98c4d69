package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

type offreExpirer interface {
	ExpireOffres(ctx context.Context, now time.Time) (int64, error)
}

// ExpiredOffresJobParams configure the job that takes down job offers
// past their application deadline.
type ExpiredOffresJobParams struct {
	Logger  *logger.Logger
	Emplois offreExpirer
}

func NewExpiredOffresJob(params ExpiredOffresJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Emplois == nil {
		return nil, fmt.Errorf("emplois service required")
	}
	return &expiredOffresJob{
		logg:    params.Logger,
		emplois: params.Emplois,
		now:     time.Now,
	}, nil
}

type expiredOffresJob struct {
	logg    *logger.Logger
	emplois offreExpirer
	now     func() time.Time
}

func (j *expiredOffresJob) Name() string { return "expired-offres" }

func (j *expiredOffresJob) Run(ctx context.Context) error {
	n, err := j.emplois.ExpireOffres(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("expire offres: %w", err)
	}
	logCtx := j.logg.WithField(ctx, "offres_unpublished", n)
	j.logg.Info(logCtx, "expired offres sweep complete")
	return nil
}
