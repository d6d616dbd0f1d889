package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

const defaultSelectionRetentionDays = 7

type SelectionCleanupJobParams struct {
	Logger        *logger.Logger
	Repository    selectionCleanupRepo
	RetentionDays int
}

type selectionCleanupRepo interface {
	DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

func NewSelectionCleanupJob(params SelectionCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("selection repository required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = defaultSelectionRetentionDays
	}
	return &selectionCleanupJob{
		logg:      params.Logger,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type selectionCleanupJob struct {
	logg      *logger.Logger
	repo      selectionCleanupRepo
	retention int
	now       func() time.Time
}

func (j *selectionCleanupJob) Name() string { return "selection-cleanup" }

func (j *selectionCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	deleted, err := j.repo.DeleteStaleBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("selection cleanup: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "stale selection cleanup complete")
	return nil
}
