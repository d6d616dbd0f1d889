package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/internal/syncjobs"
	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type SyncDispatcherJobParams struct {
	Logger     *logger.Logger
	Repository syncJobSource
	Pusher     syncPusher
}

type syncJobSource interface {
	ListDispatchable(ctx context.Context) ([]models.SyncJob, error)
	MarkSynced(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause string) error
}

type syncPusher interface {
	Push(ctx context.Context, payload syncjobs.Payload) error
}

func NewSyncDispatcherJob(params SyncDispatcherJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("sync job repository required")
	}
	if params.Pusher == nil {
		return nil, fmt.Errorf("sync pusher required")
	}
	return &syncDispatcherJob{
		logg:   params.Logger,
		repo:   params.Repository,
		pusher: params.Pusher,
		now:    time.Now,
	}, nil
}

type syncDispatcherJob struct {
	logg   *logger.Logger
	repo   syncJobSource
	pusher syncPusher
	now    func() time.Time
}

func (j *syncDispatcherJob) Name() string { return "sync-dispatcher" }

// Run pushes queued payroll rows to the external API one at a time.
// A row that fails stays queued with its error recorded and is picked
// up again on the next cycle; one bad row never blocks the rest.
func (j *syncDispatcherJob) Run(ctx context.Context) error {
	jobs, err := j.repo.ListDispatchable(ctx)
	if err != nil {
		return fmt.Errorf("list dispatchable sync jobs: %w", err)
	}
	if len(jobs) == 0 {
		j.logg.Info(ctx, "no sync jobs to dispatch")
		return nil
	}

	var pushed, failed int
	for i := range jobs {
		job := &jobs[i]
		rowCtx := j.logg.WithField(ctx, "sync_job_id", job.ID.String())
		if err := j.pusher.Push(ctx, syncjobs.PayloadFromJob(job)); err != nil {
			failed++
			j.logg.Error(rowCtx, "sync job push failed", err)
			if markErr := j.repo.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
				j.logg.Error(rowCtx, "failed to record sync job failure", markErr)
			}
			continue
		}
		if err := j.repo.MarkSynced(ctx, job.ID, j.now().UTC()); err != nil {
			failed++
			j.logg.Error(rowCtx, "failed to mark sync job synced", err)
			continue
		}
		pushed++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"jobs_total":  len(jobs),
		"jobs_synced": pushed,
		"jobs_failed": failed,
	})
	j.logg.Info(logCtx, "sync dispatch cycle complete")
	if failed > 0 {
		return fmt.Errorf("sync dispatch: %d of %d jobs failed", failed, len(jobs))
	}
	return nil
}
