package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"lexlaboral/internal/platform/querier"
)

const (
	JobIdentityRetention = "identity_retention"

	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// Purger deletes stored identity extractions created before cutoff.
type Purger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type MetricsRecorder interface {
	ObserveJob(jobType, status string)
}

type Options struct {
	Retention         time.Duration
	RetentionInterval time.Duration
}

type Service struct {
	DB      querier.Querier
	purger  Purger
	metrics MetricsRecorder
	opts    Options
	queue   chan job
	now     func() time.Time
}

type job struct {
	Type     string
	TenantID string
	Run      func(context.Context) (any, error)
}

// New builds the job runner. db may be nil, in which case runs are not
// recorded in job_runs.
func New(db querier.Querier, purger Purger, metrics MetricsRecorder, opts Options) *Service {
	return &Service{
		DB:      db,
		purger:  purger,
		metrics: metrics,
		opts:    opts,
		queue:   make(chan job, 128),
		now:     time.Now,
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.purger != nil && s.opts.Retention > 0 && s.opts.RetentionInterval > 0 {
		go s.scheduleRetention(ctx, s.opts.RetentionInterval)
	}
}

func (s *Service) Enqueue(jobType, tenantID string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, TenantID: tenantID, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType, "tenantId", tenantID)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType, tenantID string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, TenantID: tenantID, Run: run})
}

// PurgeIdentity removes extractions older than the configured retention.
func (s *Service) PurgeIdentity(ctx context.Context) (any, error) {
	cutoff := s.now().UTC().Add(-s.opts.Retention)
	deleted, err := s.purger.PurgeBefore(ctx, cutoff)
	return map[string]any{
		"cutoff":  cutoff,
		"deleted": deleted,
	}, err
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "tenantId", j.TenantID, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if s.DB != nil {
		if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (tenant_id, job_type, status)
    VALUES (NULLIF($1, ''),$2,$3)
    RETURNING id
  `, j.TenantID, j.Type, statusRunning).Scan(&runID); err != nil {
			slog.Warn("job run insert failed", "err", err)
		}
	}

	details, err := j.Run(ctx)
	status := statusCompleted
	if err != nil {
		status = statusFailed
	}
	if s.metrics != nil {
		s.metrics.ObserveJob(j.Type, status)
	}
	if runID == "" {
		return details, err
	}

	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if _, updErr := s.DB.Exec(ctx, `
    UPDATE job_runs
    SET status = $1, details_json = $2, completed_at = now()
    WHERE id = $3
  `, status, detailsJSON, runID); updErr != nil {
		slog.Warn("job run update failed", "err", updErr)
	}
	return details, err
}

func (s *Service) scheduleRetention(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobIdentityRetention, "", s.PurgeIdentity)
		}
	}
}
