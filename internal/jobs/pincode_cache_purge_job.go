package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// PurgeableCache is a cache that can be emptied.
type PurgeableCache interface {
	SizedCache
	Purge()
}

// PincodeCachePurgeJob empties the pincode cache so that directory imports
// become visible before the TTL runs out.
type PincodeCachePurgeJob struct {
	cache    PurgeableCache
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPincodeCachePurgeJob creates the job.
func NewPincodeCachePurgeJob(cache PurgeableCache, schedule string, logger *slog.Logger) *PincodeCachePurgeJob {
	return &PincodeCachePurgeJob{
		cache:    cache,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pincode_cache_purge_job"),
	}
}

// Run performs one purge.
func (j *PincodeCachePurgeJob) Run() {
	dropped := j.cache.Len()
	j.cache.Purge()
	j.logger.Info("pincode cache purged", "entries", dropped)
}

// Enabled reports whether a schedule was configured.
func (j *PincodeCachePurgeJob) Enabled() bool {
	return j.schedule != ""
}

// Start schedules the job. Without a schedule it does nothing.
func (j *PincodeCachePurgeJob) Start() error {
	if !j.Enabled() {
		return nil
	}
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pincode cache purge job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler.
func (j *PincodeCachePurgeJob) Stop() {
	if !j.Enabled() {
		return
	}
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pincode cache purge job stopped")
}
