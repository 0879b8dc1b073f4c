package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules are the cron expressions (with seconds) of every job.
type Schedules struct {
	CacheStats string
	CachePurge string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cacheStatsJob *PincodeCacheStatsJob
	cachePurgeJob *PincodeCachePurgeJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	schedules Schedules,
	pincodeCache PurgeableCache,
	cacheSizeGauge SizeGauge,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		cacheStatsJob: NewPincodeCacheStatsJob(pincodeCache, cacheSizeGauge, schedules.CacheStats, logger),
		cachePurgeJob: NewPincodeCachePurgeJob(pincodeCache, schedules.CachePurge, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cacheStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start pincode cache stats job: %w", err)
	}

	if err := jm.cachePurgeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.cacheStatsJob.Stop()
		return fmt.Errorf("failed to start pincode cache purge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cachePurgeJob.Stop()
	jm.cacheStatsJob.Stop()
}
