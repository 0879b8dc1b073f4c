package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultCacheStatsSchedule runs the stats job every 30 seconds.
const DefaultCacheStatsSchedule = "*/30 * * * * *"

// SizedCache is a cache that can report its size.
type SizedCache interface {
	Len() int
}

// SizeGauge receives the reported size.
type SizeGauge interface {
	SetSize(n int)
}

// PincodeCacheStatsJob periodically copies the pincode cache size into a gauge.
type PincodeCacheStatsJob struct {
	cache    SizedCache
	gauge    SizeGauge
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPincodeCacheStatsJob creates the job. An empty schedule selects
// DefaultCacheStatsSchedule.
func NewPincodeCacheStatsJob(cache SizedCache, gauge SizeGauge, schedule string, logger *slog.Logger) *PincodeCacheStatsJob {
	if schedule == "" {
		schedule = DefaultCacheStatsSchedule
	}
	return &PincodeCacheStatsJob{
		cache:    cache,
		gauge:    gauge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pincode_cache_stats_job"),
	}
}

// Run performs one tick.
func (j *PincodeCacheStatsJob) Run() {
	size := j.cache.Len()
	j.gauge.SetSize(size)
	j.logger.Debug("pincode cache size published", "entries", size)
}

// Start schedules the job.
func (j *PincodeCacheStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pincode cache stats job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler; a running tick is allowed to finish.
func (j *PincodeCacheStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pincode cache stats job stopped")
}
