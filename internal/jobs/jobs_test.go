package jobs_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderintake/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	mu      sync.Mutex
	entries int
	purges  int
}

func (c *fakeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries
}

func (c *fakeCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = 0
	c.purges++
}

type fakeGauge struct {
	mu    sync.Mutex
	sizes []int
}

func (g *fakeGauge) SetSize(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sizes = append(g.sizes, n)
}

func (g *fakeGauge) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sizes)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPincodeCacheStatsJob_Run(t *testing.T) {
	cache := &fakeCache{entries: 12}
	gauge := new(fakeGauge)

	jobs.NewPincodeCacheStatsJob(cache, gauge, "", discardLogger()).Run()

	assert.Equal(t, []int{12}, gauge.sizes)
}

func TestPincodeCachePurgeJob_Run(t *testing.T) {
	cache := &fakeCache{entries: 5}
	job := jobs.NewPincodeCachePurgeJob(cache, "", discardLogger())

	job.Run()

	assert.Zero(t, cache.Len())
	assert.Equal(t, 1, cache.purges)
	assert.False(t, job.Enabled())
	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager_StartAll_RunsOnSchedule(t *testing.T) {
	cache := &fakeCache{entries: 3}
	gauge := new(fakeGauge)
	manager := jobs.NewJobManager(jobs.Schedules{CacheStats: "* * * * * *"}, cache, gauge, discardLogger())

	require.NoError(t, manager.StartAll())
	assert.Eventually(t, func() bool { return gauge.count() > 0 }, 3*time.Second, 50*time.Millisecond)
	manager.StopAll()
}

func TestJobManager_StartAll_InvalidSchedule(t *testing.T) {
	tests := []struct {
		name      string
		schedules jobs.Schedules
		message   string
	}{
		{"stats", jobs.Schedules{CacheStats: "not a schedule"}, "stats job"},
		{"purge", jobs.Schedules{CachePurge: "61 * * * * *"}, "purge job"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := jobs.NewJobManager(tt.schedules, new(fakeCache), new(fakeGauge), discardLogger())

			err := manager.StartAll()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
