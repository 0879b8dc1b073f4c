// Package jobs provides scheduled background tasks of the order intake service.
//
// Jobs are cron based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
//  1. PincodeCacheStatsJob - publishes the number of cached pincodes to the
//     cache size gauge, every 30 seconds by default
//  2. PincodeCachePurgeJob - drops every cached pincode after the nightly
//     directory import, disabled unless a schedule is configured
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.Schedules{
//	    CacheStats: "*/30 * * * * *",
//	    CachePurge: "0 30 3 * * *",
//	}, pincodeCache, cacheMetrics, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//	    log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An invalid schedule fails StartAll; jobs already started are stopped again.
package jobs
