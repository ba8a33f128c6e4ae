// Package jobs runs the storefront's scheduled background work on
// github.com/robfig/cron/v3 (seconds-precision schedules).
//
// # Jobs
//
//   - CheckoutExpiryJob, every minute: OPEN checkout sessions older than the
//     configured TTL become EXPIRED. A verified payment arriving later still
//     completes them; sessions paid while the job runs are skipped.
//   - StatsRefreshJob, every 30 seconds: recomputes the admin order statistics
//     and hands them to a StatsRecorder (the Prometheus gauges).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireHandler, ttl, statsHandler, publisher, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Failures are logged and the next tick runs again; jobs never retry in place.
package jobs
