package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ScanResult tracks separate counters for each skip reason.
type ScanResult struct {
	TotalFound     int
	Processed      int
	AlreadyTracked int
	Errors         []string
}

// ScanWatchDir processes every survey job file in the watch directory
// that has no recorded run. One bad file never stops the scan.
func ScanWatchDir(cfg Config, db *sql.DB, process func(path string) error) ScanResult {
	var result ScanResult

	entries, err := os.ReadDir(cfg.WatchDir)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("read watch dir: %v", err))
		return result
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(cfg.WatchDir, entry.Name())
		result.TotalFound++

		exists, dbErr := RunExists(db, path)
		if dbErr != nil {
			log.Printf("Error checking run existence: %v", dbErr)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", entry.Name(), dbErr))
			continue
		}
		if exists {
			result.AlreadyTracked++
			continue
		}

		if err := process(path); err != nil {
			log.Printf("watch-scan error for %s: %v", path, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}
		result.Processed++
	}
	return result
}

func FormatScanSummary(result ScanResult) string {
	parts := []string{
		fmt.Sprintf("found %d", result.TotalFound),
		fmt.Sprintf("processed %d", result.Processed),
		fmt.Sprintf("already tracked %d", result.AlreadyTracked),
	}
	if len(result.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("errors %d", len(result.Errors)))
	}
	return strings.Join(parts, ", ")
}

// StartWatchScheduler runs ScanWatchDir on the configured cron schedule.
// With no schedule set the watcher is disabled.
func StartWatchScheduler(cfg Config, db *sql.DB, process func(path string) error) {
	schedule := cfg.WatchSchedule
	if schedule == "" {
		log.Println("Watch scheduler disabled (watch_schedule not set)")
		return
	}
	if cfg.WatchDir == "" {
		log.Println("Watch scheduler disabled: watch_dir is not configured")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid watch_schedule '%s': %v — watcher disabled", schedule, err)
		return
	}

	log.Printf("Watch scheduled (cron: %s) on %s", schedule, cfg.WatchDir)

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next watch scan at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			result := ScanWatchDir(cfg, db, process)
			log.Printf("Watch scan complete: %s", FormatScanSummary(result))
		}
	}()
}
