package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"makeready/internal/ledger"
	"makeready/internal/rules"
	"makeready/internal/survey"
)

func main() {
	cfg := LoadConfig()

	ruleSet := rules.Default()
	if cfg.RulesPath != "" {
		var err error
		ruleSet, err = rules.Load(cfg.RulesPath)
		if err != nil {
			log.Fatalf("Failed to load rules: %v", err)
		}
	}

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	os.MkdirAll(cfg.ReportOutputDir, 0755)

	process := func(path string) error {
		return ProcessJobFile(cfg, ruleSet, db, path)
	}

	// Explicit job files on the command line run once and exit.
	if args := os.Args[1:]; len(args) > 0 {
		failed := 0
		for _, path := range args {
			if err := process(path); err != nil {
				log.Printf("Failed to process %s: %v", path, err)
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	if cfg.WatchDir == "" {
		log.Fatalf("No job files given and watch_dir is not set")
	}

	log.Println("Starting make-ready report service...")
	StartWatchScheduler(cfg, db, process)
	result := ScanWatchDir(cfg, db, process)
	log.Printf("Initial scan: %s", FormatScanSummary(result))
	select {}
}

// ProcessJobFile resolves one survey job file into its ledger reports and
// records the run.
func ProcessJobFile(cfg Config, ruleSet rules.Rules, db *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read job file: %w", err)
	}

	doc := survey.FromJSON(data)
	resolver := ledger.New(doc, ruleSet)
	rows := resolver.Build()

	jobName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	runTime := time.Now()

	jsonPath, err := WriteJSONReport(rows, cfg.ReportOutputDir, jobName, runTime)
	if err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	csvPath, err := WriteCSVReport(rows, resolver.MidspanProposedHeight, cfg.ReportOutputDir, jobName, runTime)
	if err != nil {
		return fmt.Errorf("write csv report: %w", err)
	}

	poles := 0
	for _, n := range doc.Nodes() {
		if resolver.IsStructure(n.ID) {
			poles++
		}
	}

	if err := InsertRun(db, Run{
		InputPath:       path,
		JobName:         jobName,
		ConnectionCount: len(rows),
		OutputJSON:      jsonPath,
		OutputCSV:       csvPath,
		ProcessedAt:     runTime,
	}); err != nil {
		log.Printf("Failed to record run for %s: %v", path, err)
	}

	log.Printf("Processed %s: %d operations across %d poles -> %s", jobName, len(rows), poles, csvPath)
	return nil
}
