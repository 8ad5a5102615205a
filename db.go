package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		input_path       TEXT NOT NULL,
		job_name         TEXT NOT NULL,
		connection_count INTEGER NOT NULL DEFAULT 0,
		output_json      TEXT DEFAULT '',
		output_csv       TEXT DEFAULT '',
		processed_at     DATETIME NOT NULL,
		created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_input_path ON runs(input_path);
	CREATE INDEX IF NOT EXISTS idx_runs_processed_at ON runs(processed_at);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func InsertRun(db *sql.DB, run Run) error {
	_, err := db.Exec(
		`INSERT INTO runs (input_path, job_name, connection_count, output_json, output_csv, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.InputPath, run.JobName, run.ConnectionCount, run.OutputJSON, run.OutputCSV, run.ProcessedAt,
	)
	return err
}

// RunExists reports whether a job file has already been processed, so the
// watch loop does not reprocess it on every tick.
func RunExists(db *sql.DB, inputPath string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM runs WHERE input_path = ?`, inputPath).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func RecentRuns(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(
		`SELECT id, input_path, job_name, connection_count, output_json, output_csv, processed_at, created_at
		 FROM runs ORDER BY processed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.InputPath, &r.JobName, &r.ConnectionCount,
			&r.OutputJSON, &r.OutputCSV, &r.ProcessedAt, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
