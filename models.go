package main

import "time"

// Run records one processed survey job file.
type Run struct {
	ID              int64
	InputPath       string
	JobName         string
	ConnectionCount int
	OutputJSON      string
	OutputCSV       string
	ProcessedAt     time.Time
	CreatedAt       time.Time
}
