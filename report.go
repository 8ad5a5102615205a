package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"makeready/internal/ledger"
	"makeready/internal/survey"
)

// JSONReport is the serialized ledger for one survey job.
type JSONReport struct {
	Job         string       `json:"job"`
	GeneratedAt time.Time    `json:"generated_at"`
	Rows        []ledger.Row `json:"rows"`
}

// MidspanFunc resolves a wire's proposed midspan height on a connection.
type MidspanFunc func(connectionID, attacherName string) string

func WriteJSONReport(rows []ledger.Row, outputDir, jobName string, runTime time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	report := JSONReport{Job: jobName, GeneratedAt: runTime, Rows: rows}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_makeready_%s.json", sanitizeFilename(jobName), runTime.Format("20060102"))
	path := filepath.Join(outputDir, filename)
	return path, os.WriteFile(path, data, 0644)
}

var csvHeader = []string{
	"Operation", "Attachment Action", "Pole Owner", "Pole #", "SCID",
	"Pole Structure", "Proposed Riser", "Proposed Guy", "PLA (%)",
	"Construction Grade", "Height Lowest Com", "Height Lowest Power",
	"Span", "Bearing", "Attacher", "Existing Height", "Proposed Height",
	"Midspan Proposed", "One Touch Transfer", "Remedy",
	"Responsible Party", "Red Tag", "From Pole", "To Pole",
}

// WriteCSVReport flattens the ledger into one record per attacher, with
// the pole-level columns repeated on each record of its operation.
func WriteCSVReport(rows []ledger.Row, midspan MidspanFunc, outputDir, jobName string, runTime time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_makeready_%s.csv", sanitizeFilename(jobName), runTime.Format("20060102"))
	path := filepath.Join(outputDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, row := range rows {
		for _, record := range flattenRow(row, midspan) {
			if err := w.Write(record); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	return path, w.Error()
}

func flattenRow(row ledger.Row, midspan MidspanFunc) [][]string {
	pole := []string{
		fmt.Sprintf("%d", row.OperationNumber),
		row.AttachmentAction,
		row.PoleOwner,
		row.PoleNumber,
		row.SCID,
		row.PoleStructure,
		row.ProposedRiser,
		row.ProposedGuy,
		row.Capacity,
		row.ConstructionGrade,
		row.LowestCom,
		row.LowestPower,
	}
	tail := []string{
		row.WorkType,
		row.RemedyDescription,
		row.ResponsibleParty,
		yesNo(row.RedTag),
		row.FromPole,
		row.ToPole,
	}

	record := func(span, bearing string, a ledger.Attacher, mid string) []string {
		out := append([]string{}, pole...)
		out = append(out, span, bearing, a.Name, a.Existing, a.Proposed, mid)
		return append(out, tail...)
	}

	var records [][]string
	for _, a := range row.MainAttachers {
		mid := ""
		if a.Category == survey.CategoryWire && !row.Underground {
			mid = midspan(row.ConnectionID, a.Name)
		}
		records = append(records, record("Main", "", a, mid))
	}
	for _, span := range row.ReferenceSpans {
		for _, a := range span.Attachers {
			records = append(records, record("Ref", span.Bearing, a, ""))
		}
	}
	for _, a := range row.Backspan.Attachers {
		records = append(records, record("Backspan", row.Backspan.Bearing, a, ""))
	}
	if len(records) == 0 {
		records = append(records, record("Main", "", ledger.Attacher{}, ""))
	}
	return records
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "No"
}

func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")
	return replacer.Replace(s)
}
