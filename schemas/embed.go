// Package schemas holds the JSON Schemas for the analyzer's output documents.
package schemas

import "embed"

// Schema file names.
const (
	AnalysisResult = "analysis_result.schema.json"
	BatchReport    = "batch_report.schema.json"
)

// Files holds every schema in this directory.
//
//go:embed *.schema.json
var Files embed.FS
