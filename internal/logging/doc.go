// Package logging centralizes slog construction and the structured field
// conventions shared by the pipeline and CLI. Console output is a compact
// human-readable format; JSON output preserves all attributes for log
// aggregation.
package logging
