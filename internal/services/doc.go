// Package services provides the shared error classification and context
// annotation helpers used across the pipeline. Errors are tagged with
// sentinel markers so callers can distinguish validation failures from
// external tool failures without parsing messages.
package services
