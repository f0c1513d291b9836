// Package pipeline orchestrates a full split run: decode the source WAV,
// classify frames, collect speech segments, filter them against the duration
// policy, materialize clips, and record the results in the catalog.
package pipeline
