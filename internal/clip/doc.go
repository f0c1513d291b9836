// Package clip materializes accepted speech segments into padded PCM
// payloads, hands them to a clip sink, and produces the per-clip timing
// records the metadata sink persists.
package clip
