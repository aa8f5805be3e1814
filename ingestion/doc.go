// Package ingestion orchestrates the tender refresh workflow.
//
// The Pipeline type fetches listings from every configured portal
// source concurrently, normalizes and validates the records, and
// atomically replaces the stored tender snapshot. A failure on one
// portal is logged and tolerated; the refresh fails only when every
// source fails or the snapshot cannot be written.
package ingestion
