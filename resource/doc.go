// Package resource bounds the work a DB performs: concurrent searches, the
// memory reserved for datasets being loaded, and ingestion IO throughput.
//
// A nil *Controller imposes no limits.
package resource
