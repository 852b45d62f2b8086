// Package session provides SessionStore implementations for persisting
// conversation transcripts across calls, keyed by thread id.
package session
