// Package core contains the shared domain types of EstateMesh: conversation
// messages and transcripts, the Agent contract, the per-run execution context
// and the session persistence interfaces. Higher level packages (agent,
// pipeline, router) depend on core; core depends only on logging.
package core
