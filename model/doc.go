// Package model defines the vendor neutral request/response types and the
// Model interface used to drive LLM generation, plus a deterministic
// MockModel for tests and examples. Vendor adapters live in the openai and
// anthropic subpackages.
package model
