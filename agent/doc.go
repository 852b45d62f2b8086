// Package agent provides the conversation stages of the real estate
// pipeline: the coordinator announcement, the three search-backed
// specialists (neighborhood, property, price) and the final synthesizer.
// Each agent appends exactly one assistant message per run and absorbs
// external failures into deterministic fallback narratives.
package agent
