// Package router implements query classification and dispatch for the
// non-pipeline variants: a closed category enum, substring and model backed
// classifiers, a dispatch router that never errors, and a bounded
// coordinator/specialist handoff exchange.
package router

import (
	"context"
	"strings"
)

// Category is the closed set of dispatch targets a query can classify into.
type Category int

const (
	// CategoryFallback means no specialist matched; the router answers itself.
	CategoryFallback Category = iota
	// CategorySQL routes to the SQL generation skill.
	CategorySQL
	// CategoryAnalysis routes to the data analysis skill.
	CategoryAnalysis
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategorySQL:
		return "sql"
	case CategoryAnalysis:
		return "analysis"
	case CategoryFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Classifier assigns a category to a piece of text. Implementations must be
// independently testable from the dispatch logic consuming them.
type Classifier interface {
	Classify(ctx context.Context, text string) (Category, error)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, text string) (Category, error)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(ctx context.Context, text string) (Category, error) {
	return f(ctx, text)
}

// KeywordClassifier applies the fixed substring rules to a router's free-text
// classification reply. The SQL branch matches "SQL" case-sensitively or
// "database" lowercased; the analysis branch matches "analysis"/"analyze"
// case-insensitively. First match wins.
type KeywordClassifier struct{}

// Classify implements Classifier. It never returns an error.
func (KeywordClassifier) Classify(_ context.Context, text string) (Category, error) {
	lower := strings.ToLower(text)
	if strings.Contains(text, "SQL") || strings.Contains(lower, "database") {
		return CategorySQL, nil
	}
	if strings.Contains(lower, "analysis") || strings.Contains(lower, "analyze") {
		return CategoryAnalysis, nil
	}
	return CategoryFallback, nil
}
