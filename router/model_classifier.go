package router

import (
	"context"
	"strings"

	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/model"
)

const classifierInstructions = `Classify the user request into exactly one word:
- "sql" if answering it needs data retrieved from the database
- "analysis" if it asks to analyze, interpret or summarize data
- "fallback" otherwise

Reply with only the word.`

// ModelClassifier asks an LLM to categorize the text, then maps the model's
// reply onto the closed category set with the keyword rules. A generation
// failure is returned so the dispatcher can degrade explicitly.
type ModelClassifier struct {
	llm model.Model
}

// NewModelClassifier creates a model backed classifier.
func NewModelClassifier(llm model.Model) *ModelClassifier {
	return &ModelClassifier{llm: llm}
}

// Classify implements Classifier.
func (c *ModelClassifier) Classify(ctx context.Context, text string) (Category, error) {
	reply, err := model.Text(ctx, c.llm, model.Request{
		Instructions: classifierInstructions,
		Messages:     []core.Message{core.NewUserMessage(text)},
	})
	if err != nil {
		return CategoryFallback, err
	}

	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "sql":
		return CategorySQL, nil
	case "analysis":
		return CategoryAnalysis, nil
	case "fallback":
		return CategoryFallback, nil
	}
	// Tolerate chatty replies by falling back to the keyword rules.
	return KeywordClassifier{}.Classify(ctx, reply)
}
