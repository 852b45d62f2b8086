// Package skill bundles the callable capabilities exposed to router models:
// SQL generation/execution and data analysis. A SkillMap registers skills as
// tools and exposes their schemas for function calling.
package skill

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/estatemesh/model"
	"github.com/hupe1980/estatemesh/tool"
)

// SkillMap is a registry of tools exposed to a model as callable functions.
type SkillMap struct {
	tools map[string]tool.Tool
	order []string
}

// NewSkillMap creates a registry from the given tools.
func NewSkillMap(tools ...tool.Tool) *SkillMap {
	sm := &SkillMap{tools: make(map[string]tool.Tool, len(tools))}
	for _, t := range tools {
		sm.Register(t)
	}
	return sm
}

// Register adds a tool, replacing any previous tool of the same name.
func (sm *SkillMap) Register(t tool.Tool) {
	if _, exists := sm.tools[t.Name()]; !exists {
		sm.order = append(sm.order, t.Name())
	}
	sm.tools[t.Name()] = t
}

// Get returns the named tool.
func (sm *SkillMap) Get(name string) (tool.Tool, bool) {
	t, ok := sm.tools[name]
	return t, ok
}

// Definitions returns the tool definitions for model function calling, in
// registration order.
func (sm *SkillMap) Definitions() []model.ToolDefinition {
	defs := make([]model.ToolDefinition, 0, len(sm.order))
	for _, name := range sm.order {
		t := sm.tools[name]
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}

// Execute decodes the raw JSON arguments, runs the named tool and renders
// the result as text suitable for a function response message.
func (sm *SkillMap) Execute(ctx context.Context, name string, rawArgs json.RawMessage) (string, error) {
	t, ok := sm.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown skill %q", name)
	}

	args := map[string]any{}
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return "", fmt.Errorf("decode arguments for %q: %w", name, err)
		}
	}

	result, err := t.Call(ctx, args)
	if err != nil {
		return "", err
	}

	switch v := result.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v), nil
		}
		return string(encoded), nil
	}
}
