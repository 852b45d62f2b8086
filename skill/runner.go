package skill

import (
	"context"
	"fmt"

	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/logging"
	"github.com/hupe1980/estatemesh/model"
)

// RunnerOptions configure a skill runner.
type RunnerOptions struct {
	Instructions string
	MaxTurns     int
	Logger       logging.Logger
}

// Runner drives a function calling loop: the model sees the registered skill
// definitions, requested calls are executed through the SkillMap and their
// results fed back, until the model answers in plain text or the turn limit
// is reached. Runner satisfies the router Handler contract.
type Runner struct {
	name   string
	llm    model.Model
	skills *SkillMap
	opts   RunnerOptions
}

// NewRunner creates a skill runner handler.
func NewRunner(name string, llm model.Model, skills *SkillMap, optFns ...func(o *RunnerOptions)) *Runner {
	opts := RunnerOptions{
		MaxTurns: 4,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{name: name, llm: llm, skills: skills, opts: opts}
}

// Name returns the handler name.
func (r *Runner) Name() string { return r.name }

// Handle runs the function calling loop for one query.
func (r *Runner) Handle(ctx context.Context, query string) (string, error) {
	messages := []core.Message{core.NewUserMessage(query)}

	for turn := 0; turn < r.opts.MaxTurns; turn++ {
		msg, err := model.Final(ctx, r.llm, model.Request{
			Instructions: r.opts.Instructions,
			Messages:     messages,
			Tools:        r.skills.Definitions(),
		})
		if err != nil {
			return "", fmt.Errorf("skill runner generate: %w", err)
		}

		if len(msg.FunctionCalls) == 0 {
			return msg.Content, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.FunctionCalls {
			r.opts.Logger.Info("skill.call", "skill", call.Name)
			result, err := r.skills.Execute(ctx, call.Name, call.Arguments)
			if err != nil {
				r.opts.Logger.Warn("skill.call.failed", "skill", call.Name, "error", err.Error())
				messages = append(messages, core.NewFunctionResponseMessage(call, fmt.Sprintf("error: %v", err), err))
				continue
			}
			messages = append(messages, core.NewFunctionResponseMessage(call, result, nil))
		}
	}

	return "", fmt.Errorf("skill runner exceeded %d turns without a final answer", r.opts.MaxTurns)
}
