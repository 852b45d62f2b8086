package router

import (
	"context"
	"strings"

	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/logging"
	"github.com/hupe1980/estatemesh/model"
)

// RouterInstructions steer the router model toward a classifiable reply.
const RouterInstructions = `You are a routing assistant for a data platform. Decide how an incoming user request should be handled:

- If the request needs data retrieved from the database, reply that a SQL query is required and restate the request.
- If the request asks to analyze, interpret or summarize data, reply that data analysis is required and restate the request.
- Otherwise answer the request directly yourself.

Keep your reply short.`

// Apology returned when the router model itself is unreachable.
const routerUnavailable = "I apologize, but I'm experiencing technical difficulties at the moment. Please try again later."

// Handler handles a query for one category.
type Handler interface {
	Name() string
	Handle(ctx context.Context, query string) (string, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc struct {
	HandlerName string
	Fn          func(ctx context.Context, query string) (string, error)
}

// Name implements Handler.
func (h HandlerFunc) Name() string { return h.HandlerName }

// Handle implements Handler.
func (h HandlerFunc) Handle(ctx context.Context, query string) (string, error) {
	return h.Fn(ctx, query)
}

// Options configure the dispatch router.
type Options struct {
	Classifier Classifier
	Logger     logging.Logger
}

// Router asks the router model to classify an incoming query, applies the
// configured Classifier to the model's reply and dispatches to the handler
// registered for the resulting category. With no matching handler (or
// CategoryFallback) the router's own reply is the answer.
type Router struct {
	llm        model.Model
	classifier Classifier
	handlers   map[Category]Handler
	logger     logging.Logger
}

// New creates a dispatch router. The classifier defaults to the keyword rules.
func New(llm model.Model, optFns ...func(o *Options)) *Router {
	opts := Options{
		Classifier: KeywordClassifier{},
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{
		llm:        llm,
		classifier: opts.Classifier,
		handlers:   map[Category]Handler{},
		logger:     opts.Logger,
	}
}

// Handle registers a handler for a category, replacing any existing one.
func (r *Router) Handle(cat Category, h Handler) { r.handlers[cat] = h }

// Route processes one query and always returns a user-facing string; every
// failure path resolves to a degraded but present answer.
func (r *Router) Route(ctx context.Context, query string) string {
	reply, err := model.Text(ctx, r.llm, model.Request{
		Instructions: RouterInstructions,
		Messages:     []core.Message{core.NewUserMessage(query)},
	})
	if err != nil {
		r.logger.Error("router.classify.failed", "error", err.Error())
		return routerUnavailable
	}

	cat, err := r.classifier.Classify(ctx, reply)
	if err != nil {
		r.logger.Warn("router.classifier.error", "error", err.Error())
		cat = CategoryFallback
	}
	r.logger.Info("router.dispatch", "category", cat.String())

	handler, ok := r.handlers[cat]
	if !ok || cat == CategoryFallback {
		// The router's own reply is the answer when no specialist applies.
		return reply
	}

	answer, err := handler.Handle(ctx, query)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			r.logger.Warn("router.handler.failed", "handler", handler.Name(), "error", err.Error())
		}
		return reply
	}
	return answer
}
