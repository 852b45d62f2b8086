// Command estatemesh is a small CLI around the real estate pipeline and the
// skill router. It expects OPENAI_API_KEY and TAVILY_API_KEY in the
// environment (a .env file is loaded when present).
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/hupe1980/estatemesh"
	"github.com/hupe1980/estatemesh/logging"
	"github.com/hupe1980/estatemesh/model/openai"
	"github.com/hupe1980/estatemesh/router"
	"github.com/hupe1980/estatemesh/search/tavily"
	"github.com/hupe1980/estatemesh/skill"
)

var (
	flagThread     string
	flagModel      string
	flagMaxResults int
	flagVerbose    bool
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "estatemesh",
		Short:         "Multi-agent real estate assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model id override")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	askCmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Run the real estate pipeline for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
	askCmd.Flags().StringVar(&flagThread, "thread", "", "thread id for transcript persistence")
	askCmd.Flags().IntVar(&flagMaxResults, "max-results", 5, "search results per specialist")

	skillsCmd := &cobra.Command{
		Use:   "skills [query]",
		Short: "Route a query to the SQL or analysis skill",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSkills,
	}

	handoffCmd := &cobra.Command{
		Use:   "handoff [query]",
		Short: "Run the coordinator/specialist handoff exchange",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHandoff,
	}

	rootCmd.AddCommand(askCmd, skillsCmd, handoffCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() logging.Logger {
	level := logging.LogLevelInfo
	if flagVerbose {
		level = logging.LogLevelDebug
	}
	return logging.NewSlogLogger(level, "text", os.Stderr)
}

func newModel() *openai.Model {
	return openai.NewModel(func(o *openai.Options) {
		if flagModel != "" {
			o.Model = flagModel
		}
	})
}

func runAsk(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("TAVILY_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("TAVILY_API_KEY is not set")
	}

	app := estatemesh.New(newModel(), tavily.New(apiKey), func(o *estatemesh.Options) {
		o.Logger = newLogger()
		o.MaxResults = flagMaxResults
	})

	answer := app.Process(cmd.Context(), strings.Join(args, " "), flagThread)
	fmt.Println(answer)
	return nil
}

func runSkills(cmd *cobra.Command, args []string) error {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := seedSales(cmd.Context(), db); err != nil {
		return err
	}

	llm := newModel()
	logger := newLogger()

	sqlSkill := skill.NewSQLSkill(llm, db, func(o *skill.SQLSkillOptions) {
		o.Schema = salesSchema
	})
	analysisSkill := skill.NewAnalysisSkill(llm)

	r := router.New(llm, func(o *router.Options) { o.Logger = logger })
	r.Handle(router.CategorySQL, skill.NewRunner("sql", llm, skill.NewSkillMap(sqlSkill),
		func(o *skill.RunnerOptions) {
			o.Instructions = "Answer the user's question by querying the sales database with the available tool."
			o.Logger = logger
		}))
	r.Handle(router.CategoryAnalysis, skill.NewRunner("analysis", llm, skill.NewSkillMap(analysisSkill, sqlSkill),
		func(o *skill.RunnerOptions) {
			o.Instructions = "Answer the user's question by fetching and analyzing data with the available tools."
			o.Logger = logger
		}))

	fmt.Println(r.Route(cmd.Context(), strings.Join(args, " ")))
	return nil
}

func runHandoff(cmd *cobra.Command, args []string) error {
	llm := newModel()
	logger := newLogger()

	coordinator := router.NewModelParticipant("coordinator", llm,
		"You coordinate a real estate conversation. If the request needs property listings say so; if it needs neighborhood details say so; otherwise answer directly.")

	ex := router.NewExchange(coordinator, func(o *router.ExchangeOptions) { o.Logger = logger })
	ex.AddSpecialist(
		router.NewModelParticipant("property", llm,
			"You are a property listing specialist. When your answer is complete, start it with FINAL ANSWER."),
		func(reply string) bool { return strings.Contains(strings.ToLower(reply), "listing") },
	)
	ex.AddSpecialist(
		router.NewModelParticipant("neighborhood", llm,
			"You are a neighborhood information specialist. When your answer is complete, start it with FINAL ANSWER."),
		func(reply string) bool { return strings.Contains(strings.ToLower(reply), "neighborhood") },
	)

	transcript, status := ex.Run(cmd.Context(), strings.Join(args, " "))
	if last, ok := transcript.LastAssistant(); ok {
		fmt.Println(strings.TrimPrefix(strings.TrimSpace(last.Content), router.FinalAnswerMarker))
	}
	if status == router.StatusIncomplete {
		fmt.Fprintln(os.Stderr, "warning: exchange hit the hop limit before completing")
	}
	return nil
}

const salesSchema = `CREATE TABLE sales (
  id INTEGER PRIMARY KEY,
  region TEXT NOT NULL,
  product TEXT NOT NULL,
  amount REAL NOT NULL,
  sold_at TEXT NOT NULL
);`

func seedSales(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, salesSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	rows := []struct {
		region, product string
		amount          float64
		soldAt          string
	}{
		{"west", "condo", 420000, "2025-11-03"},
		{"west", "house", 910000, "2025-12-18"},
		{"east", "condo", 380000, "2026-01-22"},
		{"east", "house", 640000, "2026-02-07"},
		{"south", "condo", 310000, "2026-03-15"},
	}
	for _, r := range rows {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO sales (region, product, amount, sold_at) VALUES (?, ?, ?, ?)",
			r.region, r.product, r.amount, r.soldAt); err != nil {
			return fmt.Errorf("seed sales: %w", err)
		}
	}
	return nil
}
