package skill

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/model"
	"github.com/hupe1980/estatemesh/tool"
)

// sqlInstructionsTemplate prompts the model for exactly one SELECT statement.
const sqlInstructionsTemplate = `You translate natural language questions into SQLite queries.

Database schema:
%s

Write a single SELECT statement answering the question. Reply with only the SQL, no explanation. Never write statements that modify data.`

// SQLSkillOptions configure the SQL skill.
type SQLSkillOptions struct {
	Schema  string // DDL or textual description given to the model
	MaxRows int
}

// NewSQLSkill returns a tool that has the model generate a SELECT statement
// for a natural language question, executes it against the injected database
// and renders the rows as text. Non-SELECT statements are rejected before
// execution.
func NewSQLSkill(llm model.Model, db *sql.DB, optFns ...func(o *SQLSkillOptions)) tool.Tool {
	opts := SQLSkillOptions{MaxRows: 50}
	for _, fn := range optFns {
		fn(&opts)
	}

	type args struct {
		Question string `json:"question" description:"Natural language question to answer from the database"`
	}

	return tool.NewFunctionToolFromStruct(
		"generate_and_run_sql_query",
		"Generate a SQL query from a natural language question and run it against the database",
		args{},
		func(ctx context.Context, params map[string]any) (any, error) {
			question, _ := params["question"].(string)

			reply, err := model.Text(ctx, llm, model.Request{
				Instructions: fmt.Sprintf(sqlInstructionsTemplate, opts.Schema),
				Messages:     []core.Message{core.NewUserMessage(question)},
			})
			if err != nil {
				return nil, fmt.Errorf("generate sql: %w", err)
			}

			stmt := extractStatement(reply)
			if !strings.HasPrefix(strings.ToUpper(stmt), "SELECT") {
				return nil, fmt.Errorf("model produced a non-SELECT statement: %q", stmt)
			}

			rows, err := db.QueryContext(ctx, stmt)
			if err != nil {
				return nil, fmt.Errorf("run query: %w", err)
			}
			defer rows.Close()

			rendered, err := renderRows(rows, opts.MaxRows)
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Query:\n%s\n\nResults:\n%s", stmt, rendered), nil
		},
	)
}

// extractStatement strips markdown fences and trailing commentary, returning
// the first statement.
func extractStatement(reply string) string {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```sql")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.Index(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, ";"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// renderRows formats a result set as a tab separated table capped at maxRows.
func renderRows(rows *sql.Rows, maxRows int) (string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("read columns: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(cols, "\t"))

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	count := 0
	for rows.Next() {
		if count >= maxRows {
			fmt.Fprintf(&sb, "\n... (truncated at %d rows)", maxRows)
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", fmt.Errorf("scan row: %w", err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			switch c := v.(type) {
			case nil:
				cells[i] = "NULL"
			case []byte:
				cells[i] = string(c)
			default:
				cells[i] = fmt.Sprintf("%v", c)
			}
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Join(cells, "\t"))
		count++
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate rows: %w", err)
	}
	if count == 0 {
		sb.WriteString("\n(no rows)")
	}
	return sb.String(), nil
}
