package skill

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/hupe1980/estatemesh/model"
	"github.com/hupe1980/estatemesh/tool"
)

const testSchema = `CREATE TABLE listings (
  id INTEGER PRIMARY KEY,
  city TEXT NOT NULL,
  rent REAL NOT NULL
);`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO listings (city, rent) VALUES
		('San Francisco', 2950),
		('Oakland', 2400),
		('Berkeley', 3100)`)
	require.NoError(t, err)

	return db
}

func TestSQLSkillRunsGeneratedQuery(t *testing.T) {
	db := newTestDB(t)

	llm := model.NewMockModel("mock", "mock")
	llm.AddResponse("which listings are under 3000",
		"```sql\nSELECT city, rent FROM listings WHERE rent < 3000 ORDER BY rent;\n```")

	skill := NewSQLSkill(llm, db, func(o *SQLSkillOptions) { o.Schema = testSchema })

	result, err := skill.Call(context.Background(), map[string]any{
		"question": "which listings are under 3000",
	})
	require.NoError(t, err)

	text, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, text, "Query:\nSELECT city, rent FROM listings WHERE rent < 3000 ORDER BY rent")
	assert.Contains(t, text, "city\trent")
	assert.Contains(t, text, "Oakland\t2400")
	assert.Contains(t, text, "San Francisco\t2950")
	assert.NotContains(t, text, "Berkeley")
}

func TestSQLSkillRejectsNonSelect(t *testing.T) {
	db := newTestDB(t)

	llm := model.NewMockModel("mock", "mock")
	llm.AddResponse("drop it", "DROP TABLE listings;")

	skill := NewSQLSkill(llm, db)

	_, err := skill.Call(context.Background(), map[string]any{"question": "drop it"})
	require.Error(t, err)

	var toolErr *tool.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Contains(t, toolErr.Message, "non-SELECT")

	// The table survives.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM listings").Scan(&count))
	assert.Equal(t, 3, count)
}

func TestSQLSkillNoRows(t *testing.T) {
	db := newTestDB(t)

	llm := model.NewMockModel("mock", "mock")
	llm.AddResponse("anything cheap?",
		"SELECT city FROM listings WHERE rent < 100")

	skill := NewSQLSkill(llm, db)

	result, err := skill.Call(context.Background(), map[string]any{"question": "anything cheap?"})
	require.NoError(t, err)
	assert.Contains(t, result.(string), "(no rows)")
}

func TestSQLSkillTruncatesRows(t *testing.T) {
	db := newTestDB(t)

	llm := model.NewMockModel("mock", "mock")
	llm.AddResponse("all listings", "SELECT city FROM listings ORDER BY city")

	skill := NewSQLSkill(llm, db, func(o *SQLSkillOptions) { o.MaxRows = 2 })

	result, err := skill.Call(context.Background(), map[string]any{"question": "all listings"})
	require.NoError(t, err)
	assert.Contains(t, result.(string), "... (truncated at 2 rows)")
}

func TestExtractStatement(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"bare statement", "SELECT 1", "SELECT 1"},
		{"trailing semicolon", "SELECT 1;", "SELECT 1"},
		{"sql fence", "```sql\nSELECT 1;\n```", "SELECT 1"},
		{"plain fence", "```\nSELECT 1\n```", "SELECT 1"},
		{"trailing commentary", "SELECT 1; this query counts rows", "SELECT 1"},
		{"surrounding whitespace", "  \nSELECT 1\n ", "SELECT 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractStatement(tt.reply))
		})
	}
}
