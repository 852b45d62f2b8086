package skill

import (
	"context"
	"fmt"

	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/model"
	"github.com/hupe1980/estatemesh/tool"
)

const analysisInstructions = `You are a data analyst. Examine the provided data and answer the question about it.
Point out trends, outliers and totals where relevant. Be concise and concrete; do not invent numbers that are not in the data.`

// NewAnalysisSkill returns a tool that asks the model to analyze a chunk of
// data with respect to a question.
func NewAnalysisSkill(llm model.Model) tool.Tool {
	type args struct {
		Data     string `json:"data" description:"The data to analyze, as text (CSV, table or JSON)"`
		Question string `json:"question,omitempty" description:"What to find out about the data"`
	}

	return tool.NewFunctionToolFromStruct(
		"data_analyzer",
		"Analyze data and answer questions about trends, outliers and aggregates",
		args{},
		func(ctx context.Context, params map[string]any) (any, error) {
			data, _ := params["data"].(string)
			question, _ := params["question"].(string)
			if question == "" {
				question = "Summarize the notable findings in this data."
			}

			answer, err := model.Text(ctx, llm, model.Request{
				Instructions: analysisInstructions,
				Messages: []core.Message{
					core.NewUserMessage(fmt.Sprintf("Data:\n%s\n\nQuestion: %s", data, question)),
				},
			})
			if err != nil {
				return nil, fmt.Errorf("analyze data: %w", err)
			}
			return answer, nil
		},
	)
}
