package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionToolCall(t *testing.T) {
	sum := NewFunctionTool(
		"calculate_sum",
		"Calculate the sum of two numbers",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []string{"a", "b"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		},
	)

	result, err := sum.Call(context.Background(), map[string]any{"a": 1.5, "b": 2.5})
	require.NoError(t, err)
	assert.Equal(t, 4.0, result)
}

func TestFunctionToolValidationError(t *testing.T) {
	echo := NewFunctionTool(
		"echo",
		"Echo the text back",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string"},
			},
			"required": []string{"text"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["text"], nil
		},
	)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing required", map[string]any{}},
		{"wrong type", map[string]any{"text": 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := echo.Call(context.Background(), tt.args)
			require.Error(t, err)

			var toolErr *ToolError
			require.ErrorAs(t, err, &toolErr)
			assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
			assert.Equal(t, "echo", toolErr.Tool)
		})
	}
}

func TestFunctionToolExecutionError(t *testing.T) {
	failing := NewFunctionTool(
		"failing",
		"Always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(context.Context, map[string]any) (any, error) {
			return nil, errors.New("boom")
		},
	)

	_, err := failing.Call(context.Background(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Equal(t, "boom", toolErr.Message)
}

func TestFunctionToolPreservesCustomToolError(t *testing.T) {
	custom := NewFunctionTool(
		"custom",
		"Returns a custom tool error",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(context.Context, map[string]any) (any, error) {
			return nil, NewToolError("custom", "not allowed", "PERMISSION_DENIED")
		},
	)

	_, err := custom.Call(context.Background(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "PERMISSION_DENIED", toolErr.Code)
}

func TestNewFunctionToolFromStruct(t *testing.T) {
	type args struct {
		Question string `json:"question" description:"The question to answer"`
		Limit    *int   `json:"limit,omitempty"`
	}

	ft := NewFunctionToolFromStruct("ask", "Ask a question", args{},
		func(_ context.Context, params map[string]any) (any, error) {
			return params["question"], nil
		})

	schema := ft.Parameters()
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "question")
	assert.Contains(t, props, "limit")

	required, ok := schema["required"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"question"}, required)

	result, err := ft.Call(context.Background(), map[string]any{"question": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", result)
}

func TestToolErrorMessage(t *testing.T) {
	withCode := NewToolError("sql", "bad input", "VALIDATION_ERROR")
	assert.Equal(t, "tool error [VALIDATION_ERROR] in sql: bad input", withCode.Error())

	noCode := &ToolError{Tool: "sql", Message: "bad input"}
	assert.Equal(t, "tool error in sql: bad input", noCode.Error())
}
