package core

import "encoding/json"

// Role identifies the conversational author of a Message.
type Role string

const (
	// RoleSystem marks instruction messages injected by the application.
	RoleSystem Role = "system"
	// RoleUser marks messages authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks messages produced by an agent or model.
	RoleAssistant Role = "assistant"
	// RoleTool marks function call results fed back to the model.
	RoleTool Role = "tool"
)

// FunctionCall is a function invocation requested by a model.
// Unified across vendors so downstream logic does not need per-provider branching.
type FunctionCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"` // JSON string of arguments
}

// FunctionResponse carries the outcome of executing a FunctionCall.
type FunctionResponse struct {
	ID    string `json:"id"`   // Matches FunctionCall.ID
	Name  string `json:"name"` // Function that was executed
	Error string `json:"error,omitempty"`
}

// Message is a single entry in a conversation transcript. Content is always
// plain text; tool interactions ride on FunctionCalls / FunctionResponse.
type Message struct {
	Role             Role              `json:"role"`
	Content          string            `json:"content"`
	Name             string            `json:"name,omitempty"` // Authoring agent, if any
	FunctionCalls    []FunctionCall    `json:"function_calls,omitempty"`
	FunctionResponse *FunctionResponse `json:"function_response,omitempty"`
}

// NewSystemMessage creates a system role message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user role message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message attributed to the named agent.
func NewAssistantMessage(name, content string) Message {
	return Message{Role: RoleAssistant, Content: content, Name: name}
}

// NewFunctionResponseMessage creates a tool role message answering the given call.
func NewFunctionResponseMessage(call FunctionCall, content string, err error) Message {
	fr := &FunctionResponse{ID: call.ID, Name: call.Name}
	if err != nil {
		fr.Error = err.Error()
	}
	return Message{Role: RoleTool, Content: content, Name: call.Name, FunctionResponse: fr}
}
