// Package tools exposes the analysis core as callable tools for external agents
package tools

import (
	"context"
	"encoding/json"
)

// Tool is one operation callable over MCP. Execute returns a ToolResult
// envelope; a non-nil error means the call could not be answered at all
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]interface{}
	Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

// ToolRegistry holds all available tools in registration order
type ToolRegistry struct {
	order []string
	tools map[string]Tool
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry, replacing one with the same name
func (r *ToolRegistry) Register(tool Tool) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools
func (r *ToolRegistry) List() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// ToolResult is the envelope every tool returns
type ToolResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// NewSuccessResult wraps data in a successful envelope
func NewSuccessResult(data interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ToolResult{Success: true, Data: payload})
}

// NewErrorResult reports a failure the caller can act on, such as bad input
// Internal failures are returned as Go errors instead
func NewErrorResult(errMsg string) (json.RawMessage, error) {
	return json.Marshal(ToolResult{Error: errMsg})
}

// RegisterAll registers the resume analysis tool followed by the profile tools
func RegisterAll(registry *ToolRegistry, analyzer TextAnalyzer, store ProfileStore) {
	registry.Register(NewAnalyzeResumeTextTool(analyzer))
	registry.Register(NewListJobProfilesTool(store))
	registry.Register(NewCreateJobProfileTool(store))
	registry.Register(NewDeleteJobProfileTool(store))
}

// objectSchema describes a JSON object input whose properties are all strings
func objectSchema(properties map[string]string, required ...string) map[string]interface{} {
	props := make(map[string]interface{}, len(properties))
	for name, description := range properties {
		props[name] = map[string]interface{}{
			"type":        "string",
			"description": description,
		}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
