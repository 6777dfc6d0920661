package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hiveworks/swarmrouter/internal/delegate"
)

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected content in tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestDelegateTool(t *testing.T) {
	d := delegate.New()
	handler := handleDelegate(d)

	result, err := handler(context.Background(), callToolRequest(map[string]any{
		"task_description": "notify the team of a status update",
		"max_tokens":       float64(8000),
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error result: %s", textContent(t, result))
	}

	var resp delegate.Response
	if err := json.Unmarshal([]byte(textContent(t, result)), &resp); err != nil {
		t.Fatalf("decoding tool result: %v", err)
	}
	if resp.Dance != "round" {
		t.Errorf("expected round dance, got %q", resp.Dance)
	}
	if resp.AssignedBees != 1 {
		t.Errorf("expected 1 bee, got %d", resp.AssignedBees)
	}
	if resp.EstimatedTokenSavings != 10.0 {
		t.Errorf("expected 10%% savings, got %v", resp.EstimatedTokenSavings)
	}

	if d.Task(resp.TaskID) == nil {
		t.Error("expected delegated task recorded")
	}
}

func TestDelegateTool_MissingDescription(t *testing.T) {
	d := delegate.New()
	handler := handleDelegate(d)

	result, err := handler(context.Background(), callToolRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result without task_description")
	}
}

func TestDelegateTool_InvalidRequest(t *testing.T) {
	d := delegate.New()
	handler := handleDelegate(d)

	result, err := handler(context.Background(), callToolRequest(map[string]any{
		"task_description": "ok",
		"priority":         "urgent",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for unknown priority")
	}
	if d.Statistics().TotalTasks != 0 {
		t.Error("expected no task recorded for rejected request")
	}
}

func TestStatusTool(t *testing.T) {
	d := delegate.New()
	dr, err := d.Delegate(delegate.Request{Description: "research caching", MaxTokens: 6000})
	if err != nil {
		t.Fatalf("Delegate failed: %v", err)
	}

	handler := handleStatus(d)
	result, err := handler(context.Background(), callToolRequest(map[string]any{
		"task_id": dr.TaskID,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got: %s", textContent(t, result))
	}

	var status map[string]any
	if err := json.Unmarshal([]byte(textContent(t, result)), &status); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if status["task_id"] != dr.TaskID {
		t.Errorf("expected task id %q, got %v", dr.TaskID, status["task_id"])
	}
	if status["status"] != "assigned" {
		t.Errorf("expected assigned, got %v", status["status"])
	}
}

func TestStatusTool_UnknownTask(t *testing.T) {
	handler := handleStatus(delegate.New())
	result, err := handler(context.Background(), callToolRequest(map[string]any{
		"task_id": "task_missing",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for unknown task")
	}
}

func TestSwarmStatusTool(t *testing.T) {
	d := delegate.New()
	if _, err := d.Delegate(delegate.Request{Description: "notify the team"}); err != nil {
		t.Fatalf("Delegate failed: %v", err)
	}

	handler := handleSwarmStatus(d)
	result, err := handler(context.Background(), callToolRequest(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got: %s", textContent(t, result))
	}

	var stats map[string]any
	if err := json.Unmarshal([]byte(textContent(t, result)), &stats); err != nil {
		t.Fatalf("decoding statistics: %v", err)
	}
	if stats["total_tasks"] != float64(1) {
		t.Errorf("expected 1 total task, got %v", stats["total_tasks"])
	}
}

func TestListTasksTool(t *testing.T) {
	d := delegate.New()
	dr, err := d.Delegate(delegate.Request{Description: "research caching options"})
	if err != nil {
		t.Fatalf("Delegate failed: %v", err)
	}

	handler := handleListTasks(d)
	result, err := handler(context.Background(), callToolRequest(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got: %s", textContent(t, result))
	}
	if !strings.Contains(textContent(t, result), dr.TaskID) {
		t.Error("expected delegated task in list")
	}
}

func TestStatusResource(t *testing.T) {
	d := delegate.New()
	if _, err := d.Delegate(delegate.Request{Description: "notify"}); err != nil {
		t.Fatalf("Delegate failed: %v", err)
	}

	handler := handleStatusResource(d)
	req := mcp.ReadResourceRequest{}
	req.Params.URI = "swarm://status"

	contents, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected text contents, got %T", contents[0])
	}
	if text.URI != "swarm://status" {
		t.Errorf("expected request URI echoed, got %q", text.URI)
	}
	if !strings.Contains(text.Text, "total_tasks") {
		t.Errorf("expected statistics JSON, got %s", text.Text)
	}
}

func TestAnalyzePrompt(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"task_description": "migrate the database"}

	result, err := handleAnalyzePrompt(context.Background(), req)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(result.Messages))
	}
	text, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Messages[0].Content)
	}
	if !strings.Contains(text.Text, "migrate the database") {
		t.Error("expected task description embedded in prompt")
	}
	if !strings.Contains(text.Text, "WAGGLE") {
		t.Error("expected dance overview in prompt")
	}
}

func TestNew(t *testing.T) {
	s := New(delegate.New())
	if s == nil {
		t.Fatal("expected server")
	}
}
