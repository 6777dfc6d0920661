// Package mcpserver wires the delegation engine into an MCP server.
//
// This is a composition root: it creates tool, resource, and prompt
// definitions and injects the delegator into their handlers. No
// delegation logic lives here.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hiveworks/swarmrouter/internal/delegate"
	"github.com/hiveworks/swarmrouter/internal/version"
)

// New creates the MCP server with the delegation tools (delegate_task,
// get_task_status, swarm_status, list_tasks), the swarm status/tasks
// resources, and the delegation-analysis prompt registered.
func New(d *delegate.Delegator) *server.MCPServer {
	s := server.NewMCPServer(
		"swarmrouter",
		version.Get(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	delegateTool := mcp.NewTool("delegate_task",
		mcp.WithDescription("Delegate a task to the bee swarm for efficient execution. "+
			"The swarm analyzes the task and recruits bees using coordination patterns "+
			"inspired by real bee behavior."),
		mcp.WithString("task_description",
			mcp.Required(),
			mcp.Description("Description of the task to delegate"),
		),
		mcp.WithString("task_type",
			mcp.Description("Type of bee dance (waggle, round, scout, tremble, converge, disperse)"),
		),
		mcp.WithString("priority",
			mcp.Description("Task priority (low, medium, high, critical)"),
		),
		mcp.WithNumber("max_tokens",
			mcp.Description("Maximum token budget for the task"),
		),
		mcp.WithArray("subtasks",
			mcp.Description("Optional list of subtasks (auto-generated if not provided)"),
		),
	)
	s.AddTool(delegateTool, handleDelegate(d))

	statusTool := mcp.NewTool("get_task_status",
		mcp.WithDescription("Get the current status of a delegated task."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to check"),
		),
	)
	s.AddTool(statusTool, handleStatus(d))

	swarmStatusTool := mcp.NewTool("swarm_status",
		mcp.WithDescription("Get overall swarm statistics: task counts, bees deployed, "+
			"average token savings, and the dance distribution."),
	)
	s.AddTool(swarmStatusTool, handleSwarmStatus(d))

	listTool := mcp.NewTool("list_tasks",
		mcp.WithDescription("List all tasks known to the swarm, most recent last."),
	)
	s.AddTool(listTool, handleListTasks(d))

	statusResource := mcp.NewResource("swarm://status", "Swarm status",
		mcp.WithResourceDescription("Overall swarm status and statistics"),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(statusResource, handleStatusResource(d))

	tasksResource := mcp.NewResource("swarm://tasks", "Swarm tasks",
		mcp.WithResourceDescription("All tasks known to the swarm"),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(tasksResource, handleTasksResource(d))

	analyzePrompt := mcp.NewPrompt("analyze_task_for_delegation",
		mcp.WithPromptDescription("Analyze a task to determine the best delegation strategy."),
		mcp.WithArgument("task_description",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("The task to analyze"),
		),
	)
	s.AddPrompt(analyzePrompt, handleAnalyzePrompt)

	return s
}

func handleDelegate(d *delegate.Delegator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		description, err := req.RequireString("task_description")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dreq := delegate.Request{
			Description: description,
			TaskType:    req.GetString("task_type", ""),
			Priority:    req.GetString("priority", ""),
			MaxTokens:   req.GetInt("max_tokens", 0),
			Subtasks:    req.GetStringSlice("subtasks", nil),
		}
		resp, err := d.Delegate(dreq)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(resp)
	}
}

func handleStatus(d *delegate.Delegator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID, err := req.RequireString("task_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		task := d.Task(taskID)
		if task == nil {
			return mcp.NewToolResultError(fmt.Sprintf("task %s not found", taskID)), nil
		}

		status := map[string]any{
			"task_id":       task.ID,
			"status":        task.Status,
			"dance_type":    task.Dance,
			"assigned_bees": len(task.Bees),
			"created_at":    task.CreatedAt,
			"completed_at":  task.CompletedAt,
			"token_savings": task.TokenSavings(),
		}
		return jsonResult(status)
	}
}

func handleSwarmStatus(d *delegate.Delegator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(d.Statistics())
	}
}

func handleListTasks(d *delegate.Delegator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(d.Tasks())
	}
}

func handleStatusResource(d *delegate.Delegator) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(req.Params.URI, d.Statistics())
	}
}

func handleTasksResource(d *delegate.Delegator) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(req.Params.URI, d.Tasks())
	}
}

func handleAnalyzePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	description := req.Params.Arguments["task_description"]
	text := fmt.Sprintf(`Analyze the following task and suggest the best bee dance type for delegation:

Task: %s

Consider these dance types and their purposes:
- WAGGLE: Complex tasks requiring decomposition (70%%+ token savings)
- ROUND: Simple notifications or updates (10-20%% token savings)
- SCOUT: Research and exploration tasks (50%% token savings)
- TREMBLE: Error handling and debugging (30%% token savings)
- CONVERGE: Consensus building among agents (60%% token savings)
- DISPERSE: Parallel independent tasks (75%% token savings)

Analyze the task for:
1. Complexity level
2. Need for decomposition
3. Parallelization potential
4. Type of cognitive work required

Suggest the optimal dance type and explain why.`, description)

	return mcp.NewGetPromptResult(
		"Delegation strategy analysis",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to use the swarm effectively.
func serverInstructions() string {
	return `You have access to SwarmRouter, a task-delegation MCP server.

SwarmRouter coordinates fictitious AI worker bees using dance types:
- waggle: complex tasks requiring decomposition
- round: simple notifications or quick updates
- scout: research and exploration
- tremble: error handling and debugging
- converge: consensus building
- disperse: parallel independent execution

Use delegate_task to hand a task to the swarm. Omit task_type to let the
swarm classify the task from its description; pass subtasks to control the
decomposition yourself. Use get_task_status to follow up on a task,
swarm_status for aggregate statistics, and list_tasks to see everything
the swarm has handled.`
}
