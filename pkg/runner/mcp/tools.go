package mcp

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/timeutil"
)

type tools struct {
	svc *Service
}

func registerTools(srv *server.MCPServer, svc *Service) {
	t := tools{svc: svc}

	srv.AddTool(mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List journal entries, oldest first."),
		mcp.WithString("since",
			mcp.Description("Optional window such as 3d or 1w2d; only entries written within it are returned."),
		),
	), t.listEntries)

	srv.AddTool(mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entries by substring match across titles and text, newest first."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	), t.searchEntries)

	srv.AddTool(mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	), t.getEntry)

	srv.AddTool(mcp.NewTool(
		"add_entry",
		mcp.WithDescription("Write a new journal entry."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the entry."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Body of the entry."),
		),
	), t.addEntry)

	srv.AddTool(mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry permanently."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	), t.deleteEntry)

	names := make([]string, 0, len(analysis.Operations()))
	for _, op := range analysis.Operations() {
		names = append(names, op.String())
	}
	srv.AddTool(mcp.NewTool(
		"analyze_entry",
		mcp.WithDescription("Ask the model about an entry: its mood, reflections on it, or advice on the writing."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to analyze."),
		),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("What to ask for."),
			mcp.Enum(names...),
		),
	), t.analyzeEntry)

	srv.AddTool(mcp.NewTool(
		"get_profile",
		mcp.WithDescription("The name the journal greets its writer with."),
	), t.getProfile)

	srv.AddTool(mcp.NewTool(
		"set_profile",
		mcp.WithDescription("Set the name the journal greets its writer with."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The writer's name."),
		),
	), t.setProfile)
}

func (t tools) listEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	since, err := timeutil.ParseWindow(request.GetString("since", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := t.svc.ListEntries(ctx, since)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(map[string]any{
		"entries": results,
		"count":   len(results),
	})
}

func (t tools) searchEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := request.GetInt("limit", 20)

	results, err := t.svc.SearchEntries(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(map[string]any{
		"query":   query,
		"limit":   limit,
		"results": results,
		"count":   len(results),
	})
}

func (t tools) getEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dto, err := t.svc.EntryByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(dto)
}

func (t tools) addEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	dto, err := t.svc.AddEntry(ctx, args.Title, args.Text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(dto)
}

func (t tools) deleteEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deleted, err := t.svc.DeleteEntry(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(map[string]any{
		"id":      id,
		"deleted": deleted,
	})
}

func (t tools) analyzeEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("operation")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	op, err := analysis.ParseOperation(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := t.svc.Analyze(ctx, id, op)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(res)
}

func (t tools) getProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dto, err := t.svc.Profile(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(dto)
}

func (t tools) setProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dto, err := t.svc.SetProfile(ctx, strings.TrimSpace(name))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(dto)
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
