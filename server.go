package ragserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const Version = "1.0.0"

// NewMCPServer exposes the chat pipeline as MCP tools.
func NewMCPServer(client *Client, name string) *server.MCPServer {
	s := server.NewMCPServer(name, Version, server.WithToolCapabilities(false))

	chatTool := mcp.NewTool("chat",
		mcp.WithDescription("Ask the MIDC Land Bank assistant about available plots, industrial areas, rates, and regional offices. Questions may be in English, Marathi, or transliterated Marathi."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The user's question")),
		mcp.WithString("session_id", mcp.Description("Session ID for follow-up questions; omit to start a new session")),
	)
	s.AddTool(chatTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sessionID := req.GetString("session_id", "")

		result, err := client.Chat(ctx, sessionID, question)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
		}
		return jsonResult(result)
	})

	searchTool := mcp.NewTool("search_plots",
		mcp.WithDescription("Search indexed land-bank plots. The query is rewritten (transliteration, synonyms, spelling, regional-office context) before vector search."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithNumber("top_k", mcp.Description("Maximum number of plots to return")),
	)
	s.AddTool(searchTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		topK := req.GetInt("top_k", 0)

		results, err := client.Search(ctx, q, topK)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return jsonResult(results)
	})

	ingestTool := mcp.NewTool("ingest_plots",
		mcp.WithDescription("Re-index the scraped plot dataset into the vector store. Replaces the previous snapshot."),
	)
	s.AddTool(ingestTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		count, err := client.Ingest(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("ingest failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("ingested %d plots", count)), nil
	})

	sampleTool := mcp.NewTool("sample_questions",
		mcp.WithDescription("Get suggested starter questions for the assistant."),
	)
	s.AddTool(sampleTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(strings.Join(client.SampleQuestions(), "\n")), nil
	})

	clearTool := mcp.NewTool("clear_memory",
		mcp.WithDescription("Clear the conversation history of a session and end the session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to clear")),
	)
	s.AddTool(clearTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := req.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.ClearMemory(ctx, sessionID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("clear failed: %v", err)), nil
		}
		return mcp.NewToolResultText("conversation memory cleared"), nil
	})

	summaryTool := mcp.NewTool("memory_summary",
		mcp.WithDescription("Show the stored conversation history of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to summarize")),
	)
	s.AddTool(summaryTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := req.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		summary, err := client.MemorySummary(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
		}
		return mcp.NewToolResultText(summary), nil
	})

	statsTool := mcp.NewTool("stats",
		mcp.WithDescription("Report indexed document and session counts."),
	)
	s.AddTool(statsTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := client.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
		}
		return jsonResult(stats)
	})

	return s
}

// ServeStdio runs the MCP server on stdin/stdout until the client
// disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
