// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes peak log tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/climbservice"
	"github.com/starford/peaklog/internal/sorter"
)

// LogFormatURI identifies the log format resource.
const LogFormatURI = "peaklog://log-format"

// Server wraps the MCP server with peak log tools.
type Server struct {
	mcp *server.MCPServer
	svc *climbservice.Service
}

// New creates a new MCP server with all peak log tools registered.
// svc must already be loaded.
func New(svc *climbservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Peaklog",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_peaks",
		mcp.WithDescription("List the Colorado fourteeners in the catalog. "+
			"Peak names returned here are the only names log_climb accepts."),
		mcp.WithBoolean("names_only", mcp.Description("Return sorted names instead of full records")),
	), s.listPeaks)

	s.mcp.AddTool(mcp.NewTool("log_climb",
		mcp.WithDescription("Record a climb of a catalog peak. The date must be YYYY-MM-DD, "+
			"not in the future and no more than 100 years ago."),
		mcp.WithString("peak_name", mcp.Required(), mcp.Description("Exact catalog peak name (e.g. Longs Peak)")),
		mcp.WithString("date_climbed", mcp.Required(), mcp.Description("Date climbed, YYYY-MM-DD")),
		mcp.WithString("notes", mcp.Description("Optional free-form notes")),
	), s.logClimb)

	s.mcp.AddTool(mcp.NewTool("remove_climb",
		mcp.WithDescription("Remove every logged climb of a peak on a date."),
		mcp.WithString("peak_name", mcp.Required(), mcp.Description("Exact catalog peak name")),
		mcp.WithString("date_climbed", mcp.Required(), mcp.Description("Date climbed, YYYY-MM-DD")),
	), s.removeClimb)

	s.mcp.AddTool(mcp.NewTool("list_climbs",
		mcp.WithDescription("List logged climbs in the requested order."),
		mcp.WithString("sort",
			mcp.Description("Sort order (default date-climbed, newest first)"),
			mcp.Enum(string(sorter.ByDate), string(sorter.ByName), string(sorter.ByRank)),
		),
	), s.listClimbs)

	s.mcp.AddTool(mcp.NewTool("get_progress",
		mcp.WithDescription("Distinct peaks climbed, catalog size and percent complete."),
	), s.getProgress)

	s.mcp.AddTool(mcp.NewTool("get_map_markers",
		mcp.WithDescription("One marker per climbed peak with coordinates and all dates climbed."),
	), s.getMapMarkers)

	s.mcp.AddResource(
		mcp.NewResource(LogFormatURI, "Peak Log Format",
			mcp.WithResourceDescription("Persisted peak log record format and input rules."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLogFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// toolError turns a service error into a tool error result. Validation
// failures keep their user-facing text.
func toolError(err error) *mcp.CallToolResult {
	if apperr.IsValidation(err) {
		var msgs []string
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				msgs = append(msgs, userMessage(e))
			}
		} else {
			msgs = append(msgs, userMessage(err))
		}
		out, _ := json.Marshal(map[string]any{"error": "validation failed", "messages": msgs})
		return mcp.NewToolResultError(string(out))
	}
	return mcp.NewToolResultError(err.Error())
}

func userMessage(err error) string {
	for _, s := range []error{apperr.ErrMissingSelection, apperr.ErrNotInCatalog, apperr.ErrMissingDate, apperr.ErrDateOutOfRange} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}

func (s *Server) listPeaks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if req.GetBool("names_only", false) {
		return jsonResult(s.svc.PeakNames(ctx))
	}
	return jsonResult(s.svc.Peaks(ctx))
}

func (s *Server) logClimb(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("peak_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date_climbed")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes := req.GetString("notes", "")

	entry, err := s.svc.Log(ctx, name, date, notes)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(entry)
}

func (s *Server) removeClimb(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("peak_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date_climbed")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	n, err := s.svc.Remove(ctx, name, date)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed: %d", n)), nil
}

func (s *Server) listClimbs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	climbs, err := s.svc.List(ctx, req.GetString("sort", ""))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(climbs)
}

func (s *Server) getProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Progress(ctx))
}

func (s *Server) getMapMarkers(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.MapMarkers(ctx))
}

func (s *Server) readLogFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      LogFormatURI,
			MIMEType: "text/markdown",
			Text:     LogFormatContract,
		},
	}, nil
}
