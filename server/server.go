package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/resources"
	"github.com/Epistemic-Technology/scholar-mcp/tools"
)

const (
	Name    = "scholar-mcp"
	Version = "v1.0.0"
)

// addTool registers tool with the client and logger bound into handler.
func addTool[In, Out any](
	server *mcp.Server,
	tool *mcp.Tool,
	handler func(context.Context, *mcp.CallToolRequest, In, tools.ScholarClient, logger.Logger) (*mcp.CallToolResult, *Out, error),
	client tools.ScholarClient,
	log logger.Logger,
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, query In) (*mcp.CallToolResult, *Out, error) {
		return handler(ctx, req, query, client, log)
	})
}

// CreateServer builds the MCP server with every Semantic Scholar tool and
// resource template registered against client.
func CreateServer(client tools.ScholarClient, log logger.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, nil)
	limits := client.Limits()

	// Papers
	addTool(server, tools.PaperSearchTool(limits), tools.PaperSearchToolHandler, client, log)
	addTool(server, tools.PaperDetailsTool(), tools.PaperDetailsToolHandler, client, log)
	addTool(server, tools.PaperMatchTool(), tools.PaperMatchToolHandler, client, log)
	addTool(server, tools.PaperAutocompleteTool(), tools.PaperAutocompleteToolHandler, client, log)
	addTool(server, tools.PapersBatchTool(limits), tools.PapersBatchToolHandler, client, log)

	// Authors
	addTool(server, tools.AuthorSearchTool(limits), tools.AuthorSearchToolHandler, client, log)
	addTool(server, tools.AuthorDetailsTool(), tools.AuthorDetailsToolHandler, client, log)
	addTool(server, tools.AuthorPapersTool(limits), tools.AuthorPapersToolHandler, client, log)
	addTool(server, tools.AuthorsBatchTool(limits), tools.AuthorsBatchToolHandler, client, log)

	// Citation graph, full text and recommendations
	addTool(server, tools.CitationsReferencesTool(limits), tools.CitationsReferencesToolHandler, client, log)
	addTool(server, tools.SnippetSearchTool(limits), tools.SnippetSearchToolHandler, client, log)
	addTool(server, tools.RecommendationsFromListsTool(limits), tools.RecommendationsFromListsToolHandler, client, log)
	addTool(server, tools.RecommendationsFromPaperTool(limits), tools.RecommendationsFromPaperToolHandler, client, log)

	// Bibliography
	addTool(server, tools.BibliographyExportTool(limits), tools.BibliographyExportToolHandler, client, log)

	paperResourceHandler := resources.NewPaperResourceHandler(client)
	for _, tmpl := range resources.Templates() {
		server.AddResourceTemplate(tmpl, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return paperResourceHandler.ReadResource(ctx, req.Params.URI)
		})
	}

	log.Info("Registered Semantic Scholar tools and resource templates")
	return server
}
