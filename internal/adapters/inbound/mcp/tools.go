package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	appconfig "github.com/commitcraft/commitcraft/internal/adapters/outbound/config"
	"github.com/commitcraft/commitcraft/internal/adapters/outbound/gitdiff"
	"github.com/commitcraft/commitcraft/internal/adapters/outbound/msgfile"
	"github.com/commitcraft/commitcraft/internal/application"
	"github.com/commitcraft/commitcraft/internal/domain"
)

// registerTools registers all CommitCraft MCP tools on the given server.
func registerTools(s *server.MCPServer, repoPath string) {
	// 1. commitcraft_generate
	s.AddTool(
		mcplib.NewTool("commitcraft_generate",
			mcplib.WithDescription("Classify the staged diff and return a draft commit message with its classification as JSON"),
			mcplib.WithString("summary", mcplib.Description("Override for the derived subject summary")),
		),
		handleGenerate(repoPath),
	)

	// 2. commitcraft_validate
	s.AddTool(
		mcplib.NewTool("commitcraft_validate",
			mcplib.WithDescription("Validate commit message text against the configured format rules, returning violations as JSON"),
			mcplib.WithString("message",
				mcplib.Required(),
				mcplib.Description("Commit message text to validate"),
			),
		),
		handleValidate(repoPath),
	)

	// 3. commitcraft_config
	s.AddTool(
		mcplib.NewTool("commitcraft_config",
			mcplib.WithDescription("Return the effective configuration (verbs, indicators, sections, format rules) as JSON"),
		),
		handleConfig(repoPath),
	)
}

func newServices(repoPath string) (*application.GenerateService, *application.VerifyService) {
	loader := appconfig.New(repoPath)
	store := msgfile.New()
	return application.NewGenerateService(loader, gitdiff.New(), store),
		application.NewVerifyService(loader, store)
}

func handleGenerate(repoPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		overrides := domain.Overrides{
			Summary: request.GetString("summary", ""),
		}

		generateSvc, _ := newServices(repoPath)
		draft, err := generateSvc.Generate(repoPath, overrides)
		if err != nil {
			return errorResult(fmt.Sprintf("generate failed: %v", err)), nil
		}

		return jsonResult(struct {
			Message        string                      `json:"message"`
			Classification domain.ClassificationResult `json:"classification"`
		}{
			Message:        draft.Message.Render(),
			Classification: draft.Classification,
		})
	}
}

func handleValidate(repoPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		message, err := request.RequireString("message")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		_, verifySvc := newServices(repoPath)
		report, err := verifySvc.VerifyText(message)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleConfig(repoPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := appconfig.New(repoPath).Load()
		if err != nil {
			return errorResult(fmt.Sprintf("loading config failed: %v", err)), nil
		}
		return jsonResult(cfg)
	}
}

// jsonResult marshals v and returns it as text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
