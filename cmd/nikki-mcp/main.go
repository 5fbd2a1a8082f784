package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "nikki/internal/adapters/mcp"
	"nikki/internal/config"
	"nikki/internal/logger"
	"nikki/internal/session"
)

func main() {
	cfg := config.FromEnv()
	flag.StringVar((*string)(&cfg.Backend), "backend", string(cfg.Backend), "storage backend: gsheets, sqlite or file")
	flag.StringVar(&cfg.SheetID, "sheet", cfg.SheetID, "Google spreadsheet id")
	flag.StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "service-account JSON file (default: OS keyring)")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory for logs and local backends")
	flag.StringVar(&cfg.Schema, "schema", cfg.Schema, "schema version or YAML file")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	flag.Parse()

	// stdout carries the protocol, so logs only go to the file
	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataPath(), FileOnly: true}); err != nil {
		log.Fatalf("nikki-mcp: %v", err)
	}

	sess, err := session.Open(context.Background(), cfg, session.Options{})
	if err != nil {
		log.Fatalf("nikki-mcp: %v", err)
	}
	defer sess.Close()

	mcpServer := server.NewMCPServer(
		"nikki-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, sess.Diary())
	mcpadapter.RegisterWriteTools(mcpServer, sess.Diary())

	if err := server.ServeStdio(mcpServer); err != nil {
		sess.Close()
		log.Fatalf("nikki-mcp: %v", err)
	}
}
