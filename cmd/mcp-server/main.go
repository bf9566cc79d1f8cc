package main

import (
	"context"
	"os"

	"github.com/eshaffer321/studio-go/internal/config"
	"github.com/eshaffer321/studio-go/internal/logger"
	"github.com/eshaffer321/studio-go/pkg/studio"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// stdout carries the MCP protocol, logs go to stderr
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	client, err := studio.NewClient(&studio.ClientOptions{
		BaseURL:     cfg.API.BaseURL,
		LoginPath:   cfg.API.LoginPath,
		DefaultPath: cfg.API.DefaultPath,
		RetryConfig: cfg.RetryConfig(),
		Logger:      logger.NewAdapter(logger.GetLogger()),
		SentryDSN:   cfg.SentryDSN,
		Navigator: studio.NavigatorFunc(func(path string) {
			log.Warn().Str("path", path).Msg("studio session ended, restart with fresh credentials")
		}),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize studio client")
	}
	defer client.Close()

	ctx := context.Background()

	// Sign in with credentials when given, otherwise reuse whatever session
	// the backend recognises
	if phone := os.Getenv("STUDIO_PHONE"); phone != "" {
		if _, err := client.Auth.Login(ctx, phone, os.Getenv("STUDIO_PIN")); err != nil {
			log.Fatal().Err(err).Msg("studio login failed")
		}
	} else if client.Auth.Bootstrap(ctx) == nil {
		log.Warn().Msg("no studio session, tools will fail until STUDIO_PHONE and STUDIO_PIN are set")
	}

	// Create MCP server with v1.0.0 API
	impl := &mcp.Implementation{
		Name:    "studio",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	// Register all tools
	registerTools(server, client)

	// Run server over stdio transport
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func registerTools(server *mcp.Server, client *studio.Client) {
	tools := &studioTools{client: client}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the signed-in studio user: name, phone, role and email.",
	}, tools.GetProfile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_schedules",
		Description: "List class slots, optionally for a single day. Returns time, trainer, service, capacity and remaining spots.",
	}, tools.ListSchedules)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_bookings",
		Description: "List bookings. Customers see their own bookings; admins can list all of them.",
	}, tools.ListBookings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_trainers",
		Description: "List the studio's trainers with their specialization, experience and rating.",
	}, tools.ListTrainers)
}
