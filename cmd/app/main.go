// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/impactrealty/backoffice/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "backoffice",
		Usage:   "Back-office agent invocation gateway",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "check-agents",
				Usage: "Query the health of every registered agent destination",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCheckAgents(ctx, cmd.String("format"), commands.DefaultIO())
				},
			},
			{
				Name:  "invoke-agent",
				Usage: "Send one invocation to a named agent destination",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "destination",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Destination name (e.g., compliance, recruiting)",
					},
					&cli.StringFlag{
						Name:    "payload",
						Aliases: []string{"p"},
						Value:   "{}",
						Usage:   "JSON payload to send",
					},
					&cli.StringFlag{
						Name:    "correlation-id",
						Aliases: []string{"c"},
						Usage:   "Correlation id (generated when omitted)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunInvokeAgent(
						ctx,
						cmd.String("destination"),
						cmd.String("payload"),
						cmd.String("correlation-id"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
