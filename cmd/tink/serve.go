package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nathoo/tink/engine"
	"github.com/nathoo/tink/logging"
	"github.com/nathoo/tink/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd(flags *sessionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
}

func runServe(cmd *cobra.Command, flags *sessionFlags) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	defs, err := loadDefs(cfg.Pack)
	if err != nil {
		return err
	}

	var logger engine.Logger
	if cfg.LogFile != "" {
		l, err := logging.New(cfg.LogFile)
		if err != nil {
			return err
		}
		defer l.Close()
		logger = l
	}

	server := mcp.NewServer(defs, version, logger)
	return server.Run(ctx, &sdk.StdioTransport{})
}
