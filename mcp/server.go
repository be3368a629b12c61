// Package mcp exposes the tink engine as Model Context Protocol tools so
// an assistant can unify natures, match archetypes and run weaves.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nathoo/tink/engine"
	"github.com/nathoo/tink/engine/state"
)

type Server struct {
	defs   *state.Defs
	logger engine.Logger
	mcp    *sdk.Server
}

// NewServer registers the tools over defs. A nil defs serves the built-in
// catalogs. logger may be nil.
func NewServer(defs *state.Defs, version string, logger engine.Logger) *Server {
	if defs == nil {
		defs = state.Default()
	}
	s := &Server{
		defs:   defs,
		logger: logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "tink",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
