package mcp

import (
	"context"

	"github.com/custodia-labs/gwork-cli/internal/core/ports/driving"
)

// Ports aggregates the gateway factories the MCP server drives. The
// underlying API transport is not safe for concurrent reuse, so the
// server constructs a fresh gateway per tool invocation instead of
// holding long-lived service instances.
type Ports struct {
	// Tabular builds a tabular (spreadsheet) gateway for one invocation.
	Tabular func(ctx context.Context) (driving.TabularService, error)

	// Storage builds a drive-storage gateway for one invocation.
	Storage func(ctx context.Context) (driving.StorageService, error)

	// Messaging builds a mailbox gateway for one invocation.
	Messaging func(ctx context.Context) (driving.MessagingService, error)
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Tabular == nil {
		return ErrMissingTabularFactory
	}
	if p.Storage == nil {
		return ErrMissingStorageFactory
	}
	if p.Messaging == nil {
		return ErrMissingMessagingFactory
	}
	return nil
}
