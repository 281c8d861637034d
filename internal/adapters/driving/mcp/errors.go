package mcp

import "errors"

// Port validation errors.
var (
	// ErrMissingTabularFactory indicates no tabular gateway factory was provided.
	ErrMissingTabularFactory = errors.New("mcp: tabular gateway factory is required")

	// ErrMissingStorageFactory indicates no storage gateway factory was provided.
	ErrMissingStorageFactory = errors.New("mcp: storage gateway factory is required")

	// ErrMissingMessagingFactory indicates no messaging gateway factory was provided.
	ErrMissingMessagingFactory = errors.New("mcp: messaging gateway factory is required")
)
