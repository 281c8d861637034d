// Package driving defines the interfaces through which entry points
// (CLI, MCP) drive the core gateways.
package driving
