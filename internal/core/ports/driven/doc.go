// Package driven defines the interfaces the core requires from
// infrastructure adapters (storage, config, token plumbing).
package driven
