// Package domain contains the core business entities for gwork.
// It has no dependencies on adapters or external services.
package domain
