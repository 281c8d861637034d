// Package file implements the ConfigStore port on a TOML file in the
// gwork config directory, with optional reload on file change.
package file
