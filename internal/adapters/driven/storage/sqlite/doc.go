// Package sqlite implements the credentials store on a local SQLite
// database, so cached tokens survive across runs.
package sqlite
