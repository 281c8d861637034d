// Package services contains the application services that orchestrate
// domain logic over the driven ports.
package services
