// Package common holds process-wide values shared by the binaries.
package common

var (
	// PackageName is used as the metrics namespace and default log service.
	PackageName = "signature-registry"

	// Version is overwritten at build time via -ldflags.
	Version = "dev"
)
