// Package build exposes build-time metadata injected via ldflags.
package build

import "go.uber.org/zap"

// Version, Commit, and Branch are set at build time by:
//
//	-ldflags "-X github.com/joestump/pagegen/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// Fields returns the build metadata as log fields.
func Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", Version),
		zap.String("commit", Commit),
		zap.String("branch", Branch),
	}
}
