// Package version exposes build metadata of the springlab binary.
//
// Values are injected at build time:
//
//	go build -ldflags "\
//	  -X github.com/epoint/springlab/version.Version=v1.2.0 \
//	  -X github.com/epoint/springlab/version.Revision=abc1234 \
//	  -X github.com/epoint/springlab/version.BuiltAt=2026-01-01T00:00:00Z" \
//	  ./cmd/springlab
//
// When they are left at their defaults, the module build info embedded by the
// Go toolchain (vcs.revision, vcs.time, main module version) is used instead.
package version
