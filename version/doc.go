// Package version carries the build version of catalogq binaries.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/catalogq/version.Version=1.0.0" ./cmd/catalogq
//
// Missing values fall back to the VCS stamp the Go toolchain embeds.
package version
