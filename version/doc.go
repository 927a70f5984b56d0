// Package version carries the build identity of sitekit binaries.
//
// Version and commit are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/sitekit/version.Version=1.2.0" ./cmd/sitectl
//
// Missing values are filled from the module build info where available.
package version
