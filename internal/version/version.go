// Package version holds the build version, overridable at link time with
// -ldflags "-X homeledger/internal/version.Version=v1.2.3".
package version

// Version is the current release of the server.
var Version = "dev"
