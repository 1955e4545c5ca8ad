// Package version provides application version information.
// The version can be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/cox-analytics/internal/version.Version=v1.2.3" ./cmd/cox-analytics
package version

// Version defaults to "dev".
var Version = "dev"

// String returns the version line printed by -version.
func String() string {
	return "cox-analytics " + Version
}
