// Package buildinfo carries the version stamped into sketchify binaries.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/sketchify/sketchify/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/sketchify/sketchify/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/sketchify/sketchify/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/sketchify
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Stamped at link time. Version falls back to the module version recorded
// by "go install" when left at "dev".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if Version != "dev" {
		return
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
	}
}

// String returns the three-line summary printed by "sketchify --version".
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
