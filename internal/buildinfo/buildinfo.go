// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/ImamJamdar/CGPA/internal/buildinfo.Version=...
var Version = "3.0.0"

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/ImamJamdar/CGPA/internal/buildinfo.Commit=...
var Commit = ""

// BuildDate is the RFC3339 build timestamp.
// Inject via: -X github.com/ImamJamdar/CGPA/internal/buildinfo.BuildDate=...
var BuildDate = ""
