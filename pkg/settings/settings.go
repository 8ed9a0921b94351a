// Package settings provides build metadata, runtime configuration, and
// context helpers used across the prcx CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "prcx"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// KeyMode selects the navigation key layout for the editor.
type KeyMode string

const (
	KeyModeDefault KeyMode = "default"
	KeyModeVim     KeyMode = "vim"
)

// Valid reports whether the mode names a known layout.
func (m KeyMode) Valid() bool {
	return m == KeyModeDefault || m == KeyModeVim
}

// Run holds configuration settings for a single execution of the application:
// logging level, the label table and document to open, and presentation
// options.
type Run struct {
	MinLogLevel  int8
	LabelsPath   string
	DocumentPath string
	NoColor      bool
	KeyMode      KeyMode
}

// NewCliParams returns a Run populated with the CLI defaults: info-level
// logging, the default key layout, and no document preloaded.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		KeyMode:     KeyModeDefault,
	}
}
