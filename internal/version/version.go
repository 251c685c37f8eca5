// Package version reports build information for the binaries.
package version

import (
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/iwvelando/loan-calculator/internal/version.Version=...".
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	Revision  string `json:"revision,omitempty"`
	Modified  bool   `json:"modified"`
}

// Get collects the linker-provided values plus whatever the Go toolchain
// embedded in the binary.
func Get() Info {
	info := Info{Version: Version, BuildTime: BuildTime}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = buildInfo.GoVersion
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

// String renders e.g. "loan-calculator dev (go1.24.1, 1a2b3c4d, modified)".
func (i Info) String() string {
	details := []string{}
	if i.GoVersion != "" {
		details = append(details, i.GoVersion)
	}
	if i.BuildTime != "unknown" && i.BuildTime != "" {
		details = append(details, "built "+i.BuildTime)
	}
	if rev := i.Revision; rev != "" {
		if len(rev) > 8 {
			rev = rev[:8]
		}
		details = append(details, rev)
	}
	if i.Modified {
		details = append(details, "modified")
	}

	s := "loan-calculator " + i.Version
	if len(details) > 0 {
		s += " (" + strings.Join(details, ", ") + ")"
	}
	return s
}
