// Package version holds build information for the compilab CLI.
// The variables can be overridden at build time via -ldflags "-X ...".
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the serializable form for `compilab version --format json`.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	GoVersion  string `json:"go_version"`
}

func Current() Info {
	return Info{
		Version:    Version,
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
	}
}

// Colored renders major.minor.patch in three colors, keeping any suffix
// (-dev, +build) plain. Non-semver strings are returned unchanged.
func Colored(v string, enabled bool) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	paint := func(c *color.Color, s string) string {
		if !enabled {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	return paint(majorColor, parts[0]) + "." + paint(minorColor, parts[1]) + "." + paint(patchColor, parts[2]) + suffix
}

// String formats info for humans. full adds commit and build details.
func (i Info) String(colored, full bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "compilab %s", Colored(i.Version, colored))
	if !full {
		return sb.String()
	}
	if i.GitCommit != "" {
		fmt.Fprintf(&sb, "\ncommit: %s", i.GitCommit)
		if i.GitMessage != "" {
			fmt.Fprintf(&sb, " (%s)", i.GitMessage)
		}
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&sb, "\nbuilt:  %s", i.BuildDate)
	}
	fmt.Fprintf(&sb, "\ngo:     %s", i.GoVersion)
	return sb.String()
}
