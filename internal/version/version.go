// Package version carries the build metadata of skc. The variables can be
// overridden at link time with -ldflags "-X skc/internal/version.Version=...".
package version

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the compiler.
	Version = "0.1.0-dev"

	GitCommit = ""

	// BuildDate is ISO-8601 when set.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
	metaColor    = color.New(color.Faint)
)

// Info is the machine-readable version record.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// Write prints the banner of the version command.
func Write(w io.Writer, colored bool) error {
	info := Current()
	name, ver, meta := fmt.Sprint, fmt.Sprint, fmt.Sprint
	if colored {
		name, ver, meta = nameColor.Sprint, versionColor.Sprint, metaColor.Sprint
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", name("skc"), ver(info.Version)); err != nil {
		return err
	}
	if info.GitCommit != "" {
		if _, err := fmt.Fprintf(w, "%s\n", meta("commit: "+info.GitCommit)); err != nil {
			return err
		}
	}
	if info.BuildDate != "" {
		if _, err := fmt.Fprintf(w, "%s\n", meta("built:  "+info.BuildDate)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", meta("go:     "+info.GoVersion))
	return err
}
