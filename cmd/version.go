package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/ajxudir/heldback/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long:  `Show version, build date, and system information.`,
	Run:   runVersion,
}

// runVersion executes the version command to display build and version
// information.
//
// Outputs the Go version, build date, git commit hash, and semantic
// version to stdout.
func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Fprintf(out, "  Date:    %s\n", BuildTime)
	}
	if GitCommit != "" {
		fmt.Fprintf(out, "  Git:     %s\n", GitCommit)
	}
	fmt.Fprintf(out, "  Version: %s\n", Version)
}
