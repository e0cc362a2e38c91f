package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajxudir/heldback/pkg/discovery"
)

var discoverSuffixFlag string

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List package repositories on the configured source host",
	Long: `Enumerate repositories the configured access token can push to,
filter out forks and repositories not matching the package naming
convention, and print the deduplicated package names.

Requires an access token in ` + discovery.TokenEnvVar + ` (or ` + discovery.FallbackTokenEnvVar + `).`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverSuffixFlag, "suffix", "", "Repository name suffix to filter on (overrides config)")
}

// runDiscover executes the discover command.
//
// It performs the following operations:
//   - Loads configuration and resolves the naming-convention suffix
//   - Enumerates pushable repositories on the source host
//   - Prints the filtered package names one per line
func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	suffix := cfg.Discovery.Suffix
	if discoverSuffixFlag != "" {
		suffix = discoverSuffixFlag
	}

	names, err := discovery.FindPackages(cmd.Context(), discovery.Options{
		BaseURL: cfg.Discovery.Host,
		Suffix:  suffix,
	})
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}

	return nil
}
