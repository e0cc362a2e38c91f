// Package cmd implements the command-line interface for heldback.
// It provides commands for reporting held-back packages, inverting the
// relation for a single package, and discovering package repositories
// on a source host.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/heldback/pkg/config"
	"github.com/ajxudir/heldback/pkg/errors"
	"github.com/ajxudir/heldback/pkg/heldback"
	"github.com/ajxudir/heldback/pkg/verbose"
)

var exitFunc = os.Exit

var (
	verboseFlag  bool
	traceFlag    bool
	configFlag   string
	registryFlag []string
)

var rootCmd = &cobra.Command{
	Use:   "heldback",
	Short: "Registry compatibility-bound analyzer",
	Long: `Analyze package registry metadata to find packages whose declared
compatibility bounds exclude the latest available version of a dependency.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if traceFlag {
			verbose.EnableTrace()
		} else if verboseFlag {
			verbose.Enable()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with the appropriate code:
//   - 0: Success
//   - 2: Computation failure (structural fault or registry inconsistency)
//   - 3: Configuration or credential error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "Enable trace output (implies --verbose)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default .heldback.yml)")
	rootCmd.PersistentFlags().StringArrayVar(&registryFlag, "registry", nil, "Registry source directory (repeatable, overrides config)")

	// Commands ordered logically: info → config → workflow (report → by → discover)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(byCmd)
	rootCmd.AddCommand(discoverCmd)
}

// loadConfig loads the effective configuration for a command run,
// applying any --registry flag overrides on top of the config file.
//
// Returns:
//   - *config.Config: The effective configuration
//   - error: ExitError with ExitConfigError when loading fails
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag, ".")
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}

	if len(registryFlag) > 0 {
		cfg.Registries = append([]string{}, registryFlag...)
	}

	return cfg, nil
}

// newEngine builds the held-back engine from configuration, requiring
// at least one registry source.
//
// Returns:
//   - *heldback.Engine: The configured engine
//   - error: ExitError with ExitConfigError when no source is configured
func newEngine(cfg *config.Config) (*heldback.Engine, error) {
	if len(cfg.Registries) == 0 {
		return nil, &errors.ExitError{
			Code:    errors.ExitConfigError,
			Message: "no registry sources configured: use --registry or a .heldback.yml",
		}
	}

	return heldback.New(cfg.Registries, cfg.StdlibSet()), nil
}
