package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/heldback/pkg/config"
	"github.com/ajxudir/heldback/pkg/output"
)

var (
	reportColorFlag   bool
	reportNoColorFlag bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List packages whose compat bounds hold back a dependency",
	Long: `Build the registry index, cross-reference every package's declared
compatibility bounds against its dependencies' latest versions, and print
one line per holder with the violated bounds.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportColorFlag, "color", false, "Force color output")
	reportCmd.Flags().BoolVar(&reportNoColorFlag, "no-color", false, "Disable color output")
}

// runReport executes the report command.
//
// It performs the following operations:
//   - Loads configuration and builds the engine
//   - Computes the held-back relation over current registry state
//   - Prints the formatted report to stdout
//
// Any computation fault aborts the whole query; no partial report is
// printed.
func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	m, err := engine.HeldBackPackages(nil)
	if err != nil {
		return err
	}

	opts := output.Options{Color: colorEnabled(cfg)}
	return output.PrintHeldBack(cmd.OutOrStdout(), m, opts)
}

// colorEnabled resolves the effective color mode from flags, config,
// and the environment.
//
// Precedence: --no-color, then --color, then the config setting
// ("always", "never", or "auto"). In auto mode color is enabled only
// when NO_COLOR is unset and stdout is a terminal.
func colorEnabled(cfg *config.Config) bool {
	if reportNoColorFlag {
		return false
	}
	if reportColorFlag {
		return true
	}

	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
