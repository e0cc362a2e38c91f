package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var byVersionFlag string

var byCmd = &cobra.Command{
	Use:   "by NAME",
	Short: "Show which packages hold back a package",
	Long: `Compute the held-back relation and invert it for one package,
printing the holders one per line in ascending order.

With --version, a prospective (not-yet-released) version is injected for
the package before computing, answering "who would hold back this
version". Registry state on disk is never modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runBy,
}

func init() {
	byCmd.Flags().StringVar(&byVersionFlag, "version", "", "Prospective version to inject for NAME")
}

// runBy executes the by command.
//
// It performs the following operations:
//   - Loads configuration and builds the engine
//   - Computes a fresh held-back relation, injecting the prospective
//     version when one was given
//   - Prints the distinct holder names, sorted ascending, one per line
func runBy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	holders, err := engine.WhoHolds(args[0], byVersionFlag)
	if err != nil {
		return err
	}

	for _, holder := range holders {
		fmt.Fprintln(cmd.OutOrStdout(), holder)
	}

	return nil
}
