package cmd

import (
	"fmt"
	"os"

	"github.com/rpgo/wealth-projector/internal/config"

	"github.com/spf13/cobra"
)

var flagForce bool

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write an example configuration file",
	Long:  "Write an example configuration. The extension (.yaml, .toml, .json) picks the format.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	path := "wealthsim.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !flagForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	parser := config.NewInputParser()
	if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), path); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", path)
	fmt.Printf("  Run `wealthsim project --config %s` to use it.\n", path)
	return nil
}
