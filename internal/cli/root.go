// Package cli defines Cobra command definitions for the mirrorplan CLI.
// This file contains the root command, version flag, and the wizard entry.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mirrorplan/mirrorplan/internal/tui"
)

var (
	projectDir string
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "mirrorplan",
	Short: "Pick a strategy for migrating Hive tables between clusters",
	Long: `Mirrorplan asks a few questions about a cluster migration and
recommends one data strategy, with the reasoning behind it. Confirmed
recommendations can be saved as named configurations.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch the wizard if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		root, err := projectRoot()
		if err != nil {
			return err
		}
		e, err := openEnv(root, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		return e.wizard(cmd.OutOrStdout())
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Project directory holding .mirrorplan/ (default: current directory)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(strategiesCmd)
	rootCmd.AddCommand(configsCmd)
	rootCmd.AddCommand(historyCmd)
}
