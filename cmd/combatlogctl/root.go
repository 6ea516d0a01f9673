package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wowlog/combatlog/internal/report"
)

var silent bool

var rootCmd = &cobra.Command{
	Use:   "combatlogctl",
	Short: "Combat log parsing/cache smoke-test tool",
	Long:  "Parse WoW combat logs and exercise the summary cache from a terminal.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		report.Verbose = !silent
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&silent, "silent", "s", false, "hide column explanations before each table")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(cacheDemoCmd)
}
