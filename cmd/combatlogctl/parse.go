package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wowlog/combatlog/internal/logdriver"
	"github.com/wowlog/combatlog/internal/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse <combat-log.txt>",
	Short: "Parse a combat log file and print its encounter tables",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	fmt.Fprintf(os.Stdout, "Parsing %s...\n", path)

	t0 := time.Now()
	summary, err := logdriver.Parse(context.Background(), path)
	elapsed := time.Since(t0)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	report.PrintSummary(os.Stdout, summary)
	fmt.Fprintf(os.Stdout, "parse time: %s\n", elapsed.Round(time.Millisecond))

	for _, e := range summary.Encounters {
		report.PrintEncounter(os.Stdout, e)
	}
	return nil
}
