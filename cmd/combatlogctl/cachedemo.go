package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wowlog/combatlog/internal/boundary"
	"github.com/wowlog/combatlog/internal/cache"
	"github.com/wowlog/combatlog/internal/workpool"
)

var cacheDemoCmd = &cobra.Command{
	Use:   "cache-demo <directory>",
	Short: "Request the first discovered log twice to show HIT/PARSED cache behavior",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheDemo,
}

func runCacheDemo(cmd *cobra.Command, args []string) error {
	dir := args[0]
	logs, err := boundary.List(dir)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}
	if len(logs) == 0 {
		return fmt.Errorf("no WoWCombatLog*.txt files found under %s", dir)
	}

	target := logs[0]
	c := cache.New(workpool.New(0))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, status, elapsed, err := c.Summary(ctx, target.Path)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		fmt.Fprintf(os.Stdout, "request %d: %-6s  %s  parse_time=%s\n", i+1, target.Filename, status, elapsed)
	}
	return nil
}
