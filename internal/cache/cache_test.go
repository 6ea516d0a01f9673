package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowlog/combatlog/internal/workpool"
)

func writeLog(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "WoWCombatLog-072025_193200.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestSummaryMissThenHitThenInvalidateOnSizeChange(t *testing.T) {
	path := writeLog(t, "7/20/2025 19:32:00.000  ENCOUNTER_START,1,\"Boss\",16,5\n")
	c := New(workpool.New(1))
	ctx := context.Background()

	_, status1, _, err := c.Summary(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, StatusParsed, status1)

	_, status2, _, err := c.Summary(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, StatusHit, status2)

	require.NoError(t, os.WriteFile(path, []byte("7/20/2025 19:32:00.000  ENCOUNTER_START,1,\"Boss\",16,5\nextra\n"), 0o644))

	_, status3, _, err := c.Summary(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, StatusParsed, status3)
}

func TestSummaryMissingFileReturnsError(t *testing.T) {
	c := New(workpool.New(1))
	_, _, _, err := c.Summary(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestInvalidateForcesReparse(t *testing.T) {
	path := writeLog(t, "7/20/2025 19:32:00.000  ENCOUNTER_START,1,\"Boss\",16,5\n")
	c := New(workpool.New(1))
	ctx := context.Background()

	_, _, _, err := c.Summary(ctx, path)
	require.NoError(t, err)

	c.Invalidate(path)

	_, status, _, err := c.Summary(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, StatusParsed, status)
}
