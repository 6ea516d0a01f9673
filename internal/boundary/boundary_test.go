package boundary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestListSortsReverseChronologicallyAndDedups(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	writeFile(t, root, "WoWCombatLog-072025_120000.txt")
	writeFile(t, root, "WoWCombatLog-072025_180000.txt")
	writeFile(t, sub, "WoWCombatLog-072025_180000.txt") // duplicate filename, different dir
	writeFile(t, root, "NotACombatLog.txt")

	files, err := List(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "WoWCombatLog-072025_180000.txt", files[0].Filename)
	assert.Equal(t, "WoWCombatLog-072025_120000.txt", files[1].Filename)
}

func TestDateFromFilename(t *testing.T) {
	assert.Equal(t, "2025-07-20", DateFromFilename("WoWCombatLog-072025_193200.txt"))
	assert.Equal(t, "", DateFromFilename("not-a-log.txt"))
}

func TestSanitizeRejectsTraversal(t *testing.T) {
	assert.True(t, Sanitize("WoWCombatLog-072025_193200.txt"))
	assert.False(t, Sanitize("../etc/passwd"))
	assert.False(t, Sanitize("foo/bar.txt"))
	assert.False(t, Sanitize(`foo\bar.txt`))
}

func TestFormatSizeUsesPlainUnits(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Contains(t, FormatSize(2048), "KB")
	assert.NotContains(t, FormatSize(2048), "KiB")
}
