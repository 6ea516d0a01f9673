package logdriver

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowlog/combatlog/internal/errs"
)

// spellDamageLine builds a synthetic SPELL_DAMAGE line matching this
// package's assumed field layout: spell meta at [9..11], advanced-info HP
// at [14]/[15], amount at [31], overkill at [32].
func spellDamageLine(ts, srcGUID, srcName, destGUID, destName string, spellID int, spellName string, curHP, maxHP, amount, overkill int64) string {
	f := make([]string, 33)
	f[0] = "SPELL_DAMAGE"
	f[1] = srcGUID
	f[2] = `"` + srcName + `"`
	f[3] = "0x512"
	f[4] = "0x0"
	f[5] = destGUID
	f[6] = `"` + destName + `"`
	f[7] = "0xa48"
	f[8] = "0x0"
	f[9] = strconv.Itoa(spellID)
	f[10] = `"` + spellName + `"`
	f[11] = "4"
	for i := 12; i < 33; i++ {
		f[i] = "0"
	}
	f[14] = strconv.FormatInt(curHP, 10)
	f[15] = strconv.FormatInt(maxHP, 10)
	f[31] = strconv.FormatInt(amount, 10)
	f[32] = strconv.FormatInt(overkill, 10)
	return ts + "  " + strings.Join(f, ",")
}

func encounterStartLine(ts string, id int, name string, difficulty, groupSize int) string {
	return ts + "  ENCOUNTER_START," + strconv.Itoa(id) + `,"` + name + `",` + strconv.Itoa(difficulty) + "," + strconv.Itoa(groupSize)
}

func encounterEndLine(ts string, id int, name string, difficulty, groupSize int, success bool) string {
	s := "0"
	if success {
		s = "1"
	}
	return ts + "  ENCOUNTER_END," + strconv.Itoa(id) + `,"` + name + `",` + strconv.Itoa(difficulty) + "," + strconv.Itoa(groupSize) + "," + s
}

func challengeModeStartLine(ts, zoneName string, zoneID, level int, affixes string) string {
	return ts + "  CHALLENGE_MODE_START,\"" + zoneName + "\"," + strconv.Itoa(zoneID) + ",0," + strconv.Itoa(level) + "," + affixes
}

func challengeModeEndLine(ts string, instanceID int, success bool) string {
	s := "0"
	if success {
		s = "1"
	}
	return ts + "  CHALLENGE_MODE_END," + strconv.Itoa(instanceID) + "," + s
}

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "WoWCombatLog-072025_193200.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestParseStandaloneBossKill(t *testing.T) {
	lines := []string{
		encounterStartLine("7/20/2025 19:32:00.000", 2783, "Test Boss", 16, 20),
		spellDamageLine("7/20/2025 19:32:01.000", "Player-A", "Alice", "Creature-X", "Test Boss", 1, "Fireball", 9000, 10000, 1000, 0),
		spellDamageLine("7/20/2025 19:32:02.000", "Player-A", "Alice", "Creature-X", "Test Boss", 1, "Fireball", 8500, 10000, 500, 0),
		encounterEndLine("7/20/2025 19:32:03.000", 2783, "Test Boss", 16, 20, true),
	}
	path := writeLog(t, lines)

	summary, err := Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, summary.Encounters, 1)

	enc := summary.Encounters[0]
	assert.EqualValues(t, "boss", enc.EncounterType)
	assert.True(t, enc.Success)
	require.Len(t, enc.Players, 1)
	assert.Equal(t, "Alice", enc.Players[0].Name)
	assert.Equal(t, int64(1500), enc.Players[0].DamageDone)
	require.Len(t, enc.EnemyBreakdowns, 1)
	assert.Equal(t, int64(1500), enc.EnemyBreakdowns[0].TotalDamage)
}

func TestParseMythicPlusRunWithOneBoss(t *testing.T) {
	lines := []string{
		challengeModeStartLine("7/20/2025 19:00:00.000", "Zone", 123, 10, "[9,10]"),
		spellDamageLine("7/20/2025 19:00:05.000", "Player-A", "Alice", "Creature-T", "Trash Mob", 1, "Wrath", 900, 1000, 100, 0),
		encounterStartLine("7/20/2025 19:02:00.000", 42, "Boss", 8, 5),
		spellDamageLine("7/20/2025 19:02:05.000", "Player-A", "Alice", "Creature-B", "Boss", 2, "Moonfire", 9000, 10000, 1000, 0),
		encounterEndLine("7/20/2025 19:03:00.000", 42, "Boss", 8, 5, true),
		spellDamageLine("7/20/2025 19:03:05.000", "Player-A", "Alice", "Creature-T2", "Trash Mob", 1, "Wrath", 400, 500, 100, 0),
		challengeModeEndLine("7/20/2025 19:03:30.000", 123, true),
	}
	path := writeLog(t, lines)

	summary, err := Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, summary.Encounters, 1)

	enc := summary.Encounters[0]
	assert.EqualValues(t, "mythic_plus", enc.EncounterType)
	assert.Equal(t, 10, enc.KeyLevel)
	assert.Equal(t, []int{9, 10}, enc.Affixes)
	require.Len(t, enc.BossEncounters, 1)
	assert.Equal(t, "Boss", enc.BossEncounters[0].Name)
	require.Len(t, enc.Segments, 3)
	assert.Equal(t, "trash", enc.Segments[0].Kind)
	assert.Equal(t, "boss", enc.Segments[1].Kind)
	assert.Equal(t, "trash", enc.Segments[2].Kind)

	assert.Empty(t, enc.Phases)
	assert.Empty(t, enc.TimeBucketedDamage)
	assert.Empty(t, enc.BossHPTimeline)
}

func TestParseUnclosedEncounterAtEOFIsAbandoned(t *testing.T) {
	lines := []string{
		encounterStartLine("7/20/2025 19:32:00.000", 2783, "Test Boss", 16, 20),
		spellDamageLine("7/20/2025 19:32:01.000", "Player-A", "Alice", "Creature-X", "Test Boss", 1, "Fireball", 9000, 10000, 1000, 0),
	}
	path := writeLog(t, lines)

	summary, err := Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, summary.Encounters)
}

func TestParseMissingFileReturnsParseFailure(t *testing.T) {
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindParseFailure))
}
