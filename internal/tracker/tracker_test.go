package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDamageAggregatesByPlayerAndSpell(t *testing.T) {
	tr := New(0, nil)
	tr.SetPlayerName("Player-1", "Alice")

	tr.RecordDamage(1, "Player-1", "Alice", "Creature-1", "Test Boss", 100, "Fireball", 4, 1000, 0, 9000, 10000)
	tr.RecordDamage(2, "Player-1", "Alice", "Creature-1", "Test Boss", 100, "Fireball", 4, 500, 0, 8500, 10000)

	players := tr.PlayerSummaries(2)
	require.Len(t, players, 1)
	assert.Equal(t, int64(1500), players[0].DamageDone)
	assert.Equal(t, "Alice", players[0].Name)
	require.Len(t, players[0].OutgoingDamage, 1)
	assert.Equal(t, int64(1500), players[0].OutgoingDamage[0].Total)
	assert.Equal(t, 2, players[0].OutgoingDamage[0].Hits)
}

func TestRecordDamageSplitsPlayerAndIncomingSides(t *testing.T) {
	tr := New(0, nil)
	tr.RecordDamage(1, "Creature-1", "Test Boss", "Player-1", "Alice", 200, "Cleave", 1, 2000, 0, 5000, 10000)

	players := tr.PlayerSummaries(1)
	require.Len(t, players, 1)
	assert.Equal(t, int64(2000), players[0].DamageTaken)
	assert.Equal(t, int64(0), players[0].DamageDone)
}

func TestBuffUptimeCapsAt100Percent(t *testing.T) {
	tr := New(0, nil)
	tr.RecordAuraApplied(0, "Player-1", 500, "Power Word: Fortitude", "Priest")
	// No remove event before the scope ends: uptime runs to durationSecs.

	uptimes := tr.BuffUptimes(10)
	list := uptimes["Player-1"]
	require.Len(t, list, 1)
	assert.InDelta(t, 100.0, list[0].UptimePct, 0.001)
	assert.InDelta(t, 10.0, list[0].UptimeSecs, 0.001)
}

func TestBuffUptimeSumsMultipleApplyRemoveIntervals(t *testing.T) {
	tr := New(0, nil)
	tr.RecordAuraApplied(0, "Player-1", 500, "Buff", "Source")
	tr.RecordAuraRemoved(2, "Player-1", 500, "Buff", "Source")
	tr.RecordAuraApplied(5, "Player-1", 500, "Buff", "Source")
	tr.RecordAuraRemoved(7, "Player-1", 500, "Buff", "Source")

	uptimes := tr.BuffUptimes(10)
	list := uptimes["Player-1"]
	require.Len(t, list, 1)
	assert.InDelta(t, 4.0, list[0].UptimeSecs, 0.001)
}

func TestDeathRecapWindowExcludesEventsOutsideFifteenSeconds(t *testing.T) {
	tr := New(0, nil)
	tr.RecordDamage(1, "Creature-1", "Test Boss", "Player-1", "Alice", 1, "Old Hit", 1, 100, 0, 9000, 10000)
	tr.RecordDamage(20, "Creature-1", "Test Boss", "Player-1", "Alice", 2, "Recent Hit", 1, 9000, 0, 1, 10000)
	tr.RecordDeath(20.5, "Player-1", "Alice")

	deaths := tr.DeathEvents(func(f float64) string { return "t" })
	require.Len(t, deaths, 1)

	var sawOld, sawRecent bool
	for _, r := range deaths[0].Recap {
		if r.SpellName == "Old Hit" {
			sawOld = true
		}
		if r.SpellName == "Recent Hit" {
			sawRecent = true
		}
	}
	assert.False(t, sawOld, "event 19.5s before death should fall outside the 15s recap window")
	assert.True(t, sawRecent)
}

func TestDeathRecapExcludesBuffRemovalWithinHalfSecondOfDeath(t *testing.T) {
	tr := New(0, nil)
	tr.RecordAuraApplied(0, "Player-1", 1, "Shield", "Priest")
	tr.RecordAuraRemoved(9.9, "Player-1", 1, "Shield", "Priest")
	tr.RecordDeath(10.0, "Player-1", "Alice")

	deaths := tr.DeathEvents(func(f float64) string { return "t" })
	require.Len(t, deaths, 1)
	for _, r := range deaths[0].Recap {
		assert.NotEqual(t, "buff_removed", r.EventType)
	}
}

func TestRecordDeathCapturesKillingBlowWithOverkill(t *testing.T) {
	tr := New(0, nil)
	tr.RecordDamage(1, "Creature-1", "Test Boss", "Player-1", "Alice", 7, "Crush", 1, 500, 120, 9000, 9000)
	tr.RecordDeath(1.1, "Player-1", "Alice")

	deaths := tr.DeathEvents(func(f float64) string { return "t" })
	require.Len(t, deaths, 1)
	require.NotNil(t, deaths[0].KillingBlow)
	assert.Equal(t, int64(500), deaths[0].KillingBlow.Amount)
	assert.Equal(t, int64(120), deaths[0].KillingBlow.Overkill)
}

func TestNewInheritsPlayerIdentityFromParent(t *testing.T) {
	parent := New(0, nil)
	parent.SetPlayerName("Player-1", "Alice")
	parent.SetPlayerSpec("Player-1", 105)

	child := New(5, parent)
	child.RecordDamage(6, "Player-1", "Alice", "Creature-1", "Trash Mob", 1, "Wrath", 4, 10, 0, 0, 0)

	players := child.PlayerSummaries(1)
	require.Len(t, players, 1)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "Druid", players[0].Class)
}

func TestEnemyBreakdownClassifiesBossByCaseInsensitiveSubstring(t *testing.T) {
	tr := New(0, nil)
	tr.RecordDamage(1, "Player-1", "Alice", "Creature-1", "The Big Boss", 1, "Hit", 1, 100, 0, 0, 0)
	tr.RecordDamage(1, "Player-1", "Alice", "Creature-2", "Random Trash", 1, "Hit", 1, 50, 0, 0, 0)

	breakdown := tr.EnemyBreakdowns([]string{"big boss"})
	byName := map[string]string{}
	for _, e := range breakdown {
		byName[e.TargetName] = e.MobType
	}
	assert.Equal(t, "Boss", byName["The Big Boss"])
	assert.Equal(t, "Trash", byName["Random Trash"])
}

func TestMaybeSampleBossHPWatermarkIsMonotoneNonDecreasing(t *testing.T) {
	tr := New(0, nil)
	tr.RecordDamage(1, "Player-1", "Alice", "Creature-1", "Big Boss", 1, "Hit", 1, 100, 0, 5000, 10000)
	tr.RecordDamage(2, "Player-1", "Alice", "Creature-2", "Small Add", 1, "Hit", 1, 50, 0, 900, 1000)
	tr.RecordDamage(3, "Player-1", "Alice", "Creature-1", "Big Boss", 1, "Hit", 1, 100, 0, 4000, 10000)

	timeline := tr.BossHPTimeline()
	require.Len(t, timeline, 2)
	assert.Equal(t, "Big Boss", tr.BossName())
	assert.InDelta(t, 50.0, timeline[0].HPPct, 0.001)
	assert.InDelta(t, 40.0, timeline[1].HPPct, 0.001)
}

func TestPhaseBreakdownsEmptyWithoutAnyPhaseChange(t *testing.T) {
	tr := New(0, nil)
	tr.RecordDamage(1, "Player-1", "Alice", "Creature-1", "Big Boss", 1, "Hit", 1, 100, 0, 9000, 10000)

	assert.Empty(t, tr.PhaseBreakdowns(10))
}

func TestPhaseBreakdownsSplitsOnExplicitPhaseChange(t *testing.T) {
	tr := New(0, nil)
	tr.RecordDamage(1, "Player-1", "Alice", "Creature-1", "Big Boss", 1, "Hit", 1, 100, 0, 9000, 10000)
	tr.SetPhase(5, 2)
	tr.RecordDamage(6, "Player-1", "Alice", "Creature-1", "Big Boss", 1, "Hit", 1, 200, 0, 8000, 10000)

	breakdowns := tr.PhaseBreakdowns(10)
	require.Len(t, breakdowns, 2)
	assert.Equal(t, 1, breakdowns[0].PhaseID)
	assert.Equal(t, 0.0, breakdowns[0].StartSecs)
	assert.Equal(t, 5.0, breakdowns[0].EndSecs)
	assert.Equal(t, int64(100), breakdowns[0].TargetDamage["Big Boss"])
	assert.Equal(t, 2, breakdowns[1].PhaseID)
	assert.Equal(t, 5.0, breakdowns[1].StartSecs)
	assert.Equal(t, 10.0, breakdowns[1].EndSecs)
	assert.Equal(t, int64(200), breakdowns[1].TargetDamage["Big Boss"])
}
