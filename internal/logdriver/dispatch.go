package logdriver

import (
	"fmt"

	"github.com/wowlog/combatlog/internal/logtime"
	"github.com/wowlog/combatlog/internal/model"
	"github.com/wowlog/combatlog/internal/tracker"
)

// difficultyNames maps a difficulty id to its display name (§4.3).
var difficultyNames = map[int]string{
	1:  "Normal",
	2:  "Heroic",
	8:  "Mythic Keystone",
	14: "Normal (Raid)",
	15: "Heroic (Raid)",
	16: "Mythic (Raid)",
	17: "Looking for Raid",
	23: "Mythic",
	24: "Timewalking",
}

// difficultyName renders id's display name, falling back to a numbered
// placeholder for ids outside difficultyNames.
func difficultyName(id int) string {
	if n, ok := difficultyNames[id]; ok {
		return n
	}
	return fmt.Sprintf("Unknown (%d)", id)
}

// dispatch routes one decoded line to the right handler by its event-type
// field (fields[0]). Unrecognised event types are silently ignored — the
// tracker only ever sees events it knows how to aggregate (§4.5).
func (d *driver) dispatch(ts float64, fields []string) {
	switch fields[0] {
	case "COMBAT_LOG_VERSION":
		d.onCombatLogVersion(fields)
	case "ZONE_CHANGE":
		d.onZoneChange(ts, fields)
	case "COMBATANT_INFO":
		d.onCombatantInfo(fields)
	case "CHALLENGE_MODE_START":
		d.onChallengeModeStart(ts, fields)
	case "CHALLENGE_MODE_END":
		d.onChallengeModeEnd(ts, fields)
	case "ENCOUNTER_START":
		d.onEncounterStart(ts, fields)
	case "ENCOUNTER_END":
		d.onEncounterEnd(ts, fields)
	case "ENCOUNTER_PHASE_CHANGE":
		d.onPhaseChange(ts, fields)
	case "SPELL_DAMAGE", "SPELL_PERIODIC_DAMAGE", "RANGE_DAMAGE", "SPELL_DAMAGE_SUPPORT":
		d.onSpellDamage(ts, fields)
	case "SWING_DAMAGE", "SWING_DAMAGE_LANDED":
		d.onSwingDamage(ts, fields)
	case "SPELL_HEAL", "SPELL_PERIODIC_HEAL", "SPELL_HEAL_SUPPORT":
		d.onSpellHeal(ts, fields)
	case "SPELL_AURA_APPLIED", "SPELL_AURA_REFRESH":
		d.onAuraApplied(ts, fields)
	case "SPELL_AURA_REMOVED":
		d.onAuraRemoved(ts, fields)
	case "SPELL_AURA_APPLIED_DOSE", "SPELL_AURA_REMOVED_DOSE":
		d.onAuraDose(ts, fields)
	case "UNIT_DIED":
		d.onUnitDied(ts, fields)
	}
}

func (d *driver) onCombatLogVersion(fields []string) {
	d.summary.LogVersion = field(fields, 1)
	for i, f := range fields {
		if f == "BUILD_VERSION" {
			d.summary.Build = field(fields, i+1)
			break
		}
	}
}

func (d *driver) onZoneChange(ts float64, fields []string) {
	d.summary.ZoneChanges = append(d.summary.ZoneChanges, model.ZoneChange{
		Time:     ts,
		ZoneID:   atoi(field(fields, 1)),
		ZoneName: name(fields, 2),
	})
}

// onCombatantInfo records a non-zero spec id on every currently live
// tracker (§4.4); player names come from damage and heal events instead.
func (d *driver) onCombatantInfo(fields []string) {
	guid := field(fields, 1)
	specID := atoi(field(fields, 25))
	for _, t := range d.liveTrackers() {
		t.SetPlayerSpec(guid, specID)
	}
}

func (d *driver) onPhaseChange(ts float64, fields []string) {
	phaseID := atoi(field(fields, 1))
	for _, t := range d.liveTrackers() {
		t.SetPhase(ts, phaseID)
	}
}

func (d *driver) onChallengeModeStart(ts float64, fields []string) {
	d.scope = scopeMythicPlus
	d.mpStart = ts
	d.mpKeyName = name(fields, 1)
	d.mpZoneID = atoi(field(fields, 2))
	d.mpKeyLevel = atoi(field(fields, 4))
	d.mpAffixes = bracketList(field(fields, 5))
	d.mp = tracker.New(ts, nil)
	d.mpBosses = nil
	d.mpSegments = nil
	d.mpSegIndex = 0
	d.startSegment(ts, "trash")
}

func (d *driver) onChallengeModeEnd(ts float64, fields []string) {
	if d.scope != scopeMythicPlus {
		return
	}
	d.closeSegment(ts)

	success := atoi(field(fields, 2)) == 1
	encounter := &model.EncounterSummary{
		Index:         len(d.summary.Encounters),
		EncounterType: model.EncounterMythicPlus,
		Name:          d.mpKeyName,
		Success:       success,
		DurationSecs:  d.mp.DurationSecs(ts),
		StartTime:     logtime.Format(d.mpStart),
		EndTime:       logtime.Format(ts),
		KeyLevel:      d.mpKeyLevel,
		Affixes:       d.mpAffixes,
		BossEncounters: d.mpBosses,
		Segments:       d.mpSegments,
	}
	dur := encounter.DurationSecs
	encounter.Players = d.mp.PlayerSummaries(dur)
	encounter.Deaths = d.mp.DeathEvents(formatElapsed(d.mpStart))
	encounter.BuffUptimes = d.mp.BuffUptimes(dur)
	encounter.EnemyBreakdowns = d.mp.EnemyBreakdowns(bossNamesFrom(d.mpBosses))
	// Phases, TimeBucketedDamage, and BossHPTimeline stay empty for
	// mythic-plus encounters — those per-phase/per-second breakdowns are only
	// meaningful for a single standalone boss pull, not a whole key run.

	d.summary.Encounters = append(d.summary.Encounters, encounter)

	d.scope = scopeNone
	d.mp, d.mpSeg = nil, nil
}

func bossNamesFrom(bosses []*model.BossEncounter) []string {
	out := make([]string, 0, len(bosses))
	for _, b := range bosses {
		out = append(out, b.Name)
	}
	return out
}

// startSegment opens a new mythic-plus segment of the given kind, seeding
// its tracker with player identity inherited from the overall run tracker.
func (d *driver) startSegment(ts float64, kind string) {
	d.mpSegKind = kind
	d.mpSegStart = ts
	d.mpSeg = tracker.New(ts, d.mp)
}

// closeSegment flushes the currently open segment into d.mpSegments.
func (d *driver) closeSegment(ts float64) {
	if d.mpSeg == nil {
		return
	}
	dur := d.mpSeg.DurationSecs(ts)
	seg := &model.KeySegment{
		Kind:            d.mpSegKind,
		Index:           d.mpSegIndex,
		StartSecs:       d.mp.DurationSecs(d.mpSegStart),
		DurationSecs:    dur,
		Players:         d.mpSeg.PlayerSummaries(dur),
		Deaths:          d.mpSeg.DeathEvents(formatElapsed(d.mpSegStart)),
		BuffUptimes:     d.mpSeg.BuffUptimes(dur),
		EnemyBreakdowns: d.mpSeg.EnemyBreakdowns(bossNamesFrom(d.mpBosses)),
		Pulls:           []any{},
	}
	d.mpSegments = append(d.mpSegments, seg)
	d.mpSegIndex++
}

func (d *driver) onEncounterStart(ts float64, fields []string) {
	encID := atoi(field(fields, 1))
	nm := name(fields, 2)
	difficulty := atoi(field(fields, 3))
	groupSize := atoi(field(fields, 4))

	switch d.scope {
	case scopeMythicPlus:
		d.closeSegment(ts)
		d.mpSegEncID = encID
		d.mpSegName = nm
		d.startSegment(ts, "boss")
	default:
		d.scope = scopeBoss
		d.bossStart = ts
		d.bossEncID = encID
		d.bossName = nm
		d.bossDifficulty = difficulty
		d.bossGroupSize = groupSize
		d.boss = tracker.New(ts, nil)
	}
}

func (d *driver) onEncounterEnd(ts float64, fields []string) {
	success := atoi(field(fields, 5)) == 1

	switch d.scope {
	case scopeMythicPlus:
		if d.mpSeg == nil || d.mpSegKind != "boss" {
			return
		}
		dur := d.mpSeg.DurationSecs(ts)
		d.mpBosses = append(d.mpBosses, &model.BossEncounter{
			EncounterID:  d.mpSegEncID,
			Name:         d.mpSegName,
			Success:      success,
			StartSecs:    d.mp.DurationSecs(d.mpSegStart),
			DurationSecs: dur,
		})
		d.closeSegment(ts)
		d.startSegment(ts, "trash")
	case scopeBoss:
		dur := d.boss.DurationSecs(ts)
		encounter := &model.EncounterSummary{
			Index:          len(d.summary.Encounters),
			EncounterType:  model.EncounterBoss,
			EncounterID:    d.bossEncID,
			Name:           d.bossName,
			DifficultyID:   d.bossDifficulty,
			DifficultyName: difficultyName(d.bossDifficulty),
			GroupSize:      d.bossGroupSize,
			Success:        success,
			DurationSecs:   dur,
			StartTime:      logtime.Format(d.bossStart),
			EndTime:        logtime.Format(ts),
		}
		encounter.Players = d.boss.PlayerSummaries(dur)
		encounter.Deaths = d.boss.DeathEvents(formatElapsed(d.bossStart))
		encounter.BuffUptimes = d.boss.BuffUptimes(dur)
		encounter.EnemyBreakdowns = d.boss.EnemyBreakdowns([]string{d.bossName})
		encounter.Phases = d.boss.PhaseBreakdowns(dur)
		encounter.TimeBucketedDamage = d.boss.TimeBucketedDamage()
		encounter.BossHPTimeline = d.boss.BossHPTimeline()
		if cur, max, ok := d.boss.CreatureHP(d.bossName); ok && max > 0 {
			encounter.BossMaxHP = max
			encounter.BossHPPct = float64(cur) / float64(max) * 100
		}

		d.summary.Encounters = append(d.summary.Encounters, encounter)
		d.scope = scopeNone
		d.boss = nil
	}
}

// onSpellDamage handles the spell-meta damage family: spell id/name/school
// at [9..11], advanced-info HP at [14]/[15], amount nominal offset 31.
func (d *driver) onSpellDamage(ts float64, fields []string) {
	spellID := atoi(field(fields, 9))
	spellName := name(fields, 10)
	school := atoi(field(fields, 11))
	curHP := atoi64(field(fields, 14))
	maxHP := atoi64(field(fields, 15))

	amount, idx, ok := findAmount(fields, 31)
	if !ok {
		return
	}
	overkill := atoi64(field(fields, idx+1))

	d.recordDamage(ts, fields, spellID, spellName, school, amount, overkill, curHP, maxHP)
}

// onSwingDamage handles the no-spell-meta melee family: advanced-info HP at
// [11]/[12], amount nominal offset 28, overkill at the fixed offset 30.
func (d *driver) onSwingDamage(ts float64, fields []string) {
	curHP := atoi64(field(fields, 11))
	maxHP := atoi64(field(fields, 12))

	amount, _, ok := findAmount(fields, 28)
	if !ok {
		return
	}
	overkill := atoi64(field(fields, 30))

	d.recordDamage(ts, fields, 0, "Melee", 1, amount, overkill, curHP, maxHP)
}

func (d *driver) recordDamage(ts float64, fields []string, spellID int, spellName string, school int, amount, overkill, curHP, maxHP int64) {
	sourceGUID := field(fields, 1)
	sourceName := name(fields, 2)
	destGUID := field(fields, 5)
	destName := name(fields, 6)

	for _, t := range d.liveTrackers() {
		t.RecordDamage(ts, sourceGUID, sourceName, destGUID, destName, spellID, spellName, school, amount, overkill, curHP, maxHP)
	}
}

// onSpellHeal handles SPELL_HEAL/SPELL_PERIODIC_HEAL/SPELL_HEAL_SUPPORT.
// overhealing lives two fields past the found amount (a baseAmount field is
// interposed between them); effective = amount - overhealing (§4.4).
func (d *driver) onSpellHeal(ts float64, fields []string) {
	spellID := atoi(field(fields, 9))
	spellName := name(fields, 10)
	school := atoi(field(fields, 11))

	amount, idx, ok := findAmount(fields, 31)
	if !ok {
		return
	}
	overhealing := atoi64(field(fields, idx+2))
	effective := amount - overhealing
	if effective < 0 {
		effective = 0
	}

	sourceGUID := field(fields, 1)
	sourceName := name(fields, 2)
	destGUID := field(fields, 5)
	destName := name(fields, 6)

	for _, t := range d.liveTrackers() {
		t.RecordHeal(ts, sourceGUID, sourceName, destGUID, destName, spellID, spellName, school, effective, amount)
	}
}

func (d *driver) onAuraApplied(ts float64, fields []string) {
	destGUID := field(fields, 5)
	spellID := atoi(field(fields, 9))
	spellName := name(fields, 10)
	sourceName := name(fields, 2)
	for _, t := range d.liveTrackers() {
		t.RecordAuraApplied(ts, destGUID, spellID, spellName, sourceName)
	}
}

func (d *driver) onAuraRemoved(ts float64, fields []string) {
	destGUID := field(fields, 5)
	spellID := atoi(field(fields, 9))
	spellName := name(fields, 10)
	sourceName := name(fields, 2)
	for _, t := range d.liveTrackers() {
		t.RecordAuraRemoved(ts, destGUID, spellID, spellName, sourceName)
	}
}

func (d *driver) onAuraDose(ts float64, fields []string) {
	destGUID := field(fields, 5)
	spellID := atoi(field(fields, 9))
	spellName := name(fields, 10)
	stacks := atoi(field(fields, 15))
	for _, t := range d.liveTrackers() {
		t.RecordAuraDose(ts, destGUID, spellID, stacks, spellName)
	}
}

func (d *driver) onUnitDied(ts float64, fields []string) {
	destGUID := field(fields, 5)
	destName := name(fields, 6)
	for _, t := range d.liveTrackers() {
		t.RecordDeath(ts, destGUID, destName)
	}
}

// formatElapsed returns a closure turning an elapsed-seconds value (relative
// to scopeStart, the original absolute timestamp) back into a formatted
// wall-clock string for DeathEvent.Time.
func formatElapsed(scopeStart float64) func(float64) string {
	return func(elapsed float64) string {
		return logtime.Format(scopeStart + elapsed)
	}
}
