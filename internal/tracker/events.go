package tracker

import "strings"

// RecordDamage applies one damage event (SPELL_DAMAGE, SWING_DAMAGE, ...) to
// every relevant aggregation map. sourceGUID/destGUID may be players or
// creatures; attribution happens symmetrically on whichever side is a
// player (§4.4). currentHP/maxHP are the advanced-info HP snapshot for the
// destination, used for creature tracking and recap; pass (0, 0) when
// absent (e.g. SWING_DAMAGE schemas without advanced info... though this
// format always carries it at a fixed offset per §4.4).
func (t *Tracker) RecordDamage(ts float64, sourceGUID, sourceName, destGUID, destName string, spellID int, spellName string, school int, amount int64, overkill int64, currentHP, maxHP int64) {
	el := t.elapsed(ts)
	t.spellNames[spellID] = spellName

	if IsPlayer(sourceGUID) {
		t.SetPlayerName(sourceGUID, sourceName)
		t.addAgg(t.damage, sourceGUID, spellID, spellName, school, amount)
		t.addTarget(t.damageTargets, sourceGUID, spellID, destName, amount)
		t.bucketDamage(el, sourceGUID, amount)
	}
	if IsPlayer(destGUID) {
		t.SetPlayerName(destGUID, destName)
		t.damageTaken[destGUID] += amount
		t.addAgg(t.incomingDamage, destGUID, spellID, spellName, school, amount)
		t.lastDamageTo[destGUID] = lastHit{spellID: spellID, spellName: spellName, sourceName: sourceName, amount: amount, overkill: overkill}
		t.pushRecap(destGUID, el, "damage", sourceName, spellID, spellName, amount)
	} else {
		// Non-player destination: creature bookkeeping and boss HP sampling.
		t.trackCreature(destName, destGUID, currentHP, maxHP)
		t.maybeSampleBossHP(el, destName, currentHP, maxHP)
	}

	if t.phaseDamage[t.phase] == nil {
		t.phaseDamage[t.phase] = make(map[string]int64)
	}
	t.phaseDamage[t.phase][destName] += amount
}

// RecordHeal applies one healing event. effective is the amount counted
// toward totals (raw minus overheal); raw is what appears on a death recap,
// since a fully-overhealed tick should still show there (§4.4).
func (t *Tracker) RecordHeal(ts float64, sourceGUID, sourceName, destGUID, destName string, spellID int, spellName string, school int, effective, raw int64) {
	el := t.elapsed(ts)
	t.spellNames[spellID] = spellName

	if IsPlayer(sourceGUID) {
		t.SetPlayerName(sourceGUID, sourceName)
		t.addAgg(t.healing, sourceGUID, spellID, spellName, school, effective)
		t.addTarget(t.healingTargets, sourceGUID, spellID, destName, effective)
	}
	if IsPlayer(destGUID) {
		t.SetPlayerName(destGUID, destName)
		t.pushRecap(destGUID, el, "heal", sourceName, spellID, spellName, raw)
	}
}

// RecordAuraApplied handles SPELL_AURA_APPLIED / SPELL_AURA_REFRESH.
func (t *Tracker) RecordAuraApplied(ts float64, guid string, spellID int, spellName, sourceName string) {
	el := t.elapsed(ts)
	t.spellNames[spellID] = spellName
	t.pushAura(guid, spellID, el, "apply", 1)
	t.setAuraSource(guid, spellID, sourceName)
	t.pushRecap(guid, el, "buff_applied", sourceName, spellID, spellName, 0)
}

// RecordAuraRemoved handles SPELL_AURA_REMOVED.
func (t *Tracker) RecordAuraRemoved(ts float64, guid string, spellID int, spellName, sourceName string) {
	el := t.elapsed(ts)
	t.spellNames[spellID] = spellName
	t.pushAura(guid, spellID, el, "remove", 0)
	t.pushRecap(guid, el, "buff_removed", sourceName, spellID, spellName, 0)
}

// RecordAuraDose handles SPELL_AURA_APPLIED_DOSE / SPELL_AURA_REMOVED_DOSE.
func (t *Tracker) RecordAuraDose(ts float64, guid string, spellID, stacks int, spellName string) {
	el := t.elapsed(ts)
	t.spellNames[spellID] = spellName
	t.pushAura(guid, spellID, el, "stack", stacks)
}

func (t *Tracker) pushAura(guid string, spellID int, el float64, kind string, stacks int) {
	m, ok := t.auraTimeline[guid]
	if !ok {
		m = make(map[int][]auraEvt)
		t.auraTimeline[guid] = m
	}
	m[spellID] = append(m[spellID], auraEvt{time: el, kind: kind, stacks: stacks})

	cs, ok := t.currentStacks[guid]
	if !ok {
		cs = make(map[int]int)
		t.currentStacks[guid] = cs
	}
	cs[spellID] = stacks
}

func (t *Tracker) setAuraSource(guid string, spellID int, sourceName string) {
	if sourceName == "" {
		return
	}
	t.auraSource[guid+"|"+keyOf(spellID)] = sourceName
}

func keyOf(spellID int) string {
	// Small helper kept separate from strconv to avoid importing it in two
	// places; spellID values are non-negative per §3.
	if spellID == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	n := spellID
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

// RecordDeath handles UNIT_DIED. When destGUID is a player, it snapshots
// the death recap and increments the death count; otherwise it records a
// creature kill.
func (t *Tracker) RecordDeath(ts float64, destGUID, destName string) {
	el := t.elapsed(ts)
	if IsPlayer(destGUID) {
		t.deathCounts[destGUID]++
		var kb *killingBlow
		if lh, ok := t.lastDamageTo[destGUID]; ok {
			kb = &killingBlow{spellID: lh.spellID, spellName: lh.spellName, sourceName: lh.sourceName, amount: lh.amount, overkill: lh.overkill}
		}
		t.deaths = append(t.deaths, deathRecord{
			time:       el,
			playerGUID: destGUID,
			playerName: destName,
			killing:    kb,
			recap:      t.assembleRecap(destGUID, el),
		})
	} else {
		t.killCounts[destName]++
		t.trackCreature(destName, destGUID, 0, 0)
	}
}

// assembleRecap filters the recap ring for destGUID down to the 15 seconds
// preceding deathTime, dropping buff_removed events within 0.5s of death
// (mass aura wipe on death), per §4.4.
func (t *Tracker) assembleRecap(guid string, deathTime float64) []recapEvt {
	ring := t.recapRing[guid]
	out := make([]recapEvt, 0, len(ring))
	for _, r := range ring {
		dt := deathTime - r.time
		if dt < 0 || dt > recapWindowSecs {
			continue
		}
		if r.eventType == "buff_removed" && absf(deathTime-r.time) < auraRemoveFilter {
			continue
		}
		out = append(out, r)
	}
	return out
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// pushRecap appends a candidate recap event to guid's ring, trimming to the
// last 60 seconds and a soft cap of 200 entries (§4.4).
func (t *Tracker) pushRecap(guid string, el float64, eventType, sourceName string, spellID int, spellName string, amount int64) {
	if !IsPlayer(guid) {
		return
	}
	ring := append(t.recapRing[guid], recapEvt{
		time: el, eventType: eventType, sourceName: sourceName,
		spellID: spellID, spellName: spellName, amount: amount,
	})
	cutoff := el - recapTrimSecs
	start := 0
	for start < len(ring) && ring[start].time < cutoff {
		start++
	}
	ring = ring[start:]
	if len(ring) > recapRingCap {
		ring = ring[len(ring)-recapRingCap:]
	}
	t.recapRing[guid] = ring
}

func (t *Tracker) addAgg(dst map[string]map[int]*abilityAgg, guid string, spellID int, name string, school int, amount int64) {
	m, ok := dst[guid]
	if !ok {
		m = make(map[int]*abilityAgg)
		dst[guid] = m
	}
	a, ok := m[spellID]
	if !ok {
		a = &abilityAgg{name: name, school: school}
		m[spellID] = a
	}
	a.total += amount
	a.hits++
}

func (t *Tracker) addTarget(dst map[string]map[int]map[string]int64, guid string, spellID int, target string, amount int64) {
	m, ok := dst[guid]
	if !ok {
		m = make(map[int]map[string]int64)
		dst[guid] = m
	}
	tm, ok := m[spellID]
	if !ok {
		tm = make(map[string]int64)
		m[spellID] = tm
	}
	tm[target] += amount
}

func (t *Tracker) bucketDamage(el float64, guid string, amount int64) {
	bucket := int(el)
	m, ok := t.timeBucketDamage[bucket]
	if !ok {
		m = make(map[string]int64)
		t.timeBucketDamage[bucket] = m
	}
	m[guid] += amount
}

// trackCreature records the GUID-prefix label for a creature name (first
// GUID seen wins) and the last-observed HP snapshot.
func (t *Tracker) trackCreature(name, guid string, current, max int64) {
	if name == "" {
		return
	}
	if _, ok := t.creaturePrefix[name]; !ok {
		t.creaturePrefix[name] = guidPrefixLabel(guid)
	}
	if max > 0 {
		t.creatureHP[name] = hpState{current: current, max: max}
	}
}

// maybeSampleBossHP updates the boss watermark (largest maxHP seen in this
// scope) and, when destName is the currently-tracked boss, appends an HP
// sample to the timeline. The watermark is monotone non-decreasing within
// the scope so a larger add/trash creature can "upgrade" the tracked
// target but a smaller one never displaces it (§9).
func (t *Tracker) maybeSampleBossHP(el float64, name string, current, max int64) {
	if max <= 0 {
		return
	}
	if max > t.bossMaxHPSeen {
		t.bossMaxHPSeen = max
		t.bossName = name
	}
	if name != t.bossName {
		return
	}
	pct := 0.0
	if max > 0 {
		pct = float64(current) / float64(max) * 100
	}
	t.bossHPPct = pct
	t.bossHPTimeline = append(t.bossHPTimeline, hpSample{timeSecs: el, hpPct: pct})
}

// CreatureHP returns the last-observed (current, max) HP for a creature
// name, used when computing a standalone boss encounter's boss_hp_pct.
func (t *Tracker) CreatureHP(name string) (current, max int64, ok bool) {
	hp, found := t.creatureHP[name]
	if !found {
		return 0, 0, false
	}
	return hp.current, hp.max, true
}

// matchesAny reports whether name matches any of candidates as a
// case-insensitive substring in either direction (§4.4's enemy
// classification rule).
func matchesAny(name string, candidates []string) bool {
	ln := strings.ToLower(name)
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if strings.Contains(ln, lc) || strings.Contains(lc, ln) {
			return true
		}
	}
	return false
}
