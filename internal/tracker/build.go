package tracker

import (
	"sort"

	"github.com/wowlog/combatlog/internal/model"
	"github.com/wowlog/combatlog/internal/specs"
)

// DurationSecs returns the elapsed time between the tracker's start and end,
// used by callers to compute dps/hps and to close out a scope.
func (t *Tracker) DurationSecs(end float64) float64 {
	d := t.elapsed(end)
	if d < 0 {
		return 0
	}
	return d
}

// PlayerSummaries materialises a PlayerSummary for every GUID carrying the
// Player- prefix with any damage or healing activity, ordered by
// damage_done descending (§4.4 Building summaries, invariant 3).
func (t *Tracker) PlayerSummaries(durationSecs float64) []*model.PlayerSummary {
	seen := make(map[string]bool)
	for guid := range t.damage {
		seen[guid] = true
	}
	for guid := range t.healing {
		seen[guid] = true
	}
	for guid := range t.damageTaken {
		seen[guid] = true
	}

	out := make([]*model.PlayerSummary, 0, len(seen))
	for guid := range seen {
		if !IsPlayer(guid) {
			continue
		}
		var dmgDone, healDone int64
		for _, a := range t.damage[guid] {
			dmgDone += a.total
		}
		for _, a := range t.healing[guid] {
			healDone += a.total
		}
		dmgTaken := t.damageTaken[guid]

		ps := &model.PlayerSummary{
			GUID:        guid,
			Name:        t.nameOf(guid),
			DamageDone:  dmgDone,
			DamageTaken: dmgTaken,
			HealingDone: healDone,
			Deaths:      t.deathCounts[guid],
		}
		if durationSecs > 0 {
			ps.DPS = float64(dmgDone) / durationSecs
			ps.HPS = float64(healDone) / durationSecs
		}
		if m, ok := t.players[guid]; ok && m.specID > 0 {
			if class, spec, role, ok := specs.Lookup(m.specID); ok {
				ps.Class, ps.Spec, ps.Role = class, spec, string(role)
			}
		}
		ps.OutgoingDamage = buildBreakdown(t.damage[guid], t.damageTargets[guid])
		ps.OutgoingHealing = buildBreakdown(t.healing[guid], t.healingTargets[guid])
		ps.IncomingDamage = buildBreakdown(t.incomingDamage[guid], nil)

		out = append(out, ps)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DamageDone > out[j].DamageDone })
	return out
}

func (t *Tracker) nameOf(guid string) string {
	if m, ok := t.players[guid]; ok && m.name != "" {
		return m.name
	}
	return guid
}

// buildBreakdown turns one guid's spellID->abilityAgg map (plus, for
// outgoing breakdowns, its per-target distribution) into a sorted slice of
// AbilityBreakdown, each with its own target list ordered by amount
// descending.
func buildBreakdown(aggs map[int]*abilityAgg, targets map[int]map[string]int64) []*model.AbilityBreakdown {
	out := make([]*model.AbilityBreakdown, 0, len(aggs))
	for spellID, a := range aggs {
		ab := &model.AbilityBreakdown{
			SpellID:   spellID,
			SpellName: a.name,
			School:    a.school,
			Total:     a.total,
			Hits:      a.hits,
		}
		if tm, ok := targets[spellID]; ok {
			for target, amount := range tm {
				ab.Targets = append(ab.Targets, model.TargetAmount{Target: target, Amount: amount})
			}
			sort.SliceStable(ab.Targets, func(i, j int) bool { return ab.Targets[i].Amount > ab.Targets[j].Amount })
		}
		out = append(out, ab)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// BuffUptimes materialises, for every guid with aura activity, a sorted
// []*model.BuffUptime keyed by that guid. Uptime is computed by walking the
// aura timeline and summing apply->remove intervals; uptime_pct is capped
// at 100 even if the event stream double-applies (invariant 2).
func (t *Tracker) BuffUptimes(durationSecs float64) map[string][]*model.BuffUptime {
	out := make(map[string][]*model.BuffUptime)
	for guid, bySpell := range t.auraTimeline {
		var list []*model.BuffUptime
		for spellID, events := range bySpell {
			sorted := append([]auraEvt(nil), events...)
			sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].time < sorted[j].time })

			var uptime float64
			var applyTime float64
			applied := false
			var stackSum, stackSamples float64
			maxStacks := 0

			for _, e := range sorted {
				switch e.kind {
				case "apply":
					if !applied {
						applyTime = e.time
						applied = true
					}
				case "remove":
					if applied {
						uptime += e.time - applyTime
						applied = false
					}
				case "stack":
					if e.stacks > maxStacks {
						maxStacks = e.stacks
					}
					stackSum += float64(e.stacks)
					stackSamples++
				}
			}
			if applied {
				uptime += durationSecs - applyTime
			}
			if uptime < 0 {
				uptime = 0
			}
			pct := 0.0
			if durationSecs > 0 {
				pct = uptime / durationSecs * 100
				if pct > 100 {
					pct = 100
				}
			}
			avgStacks := 0.0
			if stackSamples > 0 {
				avgStacks = stackSum / stackSamples
			}

			timeline := make([]model.TimelineEvent, 0, len(sorted))
			for _, e := range sorted {
				timeline = append(timeline, model.TimelineEvent{Time: e.time, Event: e.kind, Stacks: e.stacks})
			}

			list = append(list, &model.BuffUptime{
				SpellID:    spellID,
				Name:       t.spellNames[spellID],
				SourceName: t.auraSource[guid+"|"+keyOf(spellID)],
				UptimeSecs: uptime,
				UptimePct:  pct,
				AvgStacks:  avgStacks,
				MaxStacks:  maxStacks,
				Timeline:   timeline,
			})
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].UptimeSecs > list[j].UptimeSecs })
		out[guid] = list
	}
	return out
}

// EnemyBreakdowns inverts the damage-targets map (target -> guid -> sum)
// into one EnemyBreakdown per non-player target, classified Boss/Pet/Trash
// against bossNames (§4.4).
func (t *Tracker) EnemyBreakdowns(bossNames []string) []*model.EnemyBreakdown {
	totals := make(map[string]int64)
	contrib := make(map[string]map[string]int64) // target -> guid -> amount

	for guid, bySpell := range t.damageTargets {
		for _, byTarget := range bySpell {
			for target, amount := range byTarget {
				totals[target] += amount
				m, ok := contrib[target]
				if !ok {
					m = make(map[string]int64)
					contrib[target] = m
				}
				m[guid] += amount
			}
		}
	}

	out := make([]*model.EnemyBreakdown, 0, len(totals))
	for target, total := range totals {
		// creaturePrefix holds only names seen on non-player destinations.
		if _, ok := t.creaturePrefix[target]; !ok {
			continue
		}
		eb := &model.EnemyBreakdown{
			TargetName:  target,
			TotalDamage: total,
			Kills:       t.killCounts[target],
			MobType:     classifyMobType(target, t.creaturePrefix[target], bossNames),
		}
		for guid, amount := range contrib[target] {
			eb.Contributors = append(eb.Contributors, model.PlayerContribution{
				GUID: guid, Name: t.nameOf(guid), Amount: amount,
			})
		}
		sort.SliceStable(eb.Contributors, func(i, j int) bool { return eb.Contributors[i].Amount > eb.Contributors[j].Amount })
		out = append(out, eb)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalDamage > out[j].TotalDamage })
	return out
}

func classifyMobType(name, prefixLabel string, bossNames []string) string {
	if matchesAny(name, bossNames) {
		return "Boss"
	}
	if prefixLabel == "Pet" {
		return "Pet"
	}
	return "Trash"
}

// DeathEvents materialises the ordered DeathEvent list, formatting
// timestamps with the supplied formatter (elapsed seconds -> string).
func (t *Tracker) DeathEvents(formatTime func(elapsedSecs float64) string) []*model.DeathEvent {
	out := make([]*model.DeathEvent, 0, len(t.deaths))
	for _, d := range t.deaths {
		var kb *model.KillingBlow
		if d.killing != nil {
			kb = &model.KillingBlow{
				SpellID: d.killing.spellID, SpellName: d.killing.spellName,
				SourceName: d.killing.sourceName, Amount: d.killing.amount, Overkill: d.killing.overkill,
			}
		}
		recap := make([]model.RecapEvent, 0, len(d.recap))
		for _, r := range d.recap {
			recap = append(recap, model.RecapEvent{
				TimeIntoFightSecs: r.time, EventType: r.eventType, SourceName: r.sourceName,
				SpellID: r.spellID, SpellName: r.spellName, Amount: r.amount,
			})
		}
		out = append(out, &model.DeathEvent{
			Time:              formatTime(d.time),
			PlayerName:        d.playerName,
			PlayerGUID:        d.playerGUID,
			KillingBlow:       kb,
			TimeIntoFightSecs: d.time,
			Recap:             recap,
		})
	}
	return out
}

// PhaseBreakdowns turns the phase-transition list plus per-phase damage
// maps into ordered PhaseBreakdown values: phase 1 starts at elapsed 0, the
// final phase extends to the scope's end (§4.4). It returns nil unless an
// ENCOUNTER_PHASE_CHANGE was actually observed in this scope — an encounter
// that never changed phase has nothing phase-shaped to report, regardless of
// the phase field's phase-1 default.
func (t *Tracker) PhaseBreakdowns(durationSecs float64) []*model.PhaseBreakdown {
	if len(t.phaseTransitions) == 0 {
		return nil
	}

	type window struct {
		phaseID   int
		start     float64
	}
	seqs := []window{{phaseID: 1, start: 0}}
	for _, tr := range t.phaseTransitions {
		seqs = append(seqs, window{phaseID: tr.phaseID, start: tr.time})
	}

	out := make([]*model.PhaseBreakdown, 0, len(seqs))
	for i, w := range seqs {
		end := durationSecs
		if i+1 < len(seqs) {
			end = seqs[i+1].start
		}
		out = append(out, &model.PhaseBreakdown{
			PhaseID: w.phaseID, StartSecs: w.start, EndSecs: end,
			TargetDamage: copyMap(t.phaseDamage[w.phaseID]),
		})
	}
	return out
}

func copyMap(m map[string]int64) map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// TimeBucketedDamage returns the elapsed-second -> guid -> amount map built
// incrementally during RecordDamage.
func (t *Tracker) TimeBucketedDamage() map[int]map[string]int64 {
	out := make(map[int]map[string]int64, len(t.timeBucketDamage))
	for bucket, m := range t.timeBucketDamage {
		out[bucket] = copyMap(m)
	}
	return out
}

// BossHPTimeline returns the sampled boss_hp_timeline for this scope.
func (t *Tracker) BossHPTimeline() []model.HPSample {
	out := make([]model.HPSample, 0, len(t.bossHPTimeline))
	for _, s := range t.bossHPTimeline {
		out = append(out, model.HPSample{TimeSecs: s.timeSecs, HPPct: s.hpPct})
	}
	return out
}

// BossName returns the name of the creature currently tracked as the boss
// (the largest-maxHP creature seen so far in this scope).
func (t *Tracker) BossName() string { return t.bossName }
