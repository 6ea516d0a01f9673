// Package model defines the data types produced by the log driver and event
// tracker: CombatLogSummary, its EncounterSummary entries (standalone boss
// kills or mythic-plus runs with nested segments), and the per-player,
// per-buff, per-enemy, and per-death breakdowns that make up an encounter.
package model

// ZoneChange records a ZONE_CHANGE event observed at the top level of a log.
type ZoneChange struct {
	Time     float64 `json:"time"`
	ZoneID   int     `json:"zone_id"`
	ZoneName string  `json:"zone_name"`
}

// CombatLogSummary is the top-level result of parsing one combat log file.
type CombatLogSummary struct {
	Filename    string              `json:"filename"`
	LogVersion  string              `json:"log_version,omitempty"`
	Build       string              `json:"build,omitempty"`
	Encounters  []*EncounterSummary `json:"encounters"`
	ZoneChanges []ZoneChange        `json:"zone_changes"`
}

// Encounter returns the index-th encounter. ok is false when index is out
// of range, matching the 404 contract of GET /api/logs/{f}/encounter/{i}.
func (s *CombatLogSummary) Encounter(index int) (*EncounterSummary, bool) {
	if index < 0 || index >= len(s.Encounters) {
		return nil, false
	}
	return s.Encounters[index], true
}

// EncounterKind tags whether an EncounterSummary is a standalone boss kill
// or a mythic-plus (keystone dungeon) run.
type EncounterKind string

const (
	EncounterBoss       EncounterKind = "boss"
	EncounterMythicPlus EncounterKind = "mythic_plus"
)

// PhaseBreakdown summarises one phase of a boss encounter: its time window
// and the damage dealt to each target while it was active.
type PhaseBreakdown struct {
	PhaseID      int              `json:"phase_id"`
	StartSecs    float64          `json:"start_secs"`
	EndSecs      float64          `json:"end_secs"`
	TargetDamage map[string]int64 `json:"target_damage"`
}

// HPSample is one point on a boss_hp_timeline: the tracked creature's HP
// percentage at a given elapsed time, sampled at damage events.
type HPSample struct {
	TimeSecs float64 `json:"time_secs"`
	HPPct    float64 `json:"hp_pct"`
}

// KeySegment is a contiguous slice of a mythic-plus run, either "trash" or
// "boss". Pulls is a dead field per the original spec's Open Question —
// declared for wire compatibility with the frontend, never populated.
type KeySegment struct {
	Kind            string                   `json:"kind"` // "trash" | "boss"
	Index           int                      `json:"index"`
	StartSecs       float64                  `json:"start_secs"`
	DurationSecs    float64                  `json:"duration_secs"`
	Players         []*PlayerSummary         `json:"players"`
	Deaths          []*DeathEvent            `json:"deaths"`
	BuffUptimes     map[string][]*BuffUptime `json:"buff_uptimes"`
	EnemyBreakdowns []*EnemyBreakdown        `json:"enemy_breakdowns"`
	Pulls           []any                    `json:"pulls"`
}

// BossEncounter is a boss kill/wipe nested inside a mythic-plus run's
// boss_encounters list — a lighter-weight record than a standalone
// EncounterSummary, since the run itself owns the overall player roster.
type BossEncounter struct {
	EncounterID  int     `json:"encounter_id"`
	Name         string  `json:"name"`
	Success      bool    `json:"success"`
	StartSecs    float64 `json:"start_secs"`
	DurationSecs float64 `json:"duration_secs"`
}

// EncounterSummary is one scoped fight: either a standalone boss kill or a
// full mythic-plus run. Fields specific to one kind are zero/empty on the
// other (Go has no tagged unions; this mirrors the wire shape the frontend
// already expects from the original implementation).
type EncounterSummary struct {
	Index          int           `json:"index"`
	EncounterType  EncounterKind `json:"encounter_type"`
	EncounterID    int           `json:"encounter_id"`
	Name           string        `json:"name"`
	DifficultyID   int           `json:"difficulty_id,omitempty"`
	DifficultyName string        `json:"difficulty_name,omitempty"`
	GroupSize      int           `json:"group_size,omitempty"`
	Success        bool          `json:"success"`
	DurationSecs   float64       `json:"duration_secs"`
	StartTime      string        `json:"start_time"`
	EndTime        string        `json:"end_time"`

	Players         []*PlayerSummary         `json:"players"`
	Deaths          []*DeathEvent            `json:"deaths"`
	BuffUptimes     map[string][]*BuffUptime `json:"buff_uptimes"`
	EnemyBreakdowns []*EnemyBreakdown        `json:"enemy_breakdowns"`

	BossHPPct          float64                  `json:"boss_hp_pct,omitempty"`
	BossMaxHP          int64                    `json:"boss_max_hp,omitempty"`
	Phases             []*PhaseBreakdown        `json:"phases"`
	TimeBucketedDamage map[int]map[string]int64 `json:"time_bucketed_player_damage"`
	BossHPTimeline     []HPSample               `json:"boss_hp_timeline"`

	// Mythic-plus only.
	KeyLevel       int              `json:"key_level,omitempty"`
	Affixes        []int            `json:"affixes,omitempty"`
	BossEncounters []*BossEncounter `json:"boss_encounters,omitempty"`
	Segments       []*KeySegment    `json:"segments,omitempty"`
}

// EncounterReplay is the dead-on-arrival projection backing the
// /encounter/{index}/replay route. All three fields are declared but never
// populated by the engine (original spec's Open Question); this keeps the
// wire shape stable for the frontend.
type EncounterReplay struct {
	ReplayTimeline   []any `json:"replay_timeline"`
	BossPositions    []any `json:"boss_positions"`
	RawAbilityEvents []any `json:"raw_ability_events"`
}

// Replay always returns the empty wire-compatible projection; population is
// explicitly out of scope for this engine (see spec §9 Open Question).
func (e *EncounterSummary) Replay() EncounterReplay {
	return EncounterReplay{
		ReplayTimeline:   []any{},
		BossPositions:    []any{},
		RawAbilityEvents: []any{},
	}
}

// TargetAmount is one entry in an AbilityBreakdown's per-target distribution.
type TargetAmount struct {
	Target string `json:"target"`
	Amount int64  `json:"amount"`
}

// AbilityBreakdown aggregates a single spell's contribution to a player's
// outgoing damage, outgoing healing, or incoming damage total.
type AbilityBreakdown struct {
	SpellID   int            `json:"spell_id"`
	SpellName string         `json:"spell_name"`
	School    int            `json:"school"`
	Total     int64          `json:"total"`
	Hits      int            `json:"hits"`
	Targets   []TargetAmount `json:"targets"`
}

// PlayerSummary holds one participant's totals for an encounter scope.
type PlayerSummary struct {
	GUID  string `json:"guid"`
	Name  string `json:"name"`
	Class string `json:"class,omitempty"`
	Spec  string `json:"spec,omitempty"`
	Role  string `json:"role,omitempty"`

	DamageDone  int64   `json:"damage_done"`
	DamageTaken int64   `json:"damage_taken"`
	HealingDone int64   `json:"healing_done"`
	Deaths      int     `json:"deaths"`
	DPS         float64 `json:"dps"`
	HPS         float64 `json:"hps"`

	OutgoingDamage  []*AbilityBreakdown `json:"outgoing_damage"`
	OutgoingHealing []*AbilityBreakdown `json:"outgoing_healing"`
	IncomingDamage  []*AbilityBreakdown `json:"incoming_damage"`
}

// TimelineEvent is one entry in a BuffUptime's timeline: an apply, remove,
// or stack-count change, monotone non-decreasing in Time.
type TimelineEvent struct {
	Time   float64 `json:"time"`
	Event  string  `json:"event_type"` // "apply" | "remove" | "stack"
	Stacks int     `json:"stacks"`
}

// BuffUptime summarises one aura's presence on one player across an
// encounter scope.
type BuffUptime struct {
	SpellID    int             `json:"spell_id"`
	Name       string          `json:"name"`
	SourceName string          `json:"source_name"`
	UptimeSecs float64         `json:"uptime_secs"`
	UptimePct  float64         `json:"uptime_pct"`
	AvgStacks  float64         `json:"avg_stacks"`
	MaxStacks  int             `json:"max_stacks"`
	Timeline   []TimelineEvent `json:"timeline"`
}

// RecapEvent is one entry in a DeathEvent's recap: a damage, heal, or aura
// transition in the 15 seconds preceding death.
type RecapEvent struct {
	TimeIntoFightSecs float64 `json:"time_into_fight_secs"`
	EventType         string  `json:"event_type"` // "damage" | "heal" | "buff_applied" | "buff_removed"
	SourceName        string  `json:"source_name"`
	SpellID           int     `json:"spell_id"`
	SpellName         string  `json:"spell_name"`
	Amount            int64   `json:"amount,omitempty"`
}

// KillingBlow describes the final hit that killed a player.
type KillingBlow struct {
	SpellID    int    `json:"spell_id"`
	SpellName  string `json:"spell_name"`
	SourceName string `json:"source_name"`
	Amount     int64  `json:"amount"`
	Overkill   int64  `json:"overkill"`
}

// DeathEvent records a single player death and the 15 seconds preceding it.
type DeathEvent struct {
	Time              string       `json:"time"`
	PlayerName        string       `json:"player_name"`
	PlayerGUID        string       `json:"player_guid"`
	KillingBlow       *KillingBlow `json:"killing_blow,omitempty"`
	TimeIntoFightSecs float64      `json:"time_into_fight_secs"`
	Recap             []RecapEvent `json:"recap"`
}

// PlayerContribution is one player's share of an EnemyBreakdown's damage total.
type PlayerContribution struct {
	GUID   string `json:"guid"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// EnemyBreakdown aggregates the damage received by a single non-player
// target, classified by MobType (Boss, Pet, Trash).
type EnemyBreakdown struct {
	TargetName   string               `json:"target_name"`
	TotalDamage  int64                `json:"total_damage"`
	Kills        int                  `json:"kills"`
	MobType      string               `json:"mob_type"` // "Boss" | "Pet" | "Trash"
	Contributors []PlayerContribution `json:"contributors"`
}

// MarshalSummary serializes s using goccy/go-json, a faster drop-in for
// encoding/json on struct-heavy payloads like a multi-encounter summary
// with thousands of ability rows. Struct tags above are the source of
// truth; this is wire-compatible with encoding/json.Marshal(s).
func MarshalSummary(s *CombatLogSummary) ([]byte, error) {
	return marshalJSON(s)
}
