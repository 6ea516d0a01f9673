// Package tracker implements the per-scope event accumulator (§4.4): the
// ~15 aggregation maps fed by classified combat events, and the
// materialisation methods that turn them into PlayerSummary, BuffUptime,
// EnemyBreakdown, and PhaseBreakdown values on demand. A Tracker is created
// at scope entry (standalone encounter, mythic-plus run, or segment), fed
// events until scope exit, then queried once.
package tracker

import "strings"

const (
	recapWindowSecs  = 15.0
	recapRingCap     = 200
	recapTrimSecs    = 60.0
	auraRemoveFilter = 0.5
)

// abilityAgg accumulates one (guid, spellID) pair's contribution to a
// damage or healing total.
type abilityAgg struct {
	name   string
	school int
	total  int64
	hits   int
}

// lastHit records the most recent damaging event against a guid, so
// UNIT_DIED can attribute the killing blow without scanning history.
type lastHit struct {
	spellID    int
	spellName  string
	sourceName string
	amount     int64
	overkill   int64
}

// auraEvt is one raw entry in a (guid, spellID) aura timeline.
type auraEvt struct {
	time   float64
	kind   string // "apply" | "remove" | "stack"
	stacks int
}

// recapEvt is a buffered candidate for a future death recap.
type recapEvt struct {
	time       float64
	eventType  string
	sourceName string
	spellID    int
	spellName  string
	amount     int64
}

// deathRecord is an internally-built death, finalised into model.DeathEvent
// by the caller (which supplies the formatted timestamp string).
type deathRecord struct {
	time       float64
	playerGUID string
	playerName string
	killing    *killingBlow
	recap      []recapEvt
}

type killingBlow struct {
	spellID    int
	spellName  string
	sourceName string
	amount     int64
	overkill   int64
}

type playerMeta struct {
	name   string
	specID int
}

type hpState struct {
	current int64
	max     int64
}

type phaseTransition struct {
	time    float64
	phaseID int
}

// Tracker owns the full per-scope aggregate state described in §4.4.
type Tracker struct {
	startTime float64

	players map[string]*playerMeta

	damage      map[string]map[int]*abilityAgg
	healing     map[string]map[int]*abilityAgg
	damageTaken map[string]int64

	damageTargets  map[string]map[int]map[string]int64
	healingTargets map[string]map[int]map[string]int64

	// incomingDamage[guid][spellID] aggregates damage taken by guid, broken
	// out per source spell, for the PlayerSummary.IncomingDamage breakdown.
	incomingDamage map[string]map[int]*abilityAgg

	deathCounts map[string]int
	deaths      []deathRecord
	recapRing   map[string][]recapEvt

	lastDamageTo map[string]lastHit

	auraTimeline  map[string]map[int][]auraEvt
	currentStacks map[string]map[int]int
	spellNames    map[int]string
	auraSource    map[string]string // key "guid|spellID" -> source name

	creaturePrefix map[string]string // creature name -> guid prefix label
	creatureHP     map[string]hpState
	killCounts     map[string]int

	phase            int
	phaseTransitions []phaseTransition
	phaseDamage      map[int]map[string]int64

	bossName       string
	bossMaxHPSeen  int64
	bossHPPct      float64
	bossHPTimeline []hpSample

	timeBucketDamage map[int]map[string]int64
}

type hpSample struct {
	timeSecs float64
	hpPct    float64
}

// New creates a Tracker scoped to start. When inherit is non-nil, player
// identity state (names and spec ids) carries forward from the outer
// tracker so short-lived segment trackers still know who each GUID is.
func New(start float64, inherit *Tracker) *Tracker {
	t := &Tracker{
		startTime:        start,
		players:          make(map[string]*playerMeta),
		damage:           make(map[string]map[int]*abilityAgg),
		healing:          make(map[string]map[int]*abilityAgg),
		damageTaken:      make(map[string]int64),
		damageTargets:    make(map[string]map[int]map[string]int64),
		healingTargets:   make(map[string]map[int]map[string]int64),
		incomingDamage:   make(map[string]map[int]*abilityAgg),
		deathCounts:      make(map[string]int),
		recapRing:        make(map[string][]recapEvt),
		lastDamageTo:     make(map[string]lastHit),
		auraTimeline:     make(map[string]map[int][]auraEvt),
		currentStacks:    make(map[string]map[int]int),
		spellNames:       make(map[int]string),
		auraSource:       make(map[string]string),
		creaturePrefix:   make(map[string]string),
		creatureHP:       make(map[string]hpState),
		killCounts:       make(map[string]int),
		phase:            1,
		phaseDamage:      make(map[int]map[string]int64),
		timeBucketDamage: make(map[int]map[string]int64),
	}
	if inherit != nil {
		for guid, meta := range inherit.players {
			cp := *meta
			t.players[guid] = &cp
		}
	}
	return t
}

// elapsed returns the number of seconds since the tracker's scope started.
func (t *Tracker) elapsed(ts float64) float64 {
	d := ts - t.startTime
	if d < 0 {
		return 0
	}
	return d
}

// IsPlayer reports whether guid carries the Player- prefix (§3).
func IsPlayer(guid string) bool {
	return strings.HasPrefix(guid, "Player-")
}

// guidPrefixLabel extracts the "Player"/"Creature"/"Vehicle"/"Pet"/... label
// from a GUID's leading segment.
func guidPrefixLabel(guid string) string {
	if i := strings.IndexByte(guid, '-'); i > 0 {
		return guid[:i]
	}
	return guid
}

// SetPlayerSpec records a non-zero specialization id for guid in this
// tracker (and is called on every live tracker by COMBATANT_INFO handling
// in the driver, per §4.4).
func (t *Tracker) SetPlayerSpec(guid string, specID int) {
	if specID <= 0 {
		return
	}
	m := t.playerMeta(guid)
	m.specID = specID
}

// SetPlayerName records the latest observed name for guid.
func (t *Tracker) SetPlayerName(guid, name string) {
	if name == "" {
		return
	}
	m := t.playerMeta(guid)
	m.name = name
}

func (t *Tracker) playerMeta(guid string) *playerMeta {
	m, ok := t.players[guid]
	if !ok {
		m = &playerMeta{}
		t.players[guid] = m
	}
	return m
}

// SetPhase sets the current phase id on this tracker and appends the
// transition, called on every live tracker by ENCOUNTER_PHASE_CHANGE.
func (t *Tracker) SetPhase(ts float64, phaseID int) {
	t.phase = phaseID
	t.phaseTransitions = append(t.phaseTransitions, phaseTransition{time: t.elapsed(ts), phaseID: phaseID})
}
