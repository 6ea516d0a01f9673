// Package logdriver implements the single-pass combat log state machine
// (§4.5): it tokenizes each line, decodes its timestamp, and dispatches to
// the event tracker while tracking encounter/mythic-plus/segment scope
// transitions. Parse is the package's sole entry point.
package logdriver

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/wowlog/combatlog/internal/applog"
	"github.com/wowlog/combatlog/internal/errs"
	"github.com/wowlog/combatlog/internal/logtime"
	"github.com/wowlog/combatlog/internal/model"
	"github.com/wowlog/combatlog/internal/tokenizer"
	"github.com/wowlog/combatlog/internal/tracker"
)

const (
	maxLineSize = 1 << 20 // 1MiB — COMBATANT_INFO lines carry large talent/gear blobs
	scanBufSeed = 64 * 1024
)

// scope tags which kind of window is currently open.
type scope int

const (
	scopeNone scope = iota
	scopeBoss
	scopeMythicPlus
)

// driver holds all mutable state for one Parse call. It is not safe for
// concurrent use — one driver per file, same as the scanner it wraps.
type driver struct {
	summary *model.CombatLogSummary
	log     *applog.Logger

	scope scope

	// standalone boss encounter
	boss           *tracker.Tracker
	bossStart      float64
	bossEncID      int
	bossName       string
	bossDifficulty int
	bossGroupSize  int

	// mythic-plus run
	mp          *tracker.Tracker
	mpStart     float64
	mpKeyName   string
	mpZoneID    int
	mpKeyLevel  int
	mpAffixes   []int
	mpBosses    []*model.BossEncounter
	mpSegments  []*model.KeySegment
	mpSegIndex  int
	mpSegKind   string // "trash" | "boss"
	mpSeg       *tracker.Tracker
	mpSegStart  float64
	mpSegEncID  int
	mpSegName   string
}

// Parse reads the combat log at path in a single pass and returns its
// aggregated summary. File-open failure yields a ParseFailure domain error;
// per-line malformed or unrecognised events are individually dropped and
// never abort the scan. ctx is checked between lines for cooperative
// cancellation of long parses.
func Parse(ctx context.Context, path string) (*model.CombatLogSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.ParseFailure("open combat log", err)
	}
	defer f.Close()

	d := &driver{
		summary: &model.CombatLogSummary{Filename: filepath.Base(path)},
		log:     applog.Default().With("file", path),
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scanBufSeed), maxLineSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return d.summary, ctx.Err()
		default:
		}

		line := scanner.Text()
		ts, fields, ok := tokenizer.Tokenize(line)
		if !ok || len(fields) == 0 {
			continue
		}
		absTime, ok := logtime.Decode(ts)
		if !ok {
			continue
		}
		d.dispatch(absTime, fields)
	}

	if err := scanner.Err(); err != nil {
		d.log.Warn("combat log scan stopped early: " + err.Error())
	}

	return d.summary, nil
}

// liveTrackers returns every tracker currently accumulating events, per the
// "record on every live tracker" rule used by COMBATANT_INFO and
// ENCOUNTER_PHASE_CHANGE (§4.4/§4.5).
func (d *driver) liveTrackers() []*tracker.Tracker {
	switch d.scope {
	case scopeBoss:
		return []*tracker.Tracker{d.boss}
	case scopeMythicPlus:
		out := make([]*tracker.Tracker, 0, 2)
		if d.mp != nil {
			out = append(out, d.mp)
		}
		if d.mpSeg != nil {
			out = append(out, d.mpSeg)
		}
		return out
	default:
		return nil
	}
}
