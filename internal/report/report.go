// Package report formats CombatLogSummary data as terminal tables using
// tablewriter, the way the teacher's report package renders match/player
// stats — rebuilt here around encounters, players, deaths, and enemies
// instead of CS2 rounds and weapons.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/wowlog/combatlog/internal/model"
)

// Verbose controls whether a one-line column explanation is printed above
// each table.
var Verbose = true

func printSection(w io.Writer, title, desc string) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
	if Verbose {
		fmt.Fprintf(w, "%s\n", desc)
	}
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}))
}

// PrintSummary prints the file-level header: log version/build and the
// zone changes observed.
func PrintSummary(w io.Writer, s *model.CombatLogSummary) {
	fmt.Fprintf(w, "\n%s  |  log version %s  |  build %s  |  %d encounter(s)\n",
		s.Filename, s.LogVersion, s.Build, len(s.Encounters))
	for _, z := range s.ZoneChanges {
		fmt.Fprintf(w, "  zone: %s (%d)\n", z.ZoneName, z.ZoneID)
	}
}

// PrintEncounterHeader prints one encounter's headline: kind, name,
// success/wipe, duration, and (for mythic-plus) key level.
func PrintEncounterHeader(w io.Writer, e *model.EncounterSummary) {
	outcome := color.RedString("WIPE")
	if e.Success {
		outcome = color.GreenString("KILL")
	}
	switch e.EncounterType {
	case model.EncounterMythicPlus:
		fmt.Fprintf(w, "\n[%d] %s  +%d  %s  %.1fs  (%s - %s)\n",
			e.Index, e.Name, e.KeyLevel, outcome, e.DurationSecs, e.StartTime, e.EndTime)
	default:
		fmt.Fprintf(w, "\n[%d] %s  %s  %.1fs  (%s - %s)\n",
			e.Index, e.Name, outcome, e.DurationSecs, e.StartTime, e.EndTime)
	}
}

// PrintPlayerTable prints the player roster with damage/healing totals.
func PrintPlayerTable(w io.Writer, players []*model.PlayerSummary) {
	printSection(w, "Players", "DPS/HPS are totals divided by encounter duration.")
	table := newTable(w)
	table.Header("NAME", "CLASS", "SPEC", "ROLE", "DMG", "DPS", "HEAL", "HPS", "DEATHS")
	for _, p := range players {
		table.Append(
			p.Name, p.Class, p.Spec, p.Role,
			strconv.FormatInt(p.DamageDone, 10),
			strconv.FormatFloat(p.DPS, 'f', 0, 64),
			strconv.FormatInt(p.HealingDone, 10),
			strconv.FormatFloat(p.HPS, 'f', 0, 64),
			strconv.Itoa(p.Deaths),
		)
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintDeathsTable prints every recorded death with its killing blow.
func PrintDeathsTable(w io.Writer, deaths []*model.DeathEvent) {
	if len(deaths) == 0 {
		return
	}
	printSection(w, "Deaths", "Killing blow is the last damage event recorded against the player.")
	table := newTable(w)
	table.Header("TIME", "PLAYER", "KILLING BLOW", "AMOUNT")
	for _, d := range deaths {
		blow, amount := "", ""
		if d.KillingBlow != nil {
			blow = d.KillingBlow.SpellName
			amount = strconv.FormatInt(d.KillingBlow.Amount, 10)
		}
		table.Append(d.Time, d.PlayerName, blow, amount)
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintEnemyTable prints the non-player targets damaged during the
// encounter, classified Boss/Pet/Trash.
func PrintEnemyTable(w io.Writer, enemies []*model.EnemyBreakdown) {
	printSection(w, "Enemies", "TYPE classifies the target as Boss, Pet, or Trash.")
	table := newTable(w)
	table.Header("TARGET", "TYPE", "DAMAGE TAKEN", "KILLS")
	for _, e := range enemies {
		table.Append(e.TargetName, e.MobType, strconv.FormatInt(e.TotalDamage, 10), strconv.Itoa(e.Kills))
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintKeySegments prints the trash/boss segment breakdown of a
// mythic-plus run.
func PrintKeySegments(w io.Writer, segments []*model.KeySegment) {
	if len(segments) == 0 {
		return
	}
	printSection(w, "Segments", "Each segment (trash or boss) shown with its start offset and duration.")
	table := newTable(w)
	table.Header("#", "KIND", "START", "DURATION")
	for _, s := range segments {
		table.Append(strconv.Itoa(s.Index), s.Kind,
			strconv.FormatFloat(s.StartSecs, 'f', 1, 64),
			strconv.FormatFloat(s.DurationSecs, 'f', 1, 64))
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintEncounter prints the full table set for one encounter.
func PrintEncounter(w io.Writer, e *model.EncounterSummary) {
	PrintEncounterHeader(w, e)
	PrintPlayerTable(w, e.Players)
	PrintDeathsTable(w, e.Deaths)
	PrintEnemyTable(w, e.EnemyBreakdowns)
	PrintKeySegments(w, e.Segments)
}
