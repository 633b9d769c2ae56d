// Package report formats simulation state into human-readable summaries.
// Pure presentation: it consumes read-only snapshots and mutates nothing.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/dating-world/internal/engine"
)

const rule = "=================================================="

// Summary renders the aggregate stats block for the given sim-day.
func Summary(sim *engine.Simulation, day uint64) string {
	stats := sim.Stats()

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Simulation Stats, %s day\n", humanize.Ordinal(int(day)))
	fmt.Fprintf(&b, "Singles: %s\n", humanize.Comma(int64(sim.Singles())))
	fmt.Fprintf(&b, "Couples: %s\n", humanize.Comma(int64(sim.Couples())))
	fmt.Fprintf(&b, "Messages Sent: %s\n", humanize.Comma(int64(stats.MessagesSent)))
	fmt.Fprintf(&b, "Dates Arranged: %s\n", humanize.Comma(int64(stats.DatesArranged)))
	fmt.Fprintf(&b, "Relationships Formed: %s\n", humanize.Comma(int64(stats.RelationshipsFormed)))
	fmt.Fprintln(&b, rule)
	return b.String()
}

// Network renders the current relationship graph, one couple per line.
func Network(sim *engine.Simulation) string {
	couples := sim.CoupleSnapshots()
	if len(couples) == 0 {
		return "No current relationships.\n"
	}

	var b strings.Builder
	fmt.Fprintln(&b, "Current Relationships:")
	for _, c := range couples {
		fmt.Fprintf(&b, "  %s + %s (compatibility %.2f)\n", c.AName, c.BName, c.Compatibility)
	}
	return b.String()
}

// AgentLine renders a one-line status for an agent.
func AgentLine(snap engine.AgentSnapshot) string {
	return fmt.Sprintf("%s (%s) satisfaction %.2f, mood %.2f, into %s",
		snap.Name, snap.Status, snap.Satisfaction, snap.EmotionalState,
		strings.Join(snap.Interests, "/"))
}

// Events renders recent events, one per line.
func Events(events []engine.Event) string {
	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "[day %d] %s\n", e.Tick, e.Description)
	}
	return b.String()
}
