// Package engine provides the dating environment, the simulation driver,
// and the paced tick loop.
package engine

import (
	"github.com/talgya/dating-world/internal/agents"
)

// DatingEnvironment holds the shared world state: the clock, the symmetric
// relationship graph, and the message and date logs. The simulation driver
// is the sole mutator; agents only read through State.
type DatingEnvironment struct {
	tick          uint64
	relationships map[string]string // agent id → partner id, always symmetric
	messages      []agents.Message
	dates         []agents.DateRecord
}

// NewEnvironment creates an empty environment at tick zero.
func NewEnvironment() *DatingEnvironment {
	return &DatingEnvironment{relationships: make(map[string]string)}
}

// State returns a deep-copied snapshot. Callers can hold or mutate it freely
// without touching the live world.
func (e *DatingEnvironment) State() agents.WorldState {
	rels := make(map[string]string, len(e.relationships))
	for k, v := range e.relationships {
		rels[k] = v
	}

	msgs := make([]agents.Message, len(e.messages))
	copy(msgs, e.messages)

	dates := make([]agents.DateRecord, len(e.dates))
	copy(dates, e.dates)

	return agents.WorldState{
		Time:          e.tick,
		Relationships: rels,
		Messages:      msgs,
		Dates:         dates,
	}
}

// IsValidAction reports whether an action is legal right now. A date request
// is invalid when the requester, or the resolved target once the driver has
// named one, is already in a relationship. Everything else passes; any
// deeper arbitration is driver logic, not environment logic.
func (e *DatingEnvironment) IsValidAction(a *agents.DatingAgent, action agents.Action) bool {
	if action.Kind != agents.ActionRequestDate {
		return true
	}
	if _, taken := e.relationships[a.ID]; taken {
		return false
	}
	if action.TargetID != "" {
		if _, taken := e.relationships[action.TargetID]; taken {
			return false
		}
	}
	return true
}

// Advance moves the clock forward by exactly one tick. Nothing else changes
// here; relationship and log mutation is driver-owned.
func (e *DatingEnvironment) Advance() {
	e.tick++
}

// CurrentTick returns the environment clock.
func (e *DatingEnvironment) CurrentTick() uint64 {
	return e.tick
}

// PartnerOf returns the partner of the given agent, if any.
func (e *DatingEnvironment) PartnerOf(id string) (string, bool) {
	p, ok := e.relationships[id]
	return p, ok
}

// CoupleCount returns the number of active relationships.
func (e *DatingEnvironment) CoupleCount() int {
	return len(e.relationships) / 2
}

// link writes both directions of a relationship.
func (e *DatingEnvironment) link(a, b string) {
	e.relationships[a] = b
	e.relationships[b] = a
}

// unlink removes both directions of a relationship.
func (e *DatingEnvironment) unlink(a, b string) {
	delete(e.relationships, a)
	delete(e.relationships, b)
}

func (e *DatingEnvironment) recordMessage(m agents.Message) {
	e.messages = append(e.messages, m)
}

func (e *DatingEnvironment) recordDate(d agents.DateRecord) {
	e.dates = append(e.dates, d)
}
