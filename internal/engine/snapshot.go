// Read-only state queries for the presentation collaborators (report, HTTP
// API). Everything returned here is a copy; callers cannot mutate core state.
package engine

import (
	"github.com/talgya/dating-world/internal/agents"
)

// AgentSnapshot is a read-only view of one agent.
type AgentSnapshot struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Status         string             `json:"status"`
	Satisfaction   float64            `json:"satisfaction"`
	EmotionalState float64            `json:"emotional_state"`
	Interests      []string           `json:"interests"`
	Personality    map[string]float64 `json:"personality"`
	PartnerID      string             `json:"partner_id,omitempty"`
}

// CoupleSnapshot is a read-only view of one active relationship.
type CoupleSnapshot struct {
	AID           string  `json:"a_id"`
	AName         string  `json:"a_name"`
	BID           string  `json:"b_id"`
	BName         string  `json:"b_name"`
	Compatibility float64 `json:"compatibility"`
}

// CurrentTick returns the environment clock.
func (s *Simulation) CurrentTick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.CurrentTick()
}

// Stats returns a copy of the aggregate counters.
func (s *Simulation) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Population returns the number of agents in the simulation.
func (s *Simulation) Population() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agents)
}

// Singles returns the number of currently uncoupled agents.
func (s *Simulation) Singles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.singlesLocked()
}

// Couples returns the number of active relationships.
func (s *Simulation) Couples() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.CoupleCount()
}

// RecentEvents returns up to limit of the newest events, oldest first.
func (s *Simulation) RecentEvents(limit int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	out := make([]Event, limit)
	copy(out, s.events[len(s.events)-limit:])
	return out
}

// EventsSince returns every buffered event with a sequence number above seq.
func (s *Simulation) EventsSince(seq uint64) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Event
	for _, e := range s.events {
		if e.Seq > seq {
			out = append(out, e)
		}
	}
	return out
}

// History returns a copy of the per-tick stats trajectory.
func (s *Simulation) History() []StatsSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]StatsSample, len(s.history))
	copy(out, s.history)
	return out
}

// AgentSnapshots returns a view of every agent in collection order.
func (s *Simulation) AgentSnapshots() []AgentSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AgentSnapshot, 0, len(s.agents))
	for _, a := range s.agents {
		out = append(out, s.snapshotLocked(a))
	}
	return out
}

// AgentByID returns a view of a single agent.
func (s *Simulation) AgentByID(id string) (AgentSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.index[id]
	if !ok {
		return AgentSnapshot{}, false
	}
	return s.snapshotLocked(a), true
}

// CoupleSnapshots returns a view of every active relationship, each couple
// listed once, in agent-collection order.
func (s *Simulation) CoupleSnapshots() []CoupleSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var out []CoupleSnapshot
	for _, a := range s.agents {
		if seen[a.ID] {
			continue
		}
		partnerID, ok := s.env.PartnerOf(a.ID)
		if !ok {
			continue
		}
		b := s.index[partnerID]
		seen[a.ID] = true
		seen[b.ID] = true

		out = append(out, CoupleSnapshot{
			AID:           a.ID,
			AName:         a.Name,
			BID:           b.ID,
			BName:         b.Name,
			Compatibility: a.Compatibility(b),
		})
	}
	return out
}

func (s *Simulation) snapshotLocked(a *agents.DatingAgent) AgentSnapshot {
	personality := make(map[string]float64, len(agents.AllTraits))
	for _, t := range agents.AllTraits {
		personality[t.String()] = a.Personality[t]
	}

	snap := AgentSnapshot{
		ID:             a.ID,
		Name:           a.Name,
		Status:         a.Status.String(),
		Satisfaction:   a.Satisfaction,
		EmotionalState: a.EmotionalState,
		Interests:      a.InterestNames(),
		Personality:    personality,
	}
	if partner, ok := s.env.PartnerOf(a.ID); ok {
		snap.PartnerID = partner
	}
	return snap
}
