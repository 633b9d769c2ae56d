// Simulation driver: owns the environment and the agent collection, and
// arbitrates every action the agents emit.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/talgya/dating-world/internal/agents"
)

// matchThreshold is the compatibility a date must exceed to start a
// relationship.
const matchThreshold = 0.7

// breakupFactor scales breakup probability: 10% per tick at zero average
// satisfaction, 0% at full satisfaction.
const breakupFactor = 0.1

// maxEvents bounds the in-memory event buffer.
const maxEvents = 1000

// Stats tracks the monotone aggregate counters for the run.
type Stats struct {
	MessagesSent        uint64 `json:"messages_sent"`
	DatesArranged       uint64 `json:"dates_arranged"`
	RelationshipsFormed uint64 `json:"relationships_formed"`
}

// Event is a notable occurrence in the world.
type Event struct {
	Seq         uint64 `json:"seq"`
	Tick        uint64 `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "match", "breakup", "social"
}

// StatsSample is one per-tick point of the stats trajectory.
type StatsSample struct {
	Tick    uint64 `json:"tick"`
	Stats   Stats  `json:"stats"`
	Singles int    `json:"singles"`
	Couples int    `json:"couples"`
}

// Config controls simulation construction.
type Config struct {
	Population int
	Seed       int64
}

// Simulation wires the environment and agents together and advances them one
// tick at a time. All state behind the accessors is guarded so the HTTP API
// can read while the loop runs; the tick itself stays fully synchronous.
type Simulation struct {
	mu sync.Mutex

	env    *DatingEnvironment
	agents []*agents.DatingAgent
	index  map[string]*agents.DatingAgent

	stats   Stats
	events  []Event
	nextSeq uint64
	history []StatsSample

	rng  *rand.Rand
	mood *agents.MoodField
}

// NewSimulation builds a population of the given size paired with a fresh
// environment. Population must be positive.
func NewSimulation(cfg Config) (*Simulation, error) {
	if cfg.Population < 1 {
		return nil, fmt.Errorf("population must be positive, got %d", cfg.Population)
	}

	spawner := agents.NewSpawner(cfg.Seed)
	pop := spawner.SpawnPopulation(cfg.Population)

	index := make(map[string]*agents.DatingAgent, len(pop))
	for _, a := range pop {
		index[a.ID] = a
	}

	return &Simulation{
		env:    NewEnvironment(),
		agents: pop,
		index:  index,
		rng:    rand.New(rand.NewSource(cfg.Seed + 1)),
		mood:   agents.NewMoodField(cfg.Seed + 2),
	}, nil
}

type pendingAction struct {
	agent  *agents.DatingAgent
	action agents.Action
}

// Step advances the simulation by exactly one tick: collect one action per
// agent in stable order, resolve the non-observe ones, run the breakup
// sweep, drift moods, advance the clock, and record the stats sample.
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tick := s.env.CurrentTick()

	var queue []pendingAction
	for _, a := range s.agents {
		action := agents.Act(a, s.env)
		if action.Kind == agents.ActionObserve {
			continue
		}
		queue = append(queue, pendingAction{agent: a, action: action})
	}

	for _, p := range queue {
		if !s.env.IsValidAction(p.agent, p.action) {
			continue
		}
		switch p.action.Kind {
		case agents.ActionExpressInterest:
			s.resolveExpressInterest(p.agent, p.action, tick)
		case agents.ActionRequestDate:
			s.resolveRequestDate(p.agent, tick)
		case agents.ActionSendMessage:
			s.resolveSendMessage(p.agent, p.action, tick)
		}
	}

	s.checkRelationships(tick)

	for _, a := range s.agents {
		s.mood.Drift(a, tick)
	}

	s.env.Advance()

	s.history = append(s.history, StatsSample{
		Tick:    s.env.CurrentTick(),
		Stats:   s.stats,
		Singles: s.singlesLocked(),
		Couples: s.env.CoupleCount(),
	})
}

// pickSingle returns a uniformly random single agent other than exclude, or
// nil when none exists. No eligible target means the action silently drops,
// not an error.
func (s *Simulation) pickSingle(exclude string) *agents.DatingAgent {
	var candidates []*agents.DatingAgent
	for _, a := range s.agents {
		if a.ID != exclude && a.Status == agents.StatusSingle {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.rng.Intn(len(candidates))]
}

func (s *Simulation) resolveExpressInterest(a *agents.DatingAgent, action agents.Action, tick uint64) {
	target := s.pickSingle(a.ID)
	if target == nil {
		return
	}

	compat := a.Compatibility(target)
	s.env.recordMessage(agents.Message{
		From:    a.ID,
		To:      target.ID,
		Content: action.Message,
		Tick:    tick,
	})
	s.stats.MessagesSent++

	s.emit(tick, fmt.Sprintf("%s expresses interest in %s (compatibility %.2f)",
		a.Name, target.Name, compat), "social")
}

func (s *Simulation) resolveRequestDate(a *agents.DatingAgent, tick uint64) {
	target := s.pickSingle(a.ID)
	if target == nil {
		return
	}

	compat := a.Compatibility(target)
	matched := compat > matchThreshold
	if matched {
		s.createRelationship(a, target, tick)
	}

	s.env.recordDate(agents.DateRecord{
		Tick:          tick,
		RequesterID:   a.ID,
		TargetID:      target.ID,
		Compatibility: compat,
		Matched:       matched,
	})
	s.stats.DatesArranged++
}

func (s *Simulation) resolveSendMessage(a *agents.DatingAgent, action agents.Action, tick uint64) {
	partner, ok := s.env.PartnerOf(a.ID)
	if !ok {
		return
	}

	s.env.recordMessage(agents.Message{
		From:    a.ID,
		To:      partner,
		Content: action.Message,
		Tick:    tick,
	})
	s.stats.MessagesSent++
}

func (s *Simulation) createRelationship(a, b *agents.DatingAgent, tick uint64) {
	s.env.link(a.ID, b.ID)
	a.Status = agents.StatusInRelationship
	b.Status = agents.StatusInRelationship
	s.stats.RelationshipsFormed++

	s.emit(tick, fmt.Sprintf("%s and %s are now in a relationship", a.Name, b.Name), "match")
}

// checkRelationships runs the per-tick breakup sweep. Both sides update
// satisfaction, the pair draws once against the breakup chance, and all
// triggered breakups apply after the sweep so the relationship graph is never
// mutated mid-iteration. Pairs are visited in agent-collection order, not map
// order, to keep seeded runs reproducible.
func (s *Simulation) checkRelationships(tick uint64) {
	type pair struct{ a, b *agents.DatingAgent }

	seen := make(map[string]bool)
	var breakups []pair

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

		satA := a.UpdateSatisfaction(b)
		satB := b.UpdateSatisfaction(a)
		average := (satA + satB) / 2

		if s.rng.Float64() < (1-average)*breakupFactor {
			breakups = append(breakups, pair{a, b})
		}
	}

	for _, p := range breakups {
		s.breakUp(p.a, p.b, tick)
	}
}

// breakUp dissolves a relationship. Satisfaction resets to full for both
// sides, a clean slate rather than a lingering decay.
func (s *Simulation) breakUp(a, b *agents.DatingAgent, tick uint64) {
	s.env.unlink(a.ID, b.ID)
	a.Status = agents.StatusSingle
	b.Status = agents.StatusSingle
	a.Satisfaction = 1.0
	b.Satisfaction = 1.0

	s.emit(tick, fmt.Sprintf("%s and %s have broken up", a.Name, b.Name), "breakup")
}

func (s *Simulation) emit(tick uint64, description, category string) {
	s.nextSeq++
	s.events = append(s.events, Event{
		Seq:         s.nextSeq,
		Tick:        tick,
		Description: description,
		Category:    category,
	})
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}

	slog.Debug("event", "tick", tick, "category", category, "description", description)
}

func (s *Simulation) singlesLocked() int {
	n := 0
	for _, a := range s.agents {
		if a.Status == agents.StatusSingle {
			n++
		}
	}
	return n
}
