package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/dating-world/internal/agents"
)

func newTestSim(t *testing.T, population int, seed int64) *Simulation {
	t.Helper()
	sim, err := NewSimulation(Config{Population: population, Seed: seed})
	require.NoError(t, err)
	return sim
}

// makeSoulmates rewrites two agents into perfect matches: identical
// personalities and five shared interests, compatibility 1.0.
func makeSoulmates(a, b *agents.DatingAgent) {
	for _, tr := range agents.AllTraits {
		a.Personality[tr] = 0.5
		b.Personality[tr] = 0.5
	}
	shared := []agents.Interest{
		agents.InterestSports, agents.InterestMusic, agents.InterestTravel,
		agents.InterestFood, agents.InterestTech,
	}
	clear(a.Interests)
	clear(b.Interests)
	for _, in := range shared {
		a.Interests[in] = true
		b.Interests[in] = true
	}
}

func assertInvariants(t *testing.T, s *Simulation) {
	t.Helper()

	// Relationship map is symmetric with even cardinality.
	require.Zero(t, len(s.env.relationships)%2)
	for id, partner := range s.env.relationships {
		back, ok := s.env.relationships[partner]
		require.True(t, ok, "partner %s missing reverse entry", partner)
		require.Equal(t, id, back)
	}

	for _, a := range s.agents {
		_, coupled := s.env.relationships[a.ID]
		if coupled {
			require.Equal(t, agents.StatusInRelationship, a.Status, "agent %s", a.Name)
		} else {
			require.Equal(t, agents.StatusSingle, a.Status, "agent %s", a.Name)
		}

		require.GreaterOrEqual(t, a.Satisfaction, 0.0)
		require.LessOrEqual(t, a.Satisfaction, 1.0)
		require.GreaterOrEqual(t, a.EmotionalState, 0.0)
		require.LessOrEqual(t, a.EmotionalState, 1.0)
		for _, tr := range agents.AllTraits {
			require.GreaterOrEqual(t, a.Personality[tr], 0.0)
			require.LessOrEqual(t, a.Personality[tr], 1.0)
		}
	}
}

func TestNewSimulationRejectsNonPositivePopulation(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		_, err := NewSimulation(Config{Population: n, Seed: 1})
		assert.Error(t, err, "population %d", n)
	}
}

func TestStepMaintainsInvariants(t *testing.T) {
	sim := newTestSim(t, 20, 11)

	for i := 0; i < 200; i++ {
		sim.Step()
		assertInvariants(t, sim)
	}

	assert.Equal(t, uint64(200), sim.env.CurrentTick())
}

func TestStatsAreMonotone(t *testing.T) {
	sim := newTestSim(t, 30, 12)

	var prev Stats
	for i := 0; i < 100; i++ {
		sim.Step()
		cur := sim.stats
		assert.GreaterOrEqual(t, cur.MessagesSent, prev.MessagesSent)
		assert.GreaterOrEqual(t, cur.DatesArranged, prev.DatesArranged)
		assert.GreaterOrEqual(t, cur.RelationshipsFormed, prev.RelationshipsFormed)
		prev = cur
	}
}

func TestRequestDateCreatesRelationshipAboveThreshold(t *testing.T) {
	sim := newTestSim(t, 2, 13)
	a, b := sim.agents[0], sim.agents[1]
	makeSoulmates(a, b)

	// Only one other single exists, so target resolution is forced.
	sim.resolveRequestDate(a, 0)

	assert.Equal(t, agents.StatusInRelationship, a.Status)
	assert.Equal(t, agents.StatusInRelationship, b.Status)
	assert.Equal(t, uint64(1), sim.stats.RelationshipsFormed)
	assert.Equal(t, uint64(1), sim.stats.DatesArranged)

	partner, ok := sim.env.PartnerOf(a.ID)
	require.True(t, ok)
	assert.Equal(t, b.ID, partner)
	assertInvariants(t, sim)

	require.Len(t, sim.env.dates, 1)
	assert.True(t, sim.env.dates[0].Matched)
	assert.InDelta(t, 1.0, sim.env.dates[0].Compatibility, 1e-9)
}

func TestRequestDateBelowThresholdArrangesDateOnly(t *testing.T) {
	sim := newTestSim(t, 2, 14)
	a, b := sim.agents[0], sim.agents[1]

	// Opposite personalities, disjoint interests: compatibility 0.
	for _, tr := range agents.AllTraits {
		a.Personality[tr] = 0
		b.Personality[tr] = 1
	}
	clear(a.Interests)
	clear(b.Interests)

	sim.resolveRequestDate(a, 0)

	assert.Equal(t, agents.StatusSingle, a.Status)
	assert.Equal(t, agents.StatusSingle, b.Status)
	assert.Equal(t, uint64(0), sim.stats.RelationshipsFormed)
	assert.Equal(t, uint64(1), sim.stats.DatesArranged)
	require.Len(t, sim.env.dates, 1)
	assert.False(t, sim.env.dates[0].Matched)
}

func TestExpressInterestDeliversMessage(t *testing.T) {
	sim := newTestSim(t, 2, 15)
	a, b := sim.agents[0], sim.agents[1]

	sim.resolveExpressInterest(a, agents.Action{
		AgentID: a.ID,
		Kind:    agents.ActionExpressInterest,
		Message: "Hi! I'm " + a.Name,
	}, 0)

	assert.Equal(t, uint64(1), sim.stats.MessagesSent)
	require.Len(t, sim.env.messages, 1)
	assert.Equal(t, a.ID, sim.env.messages[0].From)
	assert.Equal(t, b.ID, sim.env.messages[0].To)

	// Interest never changes relationship status.
	assert.Equal(t, agents.StatusSingle, a.Status)
	assert.Equal(t, agents.StatusSingle, b.Status)
}

func TestSendMessageReachesPartner(t *testing.T) {
	sim := newTestSim(t, 2, 16)
	a, b := sim.agents[0], sim.agents[1]
	sim.createRelationship(a, b, 0)

	sim.resolveSendMessage(a, agents.Action{
		AgentID: a.ID,
		Kind:    agents.ActionSendMessage,
		Message: "How are you?",
	}, 1)

	require.Len(t, sim.env.messages, 1)
	assert.Equal(t, b.ID, sim.env.messages[0].To)
	assert.Equal(t, "How are you?", sim.env.messages[0].Content)
	assert.Equal(t, uint64(1), sim.stats.MessagesSent)

	// A single agent with no partner is a silent no-op.
	sim.breakUp(a, b, 1)
	sim.resolveSendMessage(a, agents.Action{AgentID: a.ID, Kind: agents.ActionSendMessage}, 2)
	assert.Len(t, sim.env.messages, 1)
}

func TestBreakupGivesCleanSlate(t *testing.T) {
	sim := newTestSim(t, 4, 17)
	a, b := sim.agents[0], sim.agents[1]
	sim.createRelationship(a, b, 0)
	a.Satisfaction = 0.2
	b.Satisfaction = 0.4

	sim.breakUp(a, b, 5)

	assert.Equal(t, agents.StatusSingle, a.Status)
	assert.Equal(t, agents.StatusSingle, b.Status)
	assert.Equal(t, 1.0, a.Satisfaction)
	assert.Equal(t, 1.0, b.Satisfaction)
	_, okA := sim.env.PartnerOf(a.ID)
	_, okB := sim.env.PartnerOf(b.ID)
	assert.False(t, okA)
	assert.False(t, okB)
	assertInvariants(t, sim)

	// A breakup event was emitted.
	events := sim.events
	require.NotEmpty(t, events)
	assert.Equal(t, "breakup", events[len(events)-1].Category)
}

func TestCheckRelationshipsUpdatesBothSides(t *testing.T) {
	sim := newTestSim(t, 2, 18)
	a, b := sim.agents[0], sim.agents[1]
	makeSoulmates(a, b)
	sim.createRelationship(a, b, 0)
	a.Satisfaction = 0.5
	b.Satisfaction = 0.5

	sim.checkRelationships(1)

	// Perfect compatibility pulls +0.05, fluctuation is ±0.1.
	for _, sat := range []float64{a.Satisfaction, b.Satisfaction} {
		if sat != 1.0 { // may still be 1.0 only after a breakup reset
			assert.GreaterOrEqual(t, sat, 0.45)
			assert.LessOrEqual(t, sat, 0.65)
		}
	}
	assertInvariants(t, sim)
}

func TestPickSingleSkipsRequesterAndCoupled(t *testing.T) {
	sim := newTestSim(t, 4, 19)
	a, b, c := sim.agents[0], sim.agents[1], sim.agents[2]
	sim.createRelationship(b, c, 0)

	for i := 0; i < 50; i++ {
		target := sim.pickSingle(a.ID)
		require.NotNil(t, target)
		assert.Equal(t, sim.agents[3].ID, target.ID)
	}

	// No eligible target at all: nil, not an error.
	sim.createRelationship(a, sim.agents[3], 0)
	assert.Nil(t, sim.pickSingle(a.ID))
}

func TestSingleAgentPopulationIsInert(t *testing.T) {
	sim := newTestSim(t, 1, 20)

	for i := 0; i < 100; i++ {
		sim.Step()
	}

	assert.Equal(t, Stats{}, sim.stats)
	assert.Equal(t, 0, sim.env.CoupleCount())
	assert.Empty(t, sim.env.messages)
	assert.Empty(t, sim.env.dates)
	assert.Equal(t, uint64(100), sim.env.CurrentTick())
}

func TestSeededRunsAreIdentical(t *testing.T) {
	simA := newTestSim(t, 25, 21)
	simB := newTestSim(t, 25, 21)

	for i := 0; i < 60; i++ {
		simA.Step()
		simB.Step()
	}

	require.Equal(t, simA.history, simB.history)
	assert.Equal(t, simA.stats, simB.stats)

	// A different seed should not reproduce the same trajectory end-state
	// tick for tick (statistically certain over 60 ticks of a 25-agent
	// population).
	simC := newTestSim(t, 25, 22)
	for i := 0; i < 60; i++ {
		simC.Step()
	}
	assert.NotEqual(t, simA.history, simC.history)
}

func TestEventBufferIsBounded(t *testing.T) {
	sim := newTestSim(t, 2, 23)

	for i := 0; i < maxEvents+100; i++ {
		sim.emit(uint64(i), "filler", "social")
	}

	require.Len(t, sim.events, maxEvents)
	// Sequence numbers keep counting past the trim.
	assert.Equal(t, uint64(maxEvents+100), sim.events[len(sim.events)-1].Seq)
}
