// Package agents provides the dating agent data model, the perceive/decide
// behavior loop, and the compatibility scoring that drives matchmaking.
package agents

import (
	"math/rand"
)

// PersonalityTrait enumerates the scored personality dimensions.
type PersonalityTrait uint8

const (
	TraitOpenness PersonalityTrait = iota
	TraitExtraversion
	TraitAgreeableness
)

// AllTraits lists every trait in a fixed order for deterministic iteration.
var AllTraits = [...]PersonalityTrait{TraitOpenness, TraitExtraversion, TraitAgreeableness}

func (t PersonalityTrait) String() string {
	switch t {
	case TraitOpenness:
		return "openness"
	case TraitExtraversion:
		return "extraversion"
	case TraitAgreeableness:
		return "agreeableness"
	}
	return "unknown"
}

// Interest enumerates the hobby tags agents can share.
type Interest uint8

const (
	InterestSports Interest = iota
	InterestMusic
	InterestTravel
	InterestFood
	InterestTech
	InterestArt
	InterestGaming
	InterestReading
)

// AllInterests lists every interest in a fixed order.
var AllInterests = [...]Interest{
	InterestSports, InterestMusic, InterestTravel, InterestFood,
	InterestTech, InterestArt, InterestGaming, InterestReading,
}

func (i Interest) String() string {
	switch i {
	case InterestSports:
		return "sports"
	case InterestMusic:
		return "music"
	case InterestTravel:
		return "travel"
	case InterestFood:
		return "food"
	case InterestTech:
		return "tech"
	case InterestArt:
		return "art"
	case InterestGaming:
		return "gaming"
	case InterestReading:
		return "reading"
	}
	return "unknown"
}

// RelationshipStatus tracks whether an agent is currently coupled.
type RelationshipStatus uint8

const (
	StatusSingle RelationshipStatus = iota
	StatusInRelationship
)

func (s RelationshipStatus) String() string {
	if s == StatusInRelationship {
		return "in_relationship"
	}
	return "single"
}

// DatingAgent is the core entity representing a person in the simulation.
// The profile is an explicit record rather than a loose state bag so the
// compiler checks every field access.
type DatingAgent struct {
	ID   string
	Name string

	Personality    map[PersonalityTrait]float64 // Trait scores, 0.0–1.0
	Interests      map[Interest]bool
	Status         RelationshipStatus
	EmotionalState float64 // 0.0–1.0, drifts smoothly over time
	Satisfaction   float64 // Relationship satisfaction, 0.0–1.0

	// Memory holds the bounded observation/action history (see memory.go).
	Memory []MemoryEntry

	rng      *rand.Rand // Private random stream, seeded by the spawner
	moodLane float64    // Noise-field row for emotional drift
}

// NewAgent creates an agent with the given identity and private random
// stream. The profile starts empty; the spawner fills it in.
func NewAgent(id, name string, rng *rand.Rand) *DatingAgent {
	return &DatingAgent{
		ID:             id,
		Name:           name,
		Personality:    make(map[PersonalityTrait]float64, len(AllTraits)),
		Interests:      make(map[Interest]bool),
		Status:         StatusSingle,
		EmotionalState: 0.5,
		Satisfaction:   1.0,
		rng:            rng,
	}
}

// InterestNames returns the agent's interests as strings in enum order.
func (a *DatingAgent) InterestNames() []string {
	names := make([]string, 0, len(a.Interests))
	for _, in := range AllInterests {
		if a.Interests[in] {
			names = append(names, in.String())
		}
	}
	return names
}
