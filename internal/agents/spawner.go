// Agent spawning: builds the initial population with identities, names,
// personalities, and interests, all from one seeded random stream.
package agents

import (
	"math/rand"

	"github.com/google/uuid"
)

// Spawner creates agents for the simulation. The same seed produces the same
// population, ids included.
type Spawner struct {
	rng   *rand.Rand
	names []string
	next  int
}

// NewSpawner creates a spawner with the given seed. The name pool is shuffled
// once up front; spawning cycles through it when the population outgrows it.
func NewSpawner(seed int64) *Spawner {
	rng := rand.New(rand.NewSource(seed))

	names := make([]string, len(namePool))
	copy(names, namePool)
	rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	return &Spawner{rng: rng, names: names}
}

// SpawnPopulation creates count agents.
func (s *Spawner) SpawnPopulation(count int) []*DatingAgent {
	out := make([]*DatingAgent, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.spawnOne(i))
	}
	return out
}

func (s *Spawner) spawnOne(lane int) *DatingAgent {
	// Drawing the uuid from the spawner stream keeps ids replayable under a
	// fixed seed.
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		id = uuid.New()
	}

	name := s.names[s.next%len(s.names)]
	s.next++

	a := NewAgent(id.String(), name, rand.New(rand.NewSource(s.rng.Int63())))

	for _, t := range AllTraits {
		a.Personality[t] = s.rng.Float64()
	}

	// Between 2 and 5 distinct interests.
	k := 2 + s.rng.Intn(4)
	for _, idx := range s.rng.Perm(len(AllInterests))[:k] {
		a.Interests[AllInterests[idx]] = true
	}

	a.moodLane = float64(lane) * 3.7

	return a
}

// namePool is the fixed pool of given names, cycled when the population
// exceeds it.
var namePool = []string{
	"Alex", "Blair", "Casey", "Drew", "Eden", "Frankie", "Gray", "Harper",
	"Indie", "Jules", "Kennedy", "London", "Morgan", "Nico", "Oak", "Paris",
	"Quinn", "Riley", "Sage", "Taylor", "Union", "Val", "Winter", "Xen",
}
