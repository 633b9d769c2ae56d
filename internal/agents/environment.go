package agents

// Environment is the contract the simulation world presents to an agent.
// Agents only ever read through State; every mutation belongs to the driver.
type Environment interface {
	// State returns a read-only snapshot of the world.
	State() WorldState
	// IsValidAction reports whether an action is legal in the current state.
	// Pure predicate, no side effects.
	IsValidAction(a *DatingAgent, action Action) bool
	// Advance moves the environment clock forward by exactly one tick.
	Advance()
}

// Message is a delivered communication between two agents.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Content string `json:"content"`
	Tick    uint64 `json:"tick"`
}

// DateRecord logs one arranged date and its outcome.
type DateRecord struct {
	Tick          uint64  `json:"tick"`
	RequesterID   string  `json:"requester_id"`
	TargetID      string  `json:"target_id"`
	Compatibility float64 `json:"compatibility"`
	Matched       bool    `json:"matched"`
}

// WorldState is a point-in-time snapshot of the environment. Maps and slices
// are copies; mutating a snapshot never touches the live world.
type WorldState struct {
	Time          uint64
	Relationships map[string]string
	Messages      []Message
	Dates         []DateRecord
}
