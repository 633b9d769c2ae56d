// Agent behavior: the perceive/decide/act loop.
// Agents act on local knowledge only: a date request leaves its target empty
// and the driver, which has global visibility, resolves it to a real single.
package agents

// ActionKind enumerates everything an agent can decide to do.
type ActionKind uint8

const (
	ActionObserve ActionKind = iota
	ActionSendMessage
	ActionRequestDate
	ActionAcceptDate
	ActionReject
	ActionExpressInterest
)

func (k ActionKind) String() string {
	switch k {
	case ActionObserve:
		return "observe"
	case ActionSendMessage:
		return "send_message"
	case ActionRequestDate:
		return "request_date"
	case ActionAcceptDate:
		return "accept_date"
	case ActionReject:
		return "reject"
	case ActionExpressInterest:
		return "express_interest"
	}
	return "unknown"
}

// Action is an agent's intended act for one tick. Immutable once created;
// consumed by the driver within the same tick.
type Action struct {
	AgentID string
	Kind    ActionKind
	Message string
	// TargetID stays empty when the agent emits the action; the driver fills
	// it in during resolution.
	TargetID string
}

// Observation is what an agent sees when it perceives the world: the clock,
// messages addressed to it, and the current relationship graph.
type Observation struct {
	Time          uint64
	Messages      []Message
	Relationships map[string]string
}

// actChance is the per-tick probability that an agent does anything at all.
const actChance = 0.10

// Perceive reads the environment and filters it down to this agent's view.
// No mutation.
func (a *DatingAgent) Perceive(env Environment) Observation {
	st := env.State()

	var mine []Message
	for _, m := range st.Messages {
		if m.To == a.ID {
			mine = append(mine, m)
		}
	}

	return Observation{
		Time:          st.Time,
		Messages:      mine,
		Relationships: st.Relationships,
	}
}

// Decide picks this tick's action from the observation. Most ticks the agent
// just watches; when it acts, singles flirt and couples check in.
func (a *DatingAgent) Decide(obs Observation) Action {
	if a.rng.Float64() >= actChance {
		return Action{AgentID: a.ID, Kind: ActionObserve}
	}

	if a.Status == StatusSingle {
		if a.rng.Float64() < 0.5 {
			return Action{
				AgentID: a.ID,
				Kind:    ActionExpressInterest,
				Message: "Hi! I'm " + a.Name,
			}
		}
		return Action{AgentID: a.ID, Kind: ActionRequestDate}
	}

	return Action{AgentID: a.ID, Kind: ActionSendMessage, Message: "How are you?"}
}

// Act runs the fixed perceive → decide → remember sequence and returns the
// chosen action. The sequencing is invariant across all agent variants, which
// is why it is a free function over the Environment contract rather than a
// method anyone can override.
func Act(a *DatingAgent, env Environment) Action {
	obs := a.Perceive(env)
	action := a.Decide(obs)
	a.remember(obs, action)
	return action
}
