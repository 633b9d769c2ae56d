// Compatibility and satisfaction scoring.
package agents

import "math"

// sharedInterestScale is a fixed normalization constant for the interest
// term. It is not a true fraction of either interest set.
const sharedInterestScale = 5.0

// Compatibility scores how well two agents fit, in [0,1]: half personality
// similarity, half shared interests. Symmetric, and recomputed from the full
// profiles on every call, never cached.
func (a *DatingAgent) Compatibility(other *DatingAgent) float64 {
	var diff float64
	for _, t := range AllTraits {
		diff += math.Abs(a.Personality[t] - other.Personality[t])
	}
	similarity := 1 - diff/float64(len(AllTraits))

	shared := 0
	for in, has := range a.Interests {
		if has && other.Interests[in] {
			shared++
		}
	}

	return similarity*0.5 + float64(shared)/sharedInterestScale*0.5
}

// UpdateSatisfaction recomputes this agent's relationship satisfaction from
// a daily random fluctuation plus a pull toward (or away from) the partner's
// compatibility. Called once per tick per side of a relationship; mutates and
// returns the new value.
func (a *DatingAgent) UpdateSatisfaction(partner *DatingAgent) float64 {
	compat := a.Compatibility(partner)
	fluctuation := a.rng.Float64()*0.2 - 0.1

	a.Satisfaction = clamp(a.Satisfaction+fluctuation+(compat-0.5)*0.1, 0, 1)
	return a.Satisfaction
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
