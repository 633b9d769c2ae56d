// Emotional drift: agents' emotional state wanders along a smooth noise
// curve instead of jittering white-noise style. Purely observable color; it
// feeds reporting, never decisions.
package agents

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// moodFrequency controls how fast the noise curve moves per tick.
const moodFrequency = 0.05

// MoodField drives emotional drift for a whole population from one seeded
// noise source. Each agent follows its own row of the field.
type MoodField struct {
	noise opensimplex.Noise
}

// NewMoodField creates a mood field. The same seed replays the same drift.
func NewMoodField(seed int64) *MoodField {
	return &MoodField{noise: opensimplex.NewNormalized(seed)}
}

// Drift eases the agent's emotional state toward the field value for this
// tick. Result stays in [0,1].
func (f *MoodField) Drift(a *DatingAgent, tick uint64) {
	target := f.noise.Eval2(float64(tick)*moodFrequency, a.moodLane)
	a.EmotionalState = clamp(a.EmotionalState+(target-a.EmotionalState)*0.25, 0, 1)
}
