// Agent memory: a bounded record of what each agent saw and did.
package agents

// MaxMemory caps the per-agent history. Oldest entries are dropped first;
// the source of the fluctuation data is the live world, so nothing is lost
// that a later tick cannot re-observe.
const MaxMemory = 256

// MemoryEntry pairs one observation with the action it produced.
type MemoryEntry struct {
	Observation Observation
	Action      Action
}

// remember appends the latest observation/action pair, evicting the oldest
// entry once the cap is reached.
func (a *DatingAgent) remember(obs Observation, action Action) {
	a.Memory = append(a.Memory, MemoryEntry{Observation: obs, Action: action})
	if len(a.Memory) > MaxMemory {
		a.Memory = a.Memory[len(a.Memory)-MaxMemory:]
	}
}

// RecentMemory returns up to n of the newest entries, oldest first.
func (a *DatingAgent) RecentMemory(n int) []MemoryEntry {
	if n <= 0 || len(a.Memory) == 0 {
		return nil
	}
	if n > len(a.Memory) {
		n = len(a.Memory)
	}
	out := make([]MemoryEntry, n)
	copy(out, a.Memory[len(a.Memory)-n:])
	return out
}
