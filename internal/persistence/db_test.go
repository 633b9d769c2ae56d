package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/dating-world/internal/engine"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveEventsIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	events := []engine.Event{
		{Seq: 1, Tick: 3, Description: "Alex and Blake matched", Category: "match"},
		{Seq: 2, Tick: 4, Description: "Casey broke up with Drew", Category: "breakup"},
	}
	require.NoError(t, db.SaveEvents(events))

	// Saving an overlapping batch must not duplicate rows.
	require.NoError(t, db.SaveEvents(append(events, engine.Event{
		Seq: 3, Tick: 5, Description: "Emery expressed interest in Finley", Category: "social",
	})))

	got, err := db.RecentEvents(10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, uint64(3), got[0].Seq)
	assert.Equal(t, "match", got[2].Category)
	assert.Equal(t, "Alex and Blake matched", got[2].Description)
}

func TestSaveEventsEmptyBatch(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.SaveEvents(nil))
}

func TestSaveSamplesUpsertsByTick(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveSamples([]engine.StatsSample{
		{Tick: 1, Stats: engine.Stats{MessagesSent: 2}, Singles: 10, Couples: 0},
		{Tick: 2, Stats: engine.Stats{MessagesSent: 5, RelationshipsFormed: 1}, Singles: 8, Couples: 1},
	}))

	// Re-saving tick 2 replaces the row.
	require.NoError(t, db.SaveSamples([]engine.StatsSample{
		{Tick: 2, Stats: engine.Stats{MessagesSent: 6, RelationshipsFormed: 1}, Singles: 8, Couples: 1},
	}))

	var count int
	require.NoError(t, db.conn.Get(&count, "SELECT COUNT(*) FROM stats_history"))
	assert.Equal(t, 2, count)

	var messages uint64
	require.NoError(t, db.conn.Get(&messages,
		"SELECT messages_sent FROM stats_history WHERE tick = 2"))
	assert.Equal(t, uint64(6), messages)
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveMeta("seed", "42"))
	require.NoError(t, db.SaveMeta("seed", "43"))

	got, err := db.GetMeta("seed")
	require.NoError(t, err)
	assert.Equal(t, "43", got)

	_, err = db.GetMeta("missing")
	assert.Error(t, err)
}

func TestArchiveAdvancesCursor(t *testing.T) {
	db := openTestDB(t)

	sim, err := engine.NewSimulation(engine.Config{Population: 20, Seed: 7})
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		sim.Step()
	}

	cursor, err := db.Archive(sim, 0, sim.History())
	require.NoError(t, err)

	events := sim.EventsSince(0)
	if len(events) > 0 {
		assert.Equal(t, events[len(events)-1].Seq, cursor)
	} else {
		assert.Zero(t, cursor)
	}

	// A second pass with nothing new keeps the cursor and adds no rows.
	again, err := db.Archive(sim, cursor, nil)
	require.NoError(t, err)
	assert.Equal(t, cursor, again)

	stored, err := db.RecentEvents(5000)
	require.NoError(t, err)
	assert.Len(t, stored, len(events))

	lastTick, err := db.GetMeta("last_tick")
	require.NoError(t, err)
	assert.Equal(t, "50", lastTick)
}
