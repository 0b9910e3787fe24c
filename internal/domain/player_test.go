package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAggregateApplyIsIdempotent(t *testing.T) {
	a := NewPlayerAggregate("Alice")
	id := uuid.New()
	c := Contribution{Won: true, CupsHit: 14, Scorecard: true, Errors: 1}

	assert.True(t, a.Apply(id, c))
	assert.False(t, a.Apply(id, c))

	assert.Equal(t, 1, a.GamesPlayed)
	assert.Equal(t, 1, a.GamesWon)
	assert.Equal(t, 14, a.TotalCupsHit)
	assert.Equal(t, 1, a.NumberOfScorecards)
	assert.Equal(t, 1, a.TotalErrors)
	assert.Equal(t, 1.0, a.WinRatio)
	assert.Equal(t, 14.0, a.CupsHitAvg)
	assert.Equal(t, []uuid.UUID{id}, a.GameIDs)
}

func TestAggregateReplay(t *testing.T) {
	a := NewPlayerAggregate("Hal")
	a.Apply(uuid.New(), Contribution{CupsHit: 99})

	g1, g2, g3 := uuid.New(), uuid.New(), uuid.New()
	a.Replay(map[uuid.UUID]Contribution{
		g1: {Won: true, CupsHit: 12},
		g2: {CupsHit: 8, NakedLaps: 1},
		g3: {CupsHit: 10},
	})

	assert.Equal(t, 3, a.GamesPlayed)
	assert.Equal(t, 1, a.GamesWon)
	assert.Equal(t, 30, a.TotalCupsHit)
	assert.Equal(t, 1, a.NakedLapsRun)
	assert.InDelta(t, 1.0/3.0, a.WinRatio, 1e-9)
	assert.InDelta(t, 10.0, a.CupsHitAvg, 1e-9)
	assert.ElementsMatch(t, []uuid.UUID{g1, g2, g3}, a.GameIDs)
	assert.Equal(t, len(a.GameIDs), a.GamesPlayed)
}

func TestAggregateReplayEmpty(t *testing.T) {
	a := NewPlayerAggregate("Dee")
	a.Apply(uuid.New(), Contribution{Won: true, CupsHit: 13})

	a.Replay(nil)

	assert.Zero(t, a.GamesPlayed)
	assert.Zero(t, a.WinRatio)
	assert.Zero(t, a.CupsHitAvg)
	assert.Empty(t, a.GameIDs)
}

func TestAggregateRemoveGameID(t *testing.T) {
	a := NewPlayerAggregate("Bob")
	id := uuid.New()
	a.AddGameID(id)

	assert.True(t, a.RemoveGameID(id))
	assert.False(t, a.RemoveGameID(id))
	assert.False(t, a.HasGame(id))
}

func TestCloneDoesNotShareIDs(t *testing.T) {
	a := NewPlayerAggregate("Bob")
	a.AddGameID(uuid.New())
	c := a.Clone()
	c.AddGameID(uuid.New())
	assert.Len(t, a.GameIDs, 1)
	assert.Len(t, c.GameIDs, 2)
}

func TestSortGamesNewestFirst(t *testing.T) {
	older := Game{ID: uuid.New(), Date: NewDate(2024, 3, 1)}
	newer := Game{ID: uuid.New(), Date: NewDate(2024, 3, 2)}
	games := []Game{older, newer}

	SortGamesNewestFirst(games)
	assert.Equal(t, newer.ID, games[0].ID)
	assert.True(t, NewerThan(newer, older))
	assert.False(t, NewerThan(older, newer))
}
