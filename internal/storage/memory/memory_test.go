package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Nick-Wu5/ceeps/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func game(date domain.Date) domain.Game {
	return domain.Game{
		Date:            date,
		Team1:           []string{"Alice", "Bob", "Carl", "Dee"},
		Team2:           []string{"Eve", "Fay", "Gus", "Hal"},
		Winner:          domain.Team1,
		IndividualStats: map[string]domain.PlayerGameStats{"Alice": {CupsHit: 3}},
	}
}

func TestListGamesOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	s := New()
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	first, err := s.CreateGame(ctx, game(domain.NewDate(2024, 3, 1)))
	require.NoError(t, err)
	second, err := s.CreateGame(ctx, game(domain.NewDate(2024, 3, 1)))
	require.NoError(t, err)
	oldest, err := s.CreateGame(ctx, game(domain.NewDate(2024, 2, 1)))
	require.NoError(t, err)

	all, err := s.ListGames(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{second.ID, first.ID, oldest.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	page, err := s.ListGames(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.ID, page[0].ID)

	page, err = s.ListGames(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	n, err := s.CountGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUpdateGameKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateGame(ctx, game(domain.NewDate(2024, 3, 1)))
	require.NoError(t, err)

	edit := created.Clone()
	edit.CreatedAt = time.Time{}
	edit.Team1Score = 40
	updated, err := s.UpdateGame(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 40, updated.Team1Score)

	_, err = s.UpdateGame(ctx, game(domain.NewDate(2024, 3, 1)))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteGameReturnsGame(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateGame(ctx, game(domain.NewDate(2024, 3, 1)))
	require.NoError(t, err)

	deleted, err := s.DeleteGame(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Team1, deleted.Team1)

	_, err = s.GetGame(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.DeleteGame(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoredGameIsNotShared(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateGame(ctx, game(domain.NewDate(2024, 3, 1)))
	require.NoError(t, err)
	created.Team1[0] = "Mallory"

	got, err := s.GetGame(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Team1[0])
}

func TestUpdateAggregateIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := New()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.UpdateAggregate(ctx, "Alice", func(agg *domain.PlayerAggregate) error {
				agg.Apply(uuid.New(), domain.Contribution{Won: true, CupsHit: 2})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	agg, err := s.GetAggregate(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, n, agg.GamesPlayed)
	assert.Equal(t, 2*n, agg.TotalCupsHit)
	assert.Len(t, agg.GameIDs, n)
}

func TestUpdateAggregateAbort(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	_, err := s.UpdateAggregate(ctx, "Bob", func(agg *domain.PlayerAggregate) error {
		agg.GamesPlayed = 7
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.GetAggregate(ctx, "Bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	aggs, err := s.ListAggregates(ctx)
	require.NoError(t, err)
	assert.Empty(t, aggs)
}

func TestRoster(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.AddToRoster(ctx, "Bob"))
	require.NoError(t, s.AddToRoster(ctx, "Alice"))
	assert.ErrorIs(t, s.AddToRoster(ctx, "Alice"), domain.ErrValidation)

	names, err := s.ListRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)

	require.NoError(t, s.RemoveFromRoster(ctx, "Bob"))
	assert.ErrorIs(t, s.RemoveFromRoster(ctx, "Bob"), domain.ErrNotFound)
}
