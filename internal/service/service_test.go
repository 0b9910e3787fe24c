package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Nick-Wu5/ceeps/internal/config"
	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/leaderboard"
	"github.com/Nick-Wu5/ceeps/internal/storage/memory"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roster = []string{"Alice", "Bob", "Carl", "Dee", "Eve", "Fay", "Gus", "Hal", "Ivy"}

func intp(v int) *int { return &v }

func newService(t *testing.T) *LeagueService {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	cfg := config.Default().League
	cfg.Roster = roster
	s := New(memory.New(), l, nil, cfg)
	require.NoError(t, s.SeedRoster(context.Background()))
	return s
}

func gameA() domain.GameInput {
	return domain.GameInput{
		Date:  domain.NewDate(2024, 3, 1),
		Team1: []string{"alice", "Bob", "Carl", "Dee"},
		Team2: []string{"Eve", "Fay", "Gus", "Hal"},
		IndividualStats: map[string]domain.PlayerStatsInput{
			"Alice": {CupsHit: intp(14)}, "Bob": {CupsHit: intp(14)}, "Carl": {CupsHit: intp(14)}, "Dee": {CupsHit: intp(13)},
			"Eve": {CupsHit: intp(10)}, "Fay": {CupsHit: intp(10)}, "Gus": {CupsHit: intp(12)}, "Hal": {CupsHit: intp(8)},
		},
		ScorecardPlayer: "Alice",
	}
}

func TestSubmitGame(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	game, err := s.SubmitGame(ctx, gameA())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, game.ID)
	assert.Equal(t, domain.Team1, game.Winner)
	assert.Equal(t, 55, game.Team1Score)
	assert.Equal(t, 40, game.Team2Score)
	assert.Equal(t, "Alice", game.Team1[0], "names take the roster spelling")

	alice, err := s.GetPlayerStats(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, 1, alice.GamesPlayed)
	assert.Equal(t, 1, alice.GamesWon)
	assert.Equal(t, 14, alice.TotalCupsHit)
	assert.Equal(t, 1, alice.NumberOfScorecards)
	assert.Equal(t, []uuid.UUID{game.ID}, alice.GameIDs)

	hal, err := s.GetPlayerStats(ctx, "Hal")
	require.NoError(t, err)
	assert.Equal(t, 1, hal.NakedLapsRun)
	assert.Zero(t, hal.GamesWon)

	stored, err := s.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, game.ID, stored.ID)
}

func TestSubmitGameRejectsUnknownPlayer(t *testing.T) {
	s := newService(t)
	in := gameA()
	in.Team1[3] = "Zed"
	delete(in.IndividualStats, "Dee")
	in.IndividualStats["Zed"] = domain.PlayerStatsInput{CupsHit: intp(13)}

	_, err := s.SubmitGame(context.Background(), in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ConstraintUnknownPlayer, verr.Constraint)

	page, err := s.RecentGames(context.Background(), 0, 0, true)
	require.NoError(t, err)
	assert.Empty(t, page.Games)
	assert.Equal(t, 0, *page.Total)
}

func TestSubmitGameRejectsUnfinishedGame(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	in := gameA()
	for name, cups := range map[string]int{"Alice": 4, "Bob": 3, "Carl": 2, "Dee": 1, "Eve": 1, "Fay": 1, "Gus": 1, "Hal": 1} {
		in.IndividualStats[name] = domain.PlayerStatsInput{CupsHit: intp(cups)}
	}

	_, err := s.SubmitGame(ctx, in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ConstraintMinimumScore, verr.Constraint)

	aggs, err := s.store.ListAggregates(ctx)
	require.NoError(t, err)
	assert.Empty(t, aggs)
}

func TestEmptyRosterMatchesNamesCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	l := logrus.New()
	l.SetOutput(io.Discard)
	s := New(memory.New(), l, nil, config.Default().League)

	dup := gameA()
	dup.Team1 = []string{"Alice", "alice", "Carl", "Dee"}
	_, err := s.SubmitGame(ctx, dup)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ConstraintDuplicatePlayer, verr.Constraint)

	in := gameA()
	in.Team1[0] = "Alice"
	_, err = s.SubmitGame(ctx, in)
	require.NoError(t, err)

	in = gameA()
	in.Team1[0] = "ALICE"
	game, err := s.SubmitGame(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Alice", game.Team1[0], "an existing player keeps the stored spelling")

	alice, err := s.GetPlayerStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", alice.PlayerName)
	assert.Equal(t, 2, alice.GamesPlayed)

	players, err := s.GetAllPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, players, 9)
}

func TestUpdateGameSwapsPlayer(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	game, err := s.SubmitGame(ctx, gameA())
	require.NoError(t, err)

	in := gameA()
	in.Team1[3] = "Ivy"
	delete(in.IndividualStats, "Dee")
	in.IndividualStats["Ivy"] = domain.PlayerStatsInput{CupsHit: intp(13)}
	updated, err := s.UpdateGame(ctx, game.ID, in)
	require.NoError(t, err)
	assert.Equal(t, game.ID, updated.ID)
	assert.Equal(t, game.CreatedAt, updated.CreatedAt)

	dee, err := s.GetPlayerStats(ctx, "Dee")
	require.NoError(t, err)
	assert.Zero(t, dee.GamesPlayed)
	assert.Empty(t, dee.GameIDs)

	ivy, err := s.GetPlayerStats(ctx, "Ivy")
	require.NoError(t, err)
	assert.Equal(t, 1, ivy.GamesPlayed)
	assert.Equal(t, 1, ivy.GamesWon)
	assert.Equal(t, 13, ivy.TotalCupsHit)

	rows, err := s.GetLeaderboard(ctx, "", 0)
	require.NoError(t, err)
	for _, r := range rows {
		assert.NotEqual(t, "Dee", r.PlayerName)
	}
}

func TestUpdateMissingGame(t *testing.T) {
	s := newService(t)
	_, err := s.UpdateGame(context.Background(), uuid.New(), gameA())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteGame(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	game, err := s.SubmitGame(ctx, gameA())
	require.NoError(t, err)

	require.NoError(t, s.DeleteGame(ctx, game.ID))

	_, err = s.GetGame(ctx, game.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	for _, name := range []string{"Alice", "Hal"} {
		agg, err := s.GetPlayerStats(ctx, name)
		require.NoError(t, err)
		assert.Zero(t, agg.GamesPlayed)
		assert.Empty(t, agg.GameIDs)
	}
	rows, err := s.GetLeaderboard(ctx, "total_cups", 0)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.ErrorIs(t, s.DeleteGame(ctx, game.ID), domain.ErrNotFound)
}

func TestRecentGames(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	var ids []uuid.UUID
	for day := 1; day <= 7; day++ {
		in := gameA()
		in.Date = domain.NewDate(2024, 3, day)
		g, err := s.SubmitGame(ctx, in)
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}

	page, err := s.RecentGames(ctx, 0, 0, false)
	require.NoError(t, err)
	require.Len(t, page.Games, 5)
	assert.Nil(t, page.Total)
	assert.Equal(t, ids[6], page.Games[0].ID)

	page, err = s.RecentGames(ctx, 5, 5, true)
	require.NoError(t, err)
	require.Len(t, page.Games, 2)
	assert.Equal(t, ids[0], page.Games[1].ID)
	assert.Equal(t, 7, *page.Total)

	_, err = s.RecentGames(ctx, -1, 0, false)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	_, err := s.SubmitGame(ctx, gameA())
	require.NoError(t, err)

	rows, err := s.GetLeaderboard(ctx, "total_cups", 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Alice", "Bob", "Carl"}, []string{rows[0].PlayerName, rows[1].PlayerName, rows[2].PlayerName})

	_, err = s.GetLeaderboard(ctx, "elo", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	rows, err = s.GetLeaderboard(ctx, string(leaderboard.WinRatio), 0)
	require.NoError(t, err)
	assert.Len(t, rows, 8)
}

func TestGetRatings(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	_, err := s.SubmitGame(ctx, gameA())
	require.NoError(t, err)

	rows, err := s.GetRatings(ctx, "elo")
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, "Alice", rows[0].Player)
	assert.Equal(t, 1020.0, rows[0].Rating)

	_, err = s.GetRatings(ctx, "bogus")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRoster(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	players, err := s.GetAllPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, players, len(roster)+1)
	assert.Contains(t, players, domain.GuestName)

	name, err := s.AddPlayer(ctx, "  Jo ")
	require.NoError(t, err)
	assert.Equal(t, "Jo", name)

	_, err = s.AddPlayer(ctx, "JO")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.AddPlayer(ctx, "guest")
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, s.RemovePlayer(ctx, "jo"))
	assert.ErrorIs(t, s.RemovePlayer(ctx, "jo"), domain.ErrNotFound)
	assert.ErrorIs(t, s.RemovePlayer(ctx, "Guest"), domain.ErrValidation)

	players, err = s.GetAllPlayers(ctx)
	require.NoError(t, err)
	assert.NotContains(t, players, "Jo")
}

func TestAllPlayersWithoutRoster(t *testing.T) {
	ctx := context.Background()
	l := logrus.New()
	l.SetOutput(io.Discard)
	s := New(memory.New(), l, nil, config.Default().League)

	in := gameA()
	in.Team1[0] = "Alice"
	_, err := s.SubmitGame(ctx, in)
	require.NoError(t, err)

	players, err := s.GetAllPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carl", "Dee", "Eve", "Fay", domain.GuestName, "Gus", "Hal"}, players)
}

func TestRecompute(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	_, err := s.SubmitGame(ctx, gameA())
	require.NoError(t, err)
	before, err := s.GetPlayerStats(ctx, "Alice")
	require.NoError(t, err)

	require.NoError(t, s.Recompute(ctx))
	require.NoError(t, s.Recompute(ctx, "alice", "Bob"))

	after, err := s.GetPlayerStats(ctx, "Alice")
	require.NoError(t, err)
	after.LastUpdated = before.LastUpdated
	assert.Equal(t, before, after)

	assert.ErrorIs(t, s.Recompute(ctx, "Nobody"), domain.ErrNotFound)
}

type recordingNotifier struct {
	mu    sync.Mutex
	games []domain.Game
}

func (n *recordingNotifier) GameSubmitted(game domain.Game) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.games = append(n.games, game)
}

func TestNotifier(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	n := &recordingNotifier{}
	s.Subscribe(n)

	game, err := s.SubmitGame(ctx, gameA())
	require.NoError(t, err)
	_, err = s.UpdateGame(ctx, game.ID, gameA())
	require.NoError(t, err)
	s.Close()

	require.Len(t, n.games, 1)
	assert.Equal(t, game.ID, n.games[0].ID)
}

type blockingNotifier struct {
	release chan struct{}
	done    chan domain.Game
}

func (n *blockingNotifier) GameSubmitted(game domain.Game) {
	<-n.release
	n.done <- game
}

func TestSubmitGameDoesNotWaitForNotifiers(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	n := &blockingNotifier{release: make(chan struct{}), done: make(chan domain.Game, 1)}
	s.Subscribe(n)

	submitted := make(chan domain.Game, 1)
	go func() {
		game, err := s.SubmitGame(ctx, gameA())
		assert.NoError(t, err)
		submitted <- game
	}()

	var game domain.Game
	select {
	case game = <-submitted:
	case <-time.After(5 * time.Second):
		t.Fatal("SubmitGame blocked on a notifier")
	}

	close(n.release)
	s.Close()
	assert.Equal(t, game.ID, (<-n.done).ID)
}

func TestConcurrentSubmissions(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s := newService(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.SubmitGame(ctx, gameA())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	alice, err := s.GetPlayerStats(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, 10, alice.GamesPlayed)
	assert.Len(t, alice.GameIDs, 10)
}
