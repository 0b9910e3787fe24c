package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Nick-Wu5/ceeps/internal/aggregate"
	"github.com/Nick-Wu5/ceeps/internal/cache/mem"
	"github.com/Nick-Wu5/ceeps/internal/config"
	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/leaderboard"
	"github.com/Nick-Wu5/ceeps/internal/metrics"
	"github.com/Nick-Wu5/ceeps/internal/rating"
	"github.com/Nick-Wu5/ceeps/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Notifier is told about every newly submitted game.
type Notifier interface {
	GameSubmitted(game domain.Game)
}

type GamePage struct {
	Games []domain.Game `json:"games"`
	Total *int          `json:"total,omitempty"`
}

type LeagueService struct {
	store      storage.Storage
	maintainer *aggregate.Maintainer
	roster     *mem.Cache
	log        *logrus.Entry
	metrics    *metrics.Recorder
	cfg        config.League

	notifiersMu sync.RWMutex
	notifiers   []Notifier
	pending     sync.WaitGroup
}

func New(store storage.Storage, l *logrus.Logger, m *metrics.Recorder, cfg config.League) *LeagueService {
	return &LeagueService{
		store:      store,
		maintainer: aggregate.New(store, store, l, m, cfg),
		roster:     mem.New(),
		log:        l.WithField("from", "service"),
		metrics:    m,
		cfg:        cfg,
	}
}

func (s *LeagueService) Subscribe(n Notifier) {
	s.notifiersMu.Lock()
	defer s.notifiersMu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

func (s *LeagueService) notify(game domain.Game) {
	s.notifiersMu.RLock()
	defer s.notifiersMu.RUnlock()
	for _, n := range s.notifiers {
		s.pending.Add(1)
		go func(n Notifier, game domain.Game) {
			defer s.pending.Done()
			n.GameSubmitted(game)
		}(n, game.Clone())
	}
}

// Close waits for notifications that are still being delivered.
func (s *LeagueService) Close() {
	s.pending.Wait()
}

// SubmitGame validates and stores a game, then folds it into the
// participants' aggregates. When the game is stored but some aggregates fail
// to update, the stored game is returned together with the error.
func (s *LeagueService) SubmitGame(ctx context.Context, in domain.GameInput) (domain.Game, error) {
	resolver, err := s.resolver(ctx)
	if err != nil {
		return domain.Game{}, err
	}
	game, err := in.Build(resolver)
	if err != nil {
		return domain.Game{}, err
	}
	game, err = s.store.CreateGame(ctx, game)
	if err != nil {
		return domain.Game{}, err
	}
	s.metrics.RecordGameWrite("create")
	s.log.WithFields(logrus.Fields{"game": game.ID, "winner": game.Winner}).Info("game submitted")

	if err := s.maintainer.ApplyGame(ctx, game); err != nil {
		return game, err
	}
	s.notify(game)
	return game, nil
}

// UpdateGame replaces a stored game and reconciles everybody who played in
// either version of it.
func (s *LeagueService) UpdateGame(ctx context.Context, id uuid.UUID, in domain.GameInput) (domain.Game, error) {
	old, err := s.store.GetGame(ctx, id)
	if err != nil {
		return domain.Game{}, err
	}
	resolver, err := s.resolver(ctx)
	if err != nil {
		return domain.Game{}, err
	}
	game, err := in.Build(resolver)
	if err != nil {
		return domain.Game{}, err
	}
	game.ID = id
	game, err = s.store.UpdateGame(ctx, game)
	if err != nil {
		return domain.Game{}, err
	}
	s.metrics.RecordGameWrite("update")
	s.log.WithField("game", id).Info("game updated")

	affected := old.TrackedPlayers().Union(game.TrackedPlayers())
	if err := s.maintainer.Reconcile(ctx, game, affected.ToSlice()); err != nil {
		return game, err
	}
	return game, nil
}

func (s *LeagueService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	game, err := s.store.DeleteGame(ctx, id)
	if err != nil {
		return err
	}
	s.metrics.RecordGameWrite("delete")
	s.log.WithField("game", id).Info("game deleted")
	return s.maintainer.RemoveGame(ctx, id, game.TrackedPlayers().ToSlice())
}

func (s *LeagueService) GetGame(ctx context.Context, id uuid.UUID) (domain.Game, error) {
	return s.store.GetGame(ctx, id)
}

// RecentGames returns games newest first. A zero limit falls back to the
// configured page size.
func (s *LeagueService) RecentGames(ctx context.Context, limit, offset int, includeTotal bool) (GamePage, error) {
	if limit < 0 || offset < 0 {
		return GamePage{}, domain.NewValidationError(domain.ConstraintPagination,
			"limit and offset must not be negative, got %d and %d", limit, offset)
	}
	if limit == 0 {
		limit = s.cfg.RecentGames
	}
	games, err := s.store.ListGames(ctx, limit, offset)
	if err != nil {
		return GamePage{}, err
	}
	page := GamePage{Games: games}
	if includeTotal {
		total, err := s.store.CountGames(ctx)
		if err != nil {
			return GamePage{}, err
		}
		page.Total = &total
	}
	return page, nil
}

func (s *LeagueService) GetPlayerStats(ctx context.Context, name string) (domain.PlayerAggregate, error) {
	canonical, err := s.canonical(ctx, name)
	if err != nil {
		return domain.PlayerAggregate{}, err
	}
	return s.store.GetAggregate(ctx, canonical)
}

// GetLeaderboard ranks every player with at least one game. A zero limit
// falls back to the configured size.
func (s *LeagueService) GetLeaderboard(ctx context.Context, sortBy string, limit int) ([]leaderboard.Row, error) {
	key, err := leaderboard.ParseSortKey(sortBy)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, domain.NewValidationError(domain.ConstraintPagination, "limit must not be negative, got %d", limit)
	}
	if limit == 0 {
		limit = s.cfg.LeaderboardLimit
	}
	aggs, err := s.store.ListAggregates(ctx)
	if err != nil {
		return nil, err
	}
	return leaderboard.Rank(aggs, key, limit), nil
}

func (s *LeagueService) GetRatings(ctx context.Context, system string) ([]rating.Row, error) {
	sys, err := rating.ParseSystem(system)
	if err != nil {
		return nil, err
	}
	games, err := s.store.ListGames(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return rating.Compute(games, sys), nil
}

// Recompute rebuilds the named players, or everybody when none are given.
func (s *LeagueService) Recompute(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		s.log.Info("recomputing all aggregates")
		return s.maintainer.RecomputeAll(ctx)
	}
	players := make([]string, 0, len(names))
	var errs []error
	for _, name := range names {
		canonical, err := s.canonical(ctx, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		players = append(players, canonical)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return s.maintainer.Recompute(ctx, players)
}
