// Package aggregate keeps per-player statistics in step with the game log.
//
// Every row change goes through AggregateStorage.UpdateAggregate, so each
// player's row is read, modified and written atomically. Different players
// are updated concurrently, bounded by the configured worker count.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Nick-Wu5/ceeps/internal/config"
	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/metrics"
	"github.com/Nick-Wu5/ceeps/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var errStale = errors.New("aggregate changed during recompute")

// PlayerUpdateError reports a failed update of one player's row. Other
// players in the same operation are unaffected.
type PlayerUpdateError struct {
	Player string
	Op     string
	Err    error
}

func (e *PlayerUpdateError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Player, e.Err)
}

func (e *PlayerUpdateError) Unwrap() error {
	return e.Err
}

type Maintainer struct {
	games   storage.GameStorage
	aggs    storage.AggregateStorage
	log     *logrus.Entry
	metrics *metrics.Recorder
	workers int
	retries int
}

func New(games storage.GameStorage, aggs storage.AggregateStorage, l *logrus.Logger, m *metrics.Recorder, cfg config.League) *Maintainer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	retries := cfg.RecomputeRetries
	if retries < 1 {
		retries = 1
	}
	return &Maintainer{
		games:   games,
		aggs:    aggs,
		log:     l.WithField("from", "aggregate"),
		metrics: m,
		workers: workers,
		retries: retries,
	}
}

// ApplyGame adds the game to every tracked participant. A player that
// already lists the game is left as is.
func (m *Maintainer) ApplyGame(ctx context.Context, game domain.Game) error {
	return m.forEach(ctx, "apply", game.TrackedPlayers().ToSlice(), func(ctx context.Context, name string) error {
		c, ok := game.ContributionOf(name)
		if !ok {
			return &domain.ConsistencyError{Player: name, GameID: game.ID, Reason: "game has no stats for the player"}
		}
		_, err := m.aggs.UpdateAggregate(ctx, name, func(agg *domain.PlayerAggregate) error {
			if !agg.Apply(game.ID, c) {
				m.log.WithFields(logrus.Fields{"player": name, "game": game.ID}).Debug("game already applied")
			}
			return nil
		})
		return err
	})
}

// RemoveGame drops the game id from each player and rebuilds their rows.
func (m *Maintainer) RemoveGame(ctx context.Context, gameID uuid.UUID, players []string) error {
	return m.forEach(ctx, "remove", players, func(ctx context.Context, name string) error {
		return m.dropAndRecompute(ctx, name, gameID)
	})
}

// Reconcile brings every player in players in line with an edited game:
// participants of the edited game get its id, everybody else loses it,
// then each row is rebuilt from the log.
func (m *Maintainer) Reconcile(ctx context.Context, game domain.Game, players []string) error {
	return m.forEach(ctx, "reconcile", players, func(ctx context.Context, name string) error {
		c, inGame := game.ContributionOf(name)
		if !inGame || name == domain.GuestName {
			return m.dropAndRecompute(ctx, name, game.ID)
		}
		_, err := m.aggs.UpdateAggregate(ctx, name, func(agg *domain.PlayerAggregate) error {
			agg.Apply(game.ID, c)
			return nil
		})
		if err != nil {
			return err
		}
		_, err = m.recompute(ctx, name)
		return err
	})
}

// Recompute rebuilds the named players from scratch.
func (m *Maintainer) Recompute(ctx context.Context, players []string) error {
	return m.forEach(ctx, "recompute", players, func(ctx context.Context, name string) error {
		_, err := m.recompute(ctx, name)
		return err
	})
}

// RecomputeAll rebuilds every stored aggregate.
func (m *Maintainer) RecomputeAll(ctx context.Context) error {
	aggs, err := m.aggs.ListAggregates(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(aggs))
	for _, a := range aggs {
		names = append(names, a.PlayerName)
	}
	return m.Recompute(ctx, names)
}

// RecomputeFromScratch replays every game referenced by the player's row.
// Games that are gone or no longer list the player are logged and dropped.
func (m *Maintainer) RecomputeFromScratch(ctx context.Context, name string) (domain.PlayerAggregate, error) {
	agg, err := m.recompute(ctx, name)
	m.metrics.RecordAggregateUpdate("recompute", err)
	return agg, err
}

func (m *Maintainer) recompute(ctx context.Context, name string) (domain.PlayerAggregate, error) {
	for attempt := 0; attempt < m.retries; attempt++ {
		snapshot, err := m.aggs.GetAggregate(ctx, name)
		if err != nil {
			return domain.PlayerAggregate{}, err
		}
		contributions, err := m.loadContributions(ctx, name, snapshot.GameIDs)
		if err != nil {
			return domain.PlayerAggregate{}, err
		}
		agg, err := m.aggs.UpdateAggregate(ctx, name, func(agg *domain.PlayerAggregate) error {
			if !sameIDs(agg.GameIDs, snapshot.GameIDs) {
				return errStale
			}
			agg.Replay(contributions)
			return nil
		})
		if errors.Is(err, errStale) {
			m.metrics.RecordRecomputeRetry()
			m.log.WithField("player", name).Debug("game ids changed during recompute, retrying")
			continue
		}
		return agg, err
	}
	return domain.PlayerAggregate{}, fmt.Errorf("recompute %s after %d attempts: %w", name, m.retries, errStale)
}

func (m *Maintainer) loadContributions(ctx context.Context, name string, ids []uuid.UUID) (map[uuid.UUID]domain.Contribution, error) {
	contributions := make(map[uuid.UUID]domain.Contribution, len(ids))
	for _, id := range ids {
		game, err := m.games.GetGame(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			m.skip(&domain.ConsistencyError{Player: name, GameID: id, Reason: "game no longer exists"})
			continue
		}
		if err != nil {
			return nil, err
		}
		c, ok := game.ContributionOf(name)
		if !ok {
			m.skip(&domain.ConsistencyError{Player: name, GameID: id, Reason: "game no longer lists the player"})
			continue
		}
		contributions[id] = c
	}
	return contributions, nil
}

func (m *Maintainer) skip(err *domain.ConsistencyError) {
	m.metrics.RecordConsistencySkip()
	m.log.WithError(err).Warn("skipping game during recompute")
}

// dropAndRecompute removes gameID from an existing row and rebuilds it.
// Players without a row are left alone.
func (m *Maintainer) dropAndRecompute(ctx context.Context, name string, gameID uuid.UUID) error {
	if _, err := m.aggs.GetAggregate(ctx, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	_, err := m.aggs.UpdateAggregate(ctx, name, func(agg *domain.PlayerAggregate) error {
		agg.RemoveGameID(gameID)
		return nil
	})
	if err != nil {
		return err
	}
	_, err = m.recompute(ctx, name)
	return err
}

// forEach runs fn for every player. A failing player does not stop the
// others; failures come back joined as PlayerUpdateErrors.
func (m *Maintainer) forEach(ctx context.Context, op string, players []string, fn func(ctx context.Context, name string) error) error {
	players = append([]string(nil), players...)
	sort.Strings(players)

	errs := make([]error, len(players))
	var g errgroup.Group
	g.SetLimit(m.workers)
	for i, name := range players {
		i, name := i, name
		g.Go(func() error {
			err := fn(ctx, name)
			m.metrics.RecordAggregateUpdate(op, err)
			if err != nil {
				m.log.WithError(err).WithFields(logrus.Fields{"player": name, "op": op}).Error("aggregate update failed")
				errs[i] = &PlayerUpdateError{Player: name, Op: op, Err: err}
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func sameIDs(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}
