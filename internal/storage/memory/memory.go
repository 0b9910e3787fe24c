// Package memory is a process-local store. Each aggregate row has its own
// lock so updates to different players never wait on each other.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/storage"

	"github.com/google/uuid"
)

type Storage struct {
	gamesMu sync.RWMutex
	games   map[uuid.UUID]domain.Game

	aggMu      sync.Mutex
	aggregates map[string]*row

	rosterMu sync.RWMutex
	roster   map[string]time.Time

	now func() time.Time
}

type row struct {
	mu  sync.Mutex
	agg domain.PlayerAggregate
	set bool
}

var _ storage.Storage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		games:      make(map[uuid.UUID]domain.Game),
		aggregates: make(map[string]*row),
		roster:     make(map[string]time.Time),
		now:        time.Now,
	}
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) CreateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return domain.Game{}, err
	}
	s.gamesMu.Lock()
	defer s.gamesMu.Unlock()

	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	if _, ok := s.games[game.ID]; ok {
		return domain.Game{}, domain.NewStorageError("create game", fmt.Errorf("%w: %s", storage.ErrDuplicateGame, game.ID))
	}
	now := s.now().UTC()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = game.CreatedAt
	s.games[game.ID] = game.Clone()
	return game.Clone(), nil
}

func (s *Storage) GetGame(ctx context.Context, id uuid.UUID) (domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return domain.Game{}, err
	}
	s.gamesMu.RLock()
	defer s.gamesMu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return domain.Game{}, domain.GameNotFound(id)
	}
	return game.Clone(), nil
}

func (s *Storage) UpdateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return domain.Game{}, err
	}
	s.gamesMu.Lock()
	defer s.gamesMu.Unlock()

	old, ok := s.games[game.ID]
	if !ok {
		return domain.Game{}, domain.GameNotFound(game.ID)
	}
	game.CreatedAt = old.CreatedAt
	game.UpdatedAt = s.now().UTC()
	s.games[game.ID] = game.Clone()
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id uuid.UUID) (domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return domain.Game{}, err
	}
	s.gamesMu.Lock()
	defer s.gamesMu.Unlock()

	game, ok := s.games[id]
	if !ok {
		return domain.Game{}, domain.GameNotFound(id)
	}
	delete(s.games, id)
	return game, nil
}

func (s *Storage) ListGames(ctx context.Context, limit, offset int) ([]domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.gamesMu.RLock()
	games := make([]domain.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game.Clone())
	}
	s.gamesMu.RUnlock()

	domain.SortGamesNewestFirst(games)
	if offset >= len(games) {
		return []domain.Game{}, nil
	}
	games = games[offset:]
	if limit > 0 && limit < len(games) {
		games = games[:limit]
	}
	return games, nil
}

func (s *Storage) CountGames(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.gamesMu.RLock()
	defer s.gamesMu.RUnlock()
	return len(s.games), nil
}

func (s *Storage) rowFor(name string) *row {
	s.aggMu.Lock()
	defer s.aggMu.Unlock()

	r, ok := s.aggregates[name]
	if !ok {
		r = &row{}
		s.aggregates[name] = r
	}
	return r
}

func (s *Storage) GetAggregate(ctx context.Context, name string) (domain.PlayerAggregate, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlayerAggregate{}, err
	}
	s.aggMu.Lock()
	r, ok := s.aggregates[name]
	s.aggMu.Unlock()
	if !ok {
		return domain.PlayerAggregate{}, domain.PlayerNotFound(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.set {
		return domain.PlayerAggregate{}, domain.PlayerNotFound(name)
	}
	return r.agg.Clone(), nil
}

func (s *Storage) UpdateAggregate(ctx context.Context, name string, fn storage.UpdateFunc) (domain.PlayerAggregate, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlayerAggregate{}, err
	}
	r := s.rowFor(name)
	r.mu.Lock()
	defer r.mu.Unlock()

	agg := domain.NewPlayerAggregate(name)
	if r.set {
		agg = r.agg.Clone()
	}
	if err := fn(&agg); err != nil {
		return domain.PlayerAggregate{}, err
	}
	agg.PlayerName = name
	agg.LastUpdated = s.now().UTC()
	r.agg = agg.Clone()
	r.set = true
	return agg, nil
}

func (s *Storage) ListAggregates(ctx context.Context) ([]domain.PlayerAggregate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.aggMu.Lock()
	rows := make([]*row, 0, len(s.aggregates))
	for _, r := range s.aggregates {
		rows = append(rows, r)
	}
	s.aggMu.Unlock()

	aggregates := make([]domain.PlayerAggregate, 0, len(rows))
	for _, r := range rows {
		r.mu.Lock()
		if r.set {
			aggregates = append(aggregates, r.agg.Clone())
		}
		r.mu.Unlock()
	}
	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].PlayerName < aggregates[j].PlayerName
	})
	return aggregates, nil
}

func (s *Storage) ListRoster(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.rosterMu.RLock()
	defer s.rosterMu.RUnlock()

	names := make([]string, 0, len(s.roster))
	for name := range s.roster {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Storage) AddToRoster(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.rosterMu.Lock()
	defer s.rosterMu.Unlock()

	if _, ok := s.roster[name]; ok {
		return domain.NewValidationError(domain.ConstraintPlayerName, "%s is already on the roster", name)
	}
	s.roster[name] = s.now().UTC()
	return nil
}

func (s *Storage) RemoveFromRoster(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.rosterMu.Lock()
	defer s.rosterMu.Unlock()

	if _, ok := s.roster[name]; !ok {
		return domain.PlayerNotFound(name)
	}
	delete(s.roster, name)
	return nil
}
