package service

import (
	"context"
	"sort"

	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/normalize"
)

// resolver returns the roster for name matching. With an empty roster any
// name is accepted, and names of players who already have an aggregate keep
// their stored spelling.
func (s *LeagueService) resolver(ctx context.Context) (domain.PlayerResolver, error) {
	if err := s.loadRoster(ctx); err != nil {
		return nil, err
	}
	if len(s.roster.Names()) > 0 {
		return s.roster, nil
	}
	aggs, err := s.store.ListAggregates(ctx)
	if err != nil {
		return nil, err
	}
	known := make([]string, 0, len(aggs))
	for _, a := range aggs {
		known = append(known, a.PlayerName)
	}
	return domain.NewOpenRoster(known), nil
}

func (s *LeagueService) loadRoster(ctx context.Context) error {
	if s.roster.Valid() {
		return nil
	}
	names, err := s.store.ListRoster(ctx)
	if err != nil {
		return err
	}
	s.roster.Update(names)
	return nil
}

// canonical maps name to its roster spelling when there is one.
func (s *LeagueService) canonical(ctx context.Context, name string) (string, error) {
	trimmed := normalize.Trim(name)
	if trimmed == "" {
		return "", domain.NewValidationError(domain.ConstraintPlayerName, "player name is empty")
	}
	if domain.IsGuest(trimmed) {
		return domain.GuestName, nil
	}
	resolver, err := s.resolver(ctx)
	if err != nil {
		return "", err
	}
	if c, ok := resolver.Resolve(trimmed); ok {
		return c, nil
	}
	return trimmed, nil
}

// GetAllPlayers lists the roster plus Guest. With an empty roster it falls
// back to everybody who has an aggregate.
func (s *LeagueService) GetAllPlayers(ctx context.Context) ([]string, error) {
	if err := s.loadRoster(ctx); err != nil {
		return nil, err
	}
	names := s.roster.Names()
	if len(names) == 0 {
		aggs, err := s.store.ListAggregates(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range aggs {
			names = append(names, a.PlayerName)
		}
	}
	names = append(names, domain.GuestName)
	sort.Strings(names)
	return names, nil
}

func (s *LeagueService) AddPlayer(ctx context.Context, name string) (string, error) {
	trimmed := normalize.Trim(name)
	if trimmed == "" {
		return "", domain.NewValidationError(domain.ConstraintPlayerName, "player name is empty")
	}
	if domain.IsGuest(trimmed) {
		return "", domain.NewValidationError(domain.ConstraintPlayerName, "%s is reserved", domain.GuestName)
	}
	if err := s.loadRoster(ctx); err != nil {
		return "", err
	}
	if existing, ok := s.roster.Resolve(trimmed); ok {
		return "", domain.NewValidationError(domain.ConstraintPlayerName, "%s is already on the roster as %s", trimmed, existing)
	}
	defer s.roster.Invalidate()
	if err := s.store.AddToRoster(ctx, trimmed); err != nil {
		return "", err
	}
	s.log.WithField("player", trimmed).Info("player added to roster")
	return trimmed, nil
}

func (s *LeagueService) RemovePlayer(ctx context.Context, name string) error {
	trimmed := normalize.Trim(name)
	if domain.IsGuest(trimmed) {
		return domain.NewValidationError(domain.ConstraintPlayerName, "%s cannot be removed", domain.GuestName)
	}
	if err := s.loadRoster(ctx); err != nil {
		return err
	}
	canonical, ok := s.roster.Resolve(trimmed)
	if !ok {
		return domain.PlayerNotFound(trimmed)
	}
	defer s.roster.Invalidate()
	if err := s.store.RemoveFromRoster(ctx, canonical); err != nil {
		return err
	}
	s.log.WithField("player", canonical).Info("player removed from roster")
	return nil
}

// SeedRoster adds the configured names that are not on the roster yet.
func (s *LeagueService) SeedRoster(ctx context.Context) error {
	for _, name := range s.cfg.Roster {
		if err := s.loadRoster(ctx); err != nil {
			return err
		}
		if _, ok := s.roster.Resolve(name); ok || domain.IsGuest(name) {
			continue
		}
		if _, err := s.AddPlayer(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
