package storage

import (
	"context"

	"github.com/Nick-Wu5/ceeps/internal/domain"

	"github.com/google/uuid"
)

type GameStorage interface {
	CreateGame(ctx context.Context, game domain.Game) (domain.Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (domain.Game, error)
	// UpdateGame replaces the game keeping its id and created_at.
	UpdateGame(ctx context.Context, game domain.Game) (domain.Game, error)
	// DeleteGame removes the game and returns it as it was stored.
	DeleteGame(ctx context.Context, id uuid.UUID) (domain.Game, error)
	// ListGames returns games newest first. A limit of 0 returns every game.
	ListGames(ctx context.Context, limit, offset int) ([]domain.Game, error)
	CountGames(ctx context.Context) (int, error)
}

// UpdateFunc mutates an aggregate inside the row transaction. Returning an
// error aborts the write.
type UpdateFunc func(agg *domain.PlayerAggregate) error

type AggregateStorage interface {
	GetAggregate(ctx context.Context, name string) (domain.PlayerAggregate, error)
	// UpdateAggregate runs fn as an atomic read-modify-write of one row. A
	// missing row is created empty before fn sees it.
	UpdateAggregate(ctx context.Context, name string, fn UpdateFunc) (domain.PlayerAggregate, error)
	ListAggregates(ctx context.Context) ([]domain.PlayerAggregate, error)
}

type RosterStorage interface {
	ListRoster(ctx context.Context) ([]string, error)
	AddToRoster(ctx context.Context, name string) error
	RemoveFromRoster(ctx context.Context, name string) error
}

type Storage interface {
	GameStorage
	AggregateStorage
	RosterStorage
	Close() error
}
