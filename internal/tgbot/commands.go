package tgbot

import (
	"context"

	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/leaderboard"
	"github.com/Nick-Wu5/ceeps/internal/rating"
	"github.com/Nick-Wu5/ceeps/internal/service"
)

// League is the part of the league service the bot reads from.
type League interface {
	GetLeaderboard(ctx context.Context, sortBy string, limit int) ([]leaderboard.Row, error)
	GetPlayerStats(ctx context.Context, name string) (domain.PlayerAggregate, error)
	RecentGames(ctx context.Context, limit, offset int, includeTotal bool) (service.GamePage, error)
	GetRatings(ctx context.Context, system string) ([]rating.Row, error)
}

var _ League = (*service.LeagueService)(nil)

type Command interface {
	Run(ctx context.Context, chatID int64, args string) (string, error)
	Help() string
}

type Commands struct {
	list map[string]Command
}

func NewCommands(league League, subs *subscriptions) *Commands {
	hc := &HelpCommand{}
	uc := Commands{
		list: map[string]Command{
			"help":    hc,
			"start":   hc,
			"top":     &TopCommand{league: league},
			"stats":   &StatsCommand{league: league},
			"games":   &GamesCommand{league: league},
			"ratings": &RatingsCommand{league: league},
			"sub":     &SubCommand{subs: subs},
			"unsub":   &UnsubCommand{subs: subs},
		},
	}
	hc.commands = uc.list
	return &uc
}

func (uc *Commands) RunCommand(ctx context.Context, chatID int64, cmd string, args string) (string, error) {
	command, ok := uc.list[cmd]
	if !ok {
		return "", ErrBadRequest
	}
	return command.Run(ctx, chatID, args)
}
