package tgbot

import (
	"context"
	"errors"
)

type StatsCommand struct {
	league League
}

func (c *StatsCommand) Run(ctx context.Context, _ int64, args string) (string, error) {
	if args == "" {
		return "", errors.New(`send the player name in the same message, for example "/stats Alice"`)
	}
	agg, err := c.league.GetPlayerStats(ctx, args)
	if err != nil {
		return "", err
	}
	return formatStats(agg), nil
}

func (c *StatsCommand) Help() string {
	return "Player statistics. Usage: /stats <name>"
}
