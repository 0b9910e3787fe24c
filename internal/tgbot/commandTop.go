package tgbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nick-Wu5/ceeps/internal/leaderboard"
)

const topSize = 10

type TopCommand struct {
	league League
}

func (c *TopCommand) Run(ctx context.Context, _ int64, args string) (string, error) {
	rows, err := c.league.GetLeaderboard(ctx, args, topSize)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No games played yet", nil
	}
	key, _ := leaderboard.ParseSortKey(args)
	var buffer strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&buffer, "%d. %s (%s)\n", r.Rank, r.PlayerName, formatKey(key, r))
	}
	return buffer.String(), nil
}

func (c *TopCommand) Help() string {
	names := make([]string, 0, len(leaderboard.SortKeys))
	for _, k := range leaderboard.SortKeys {
		names = append(names, string(k))
	}
	return "Leaderboard top. Usage: /top [" + strings.Join(names, "|") + "]"
}
