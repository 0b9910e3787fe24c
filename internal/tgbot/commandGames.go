package tgbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const maxGames = 20

type GamesCommand struct {
	league League
}

func (c *GamesCommand) Run(ctx context.Context, _ int64, args string) (string, error) {
	n := 0
	if args != "" {
		v, err := strconv.Atoi(args)
		if err != nil || v < 1 || v > maxGames {
			return "", fmt.Errorf("the number of games must be between 1 and %d", maxGames)
		}
		n = v
	}
	page, err := c.league.RecentGames(ctx, n, 0, false)
	if err != nil {
		return "", err
	}
	if len(page.Games) == 0 {
		return "No games played yet", nil
	}
	parts := make([]string, 0, len(page.Games))
	for _, g := range page.Games {
		parts = append(parts, formatGame(g))
	}
	return strings.Join(parts, "\n\n"), nil
}

func (c *GamesCommand) Help() string {
	return fmt.Sprintf("Most recent games. Usage: /games [1-%d]", maxGames)
}
