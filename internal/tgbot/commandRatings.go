package tgbot

import (
	"context"
	"fmt"
	"math"
	"strings"
)

type RatingsCommand struct {
	league League
}

func (c *RatingsCommand) Run(ctx context.Context, _ int64, args string) (string, error) {
	rows, err := c.league.GetRatings(ctx, args)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No games played yet", nil
	}
	var buffer strings.Builder
	for i, r := range rows {
		if i == topSize {
			break
		}
		fmt.Fprintf(&buffer, "%d. %s (%d)\n", r.Rank, r.Player, int(math.Round(r.Rating)))
	}
	return buffer.String(), nil
}

func (c *RatingsCommand) Help() string {
	return "Player ratings. Usage: /ratings [elo|glicko2]"
}
