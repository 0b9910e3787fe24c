package tgbot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/leaderboard"
)

func formatGame(g domain.Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %d - %d %s\n", g.Date,
		strings.Join(g.Team1, ", "), g.Team1Score, g.Team2Score, strings.Join(g.Team2, ", "))
	winners := g.Roster(g.Winner)
	fmt.Fprintf(&b, "Winners: %s", strings.Join(winners, ", "))
	if g.ScorecardPlayer != "" {
		fmt.Fprintf(&b, "\nScorecard: %s", g.ScorecardPlayer)
	}
	return b.String()
}

func formatStats(a domain.PlayerAggregate) string {
	var b strings.Builder
	b.WriteString(a.PlayerName)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Games: %d (won %d, %s)\n", a.GamesPlayed, a.GamesWon, percent(a.WinRatio))
	fmt.Fprintf(&b, "Cups: %d (%.2f per game)\n", a.TotalCupsHit, a.CupsHitAvg)
	fmt.Fprintf(&b, "Scorecards: %d\n", a.NumberOfScorecards)
	fmt.Fprintf(&b, "Naked laps: %d", a.NakedLapsRun)
	return b.String()
}

func formatKey(key leaderboard.SortKey, r leaderboard.Row) string {
	switch key {
	case leaderboard.CupsHitAvg:
		return strconv.FormatFloat(r.CupsHitAvg, 'f', 2, 64)
	case leaderboard.TotalCups:
		return strconv.Itoa(r.TotalCupsHit)
	case leaderboard.TotalWins:
		return strconv.Itoa(r.GamesWon)
	case leaderboard.GamesPlayed:
		return strconv.Itoa(r.GamesPlayed)
	case leaderboard.Scorecards:
		return strconv.Itoa(r.NumberOfScorecards)
	default:
		return percent(r.WinRatio)
	}
}

func percent(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + "%"
}
