// Package rating replays the game log oldest first and rates every tracked
// player with Elo or Glicko-2.
package rating

import (
	"sort"
	"strings"

	"github.com/Nick-Wu5/ceeps/internal/domain"

	glicko2 "github.com/zelenin/go-glicko2"
)

type System string

const (
	Elo     System = "elo"
	Glicko2 System = "glicko2"
)

const (
	glickoRating     = 1500
	glickoDeviation  = 350
	glickoVolatility = 0.06
)

func ParseSystem(s string) (System, error) {
	switch System(strings.ToLower(strings.TrimSpace(s))) {
	case "", Elo:
		return Elo, nil
	case Glicko2:
		return Glicko2, nil
	}
	return "", domain.NewValidationError(domain.ConstraintRatingSystem,
		"unknown rating system %q, expected elo or glicko2", s)
}

type Row struct {
	Rank        int     `json:"rank"`
	Player      string  `json:"player"`
	Rating      float64 `json:"rating"`
	GamesPlayed int     `json:"games_played"`
}

// Compute rates the players of games. The games may come in any order.
func Compute(games []domain.Game, system System) []Row {
	ordered := make([]domain.Game, len(games))
	copy(ordered, games)
	domain.SortGamesNewestFirst(ordered)
	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	}

	var ratings map[string]float64
	played := make(map[string]int)
	if system == Glicko2 {
		ratings = glicko(ordered)
	} else {
		ratings = elo(ordered)
	}
	for _, g := range ordered {
		for _, p := range g.TrackedPlayers().ToSlice() {
			played[p]++
		}
	}

	rows := make([]Row, 0, len(ratings))
	for name, r := range ratings {
		rows = append(rows, Row{Player: name, Rating: r, GamesPlayed: played[name]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].Player < rows[j].Player
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func tracked(team []string) []string {
	out := make([]string, 0, len(team))
	for _, p := range team {
		if p != domain.GuestName {
			out = append(out, p)
		}
	}
	return out
}

func elo(games []domain.Game) map[string]float64 {
	ratings := make(map[string]int)
	played := make(map[string]int)
	for _, g := range games {
		teams := [2][]string{tracked(g.Team1), tracked(g.Team2)}
		sides := [2]domain.Team{domain.Team1, domain.Team2}
		for _, team := range teams {
			for _, p := range team {
				if _, ok := ratings[p]; !ok {
					ratings[p] = eloStart
				}
			}
		}
		means := [2]int{teamMean(ratings, teams[0]), teamMean(ratings, teams[1])}

		next := make(map[string]int, 8)
		for i, team := range teams {
			points := Lose
			if g.Winner == sides[i] {
				points = Win
			}
			for _, p := range team {
				k := coefficient(played[p], ratings[p])
				next[p] = Calculate(ratings[p], means[1-i], k, points)
			}
		}
		for p, r := range next {
			ratings[p] = r
			played[p]++
		}
	}

	out := make(map[string]float64, len(ratings))
	for p, r := range ratings {
		out[p] = float64(r)
	}
	return out
}

// glicko treats every game as one rating period in which each tracked player
// meets every tracked player of the other team.
func glicko(games []domain.Game) map[string]float64 {
	players := make(map[string]*glicko2.Player)
	get := func(name string) *glicko2.Player {
		p, ok := players[name]
		if !ok {
			p = glicko2.NewPlayer(glicko2.NewRating(glickoRating, glickoDeviation, glickoVolatility))
			players[name] = p
		}
		return p
	}

	for _, g := range games {
		team1, team2 := tracked(g.Team1), tracked(g.Team2)
		period := glicko2.NewRatingPeriod()
		for _, name := range append(append([]string(nil), team1...), team2...) {
			period.AddPlayer(get(name))
		}
		result := glicko2.MATCH_RESULT_LOSS
		if g.Winner == domain.Team1 {
			result = glicko2.MATCH_RESULT_WIN
		}
		for _, a := range team1 {
			for _, b := range team2 {
				period.AddMatch(get(a), get(b), result)
			}
		}
		period.Calculate()
	}

	out := make(map[string]float64, len(players))
	for name, p := range players {
		out[name] = p.Rating().R()
	}
	return out
}
