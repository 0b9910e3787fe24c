package domain

import (
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

// GuestName is the untracked placeholder usable on either team.
const GuestName = "Guest"

const (
	TeamSize = 4
	// A losing-team player with this many cups or fewer runs a naked lap.
	NakedLapCupThreshold = 9
	// A finished game has at least one team on this many cups.
	WinningScore = 55
)

type Team string

const (
	Team1 Team = "team1"
	Team2 Team = "team2"
)

func (t Team) Valid() bool {
	return t == Team1 || t == Team2
}

func (t Team) Opponent() Team {
	if t == Team1 {
		return Team2
	}
	return Team1
}

// PlayerGameStats is one player's line in a stored game.
type PlayerGameStats struct {
	CupsHit   int `json:"cups_hit"`
	NakedLaps int `json:"naked_laps"`
	// ManualNakedLaps is set when NakedLaps came from an explicit override.
	ManualNakedLaps bool `json:"manual_naked_laps"`
	Errors          int  `json:"errors"`
}

type Game struct {
	ID              uuid.UUID                  `json:"id"`
	Date            Date                       `json:"date"`
	Team1           []string                   `json:"team1"`
	Team2           []string                   `json:"team2"`
	Winner          Team                       `json:"winner"`
	Team1Score      int                        `json:"team1_score"`
	Team2Score      int                        `json:"team2_score"`
	ScorecardPlayer string                     `json:"scorecard_player"`
	IndividualStats map[string]PlayerGameStats `json:"individual_stats"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

func (g Game) Roster(team Team) []string {
	if team == Team1 {
		return g.Team1
	}
	return g.Team2
}

// TeamOf reports the team the player is on. Guest reports the first team
// it appears on.
func (g Game) TeamOf(name string) (Team, bool) {
	for _, p := range g.Team1 {
		if p == name {
			return Team1, true
		}
	}
	for _, p := range g.Team2 {
		if p == name {
			return Team2, true
		}
	}
	return "", false
}

// TrackedPlayers returns the participants that own an aggregate row.
func (g Game) TrackedPlayers() mapset.Set[string] {
	players := mapset.NewThreadUnsafeSet[string]()
	for _, team := range [][]string{g.Team1, g.Team2} {
		for _, p := range team {
			if p != GuestName {
				players.Add(p)
			}
		}
	}
	return players
}

// Contribution is what a single game adds to one player's aggregate.
type Contribution struct {
	Won       bool
	CupsHit   int
	Scorecard bool
	NakedLaps int
	Errors    int
}

// ContributionOf returns the player's contribution, or false when the game
// does not list the player in both a team and individual_stats.
func (g Game) ContributionOf(name string) (Contribution, bool) {
	team, ok := g.TeamOf(name)
	if !ok {
		return Contribution{}, false
	}
	stats, ok := g.IndividualStats[name]
	if !ok {
		return Contribution{}, false
	}
	return Contribution{
		Won:       team == g.Winner,
		CupsHit:   stats.CupsHit,
		Scorecard: name == g.ScorecardPlayer,
		NakedLaps: stats.NakedLaps,
		Errors:    stats.Errors,
	}, true
}

func (g Game) Clone() Game {
	c := g
	c.Team1 = append([]string(nil), g.Team1...)
	c.Team2 = append([]string(nil), g.Team2...)
	if g.IndividualStats != nil {
		c.IndividualStats = make(map[string]PlayerGameStats, len(g.IndividualStats))
		for k, v := range g.IndividualStats {
			c.IndividualStats[k] = v
		}
	}
	return c
}

// SortGamesNewestFirst orders games by date, creation time and id, all
// descending. The id key makes the order total.
func SortGamesNewestFirst(games []Game) {
	sort.SliceStable(games, func(i, j int) bool {
		return NewerThan(games[i], games[j])
	})
}

func NewerThan(a, b Game) bool {
	if !a.Date.Equal(b.Date) {
		return b.Date.Before(a.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}
