package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// PlayerAggregate is the running statistics row of one tracked player.
type PlayerAggregate struct {
	PlayerName         string      `json:"player_name"`
	GamesPlayed        int         `json:"games_played"`
	GamesWon           int         `json:"games_won"`
	WinRatio           float64     `json:"win_ratio"`
	TotalCupsHit       int         `json:"total_cups_hit"`
	CupsHitAvg         float64     `json:"cups_hit_avg"`
	NumberOfScorecards int         `json:"number_of_scorecards"`
	NakedLapsRun       int         `json:"naked_laps_run"`
	TotalErrors        int         `json:"total_errors"`
	GameIDs            []uuid.UUID `json:"game_ids"`
	LastUpdated        time.Time   `json:"last_updated"`
}

func NewPlayerAggregate(name string) PlayerAggregate {
	return PlayerAggregate{PlayerName: name, GameIDs: []uuid.UUID{}}
}

func (a *PlayerAggregate) HasGame(id uuid.UUID) bool {
	for _, gameID := range a.GameIDs {
		if gameID == id {
			return true
		}
	}
	return false
}

// AddGameID records id and reports whether it was new.
func (a *PlayerAggregate) AddGameID(id uuid.UUID) bool {
	if a.HasGame(id) {
		return false
	}
	a.GameIDs = append(a.GameIDs, id)
	SortGameIDs(a.GameIDs)
	return true
}

func (a *PlayerAggregate) RemoveGameID(id uuid.UUID) bool {
	for i, gameID := range a.GameIDs {
		if gameID == id {
			a.GameIDs = append(a.GameIDs[:i], a.GameIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Apply adds one game's contribution. A game already recorded is ignored,
// so applying the same game twice leaves the aggregate unchanged.
func (a *PlayerAggregate) Apply(gameID uuid.UUID, c Contribution) bool {
	if !a.AddGameID(gameID) {
		return false
	}
	a.add(c)
	a.refreshRatios()
	return true
}

// Reset zeroes every counter but keeps the id set.
func (a *PlayerAggregate) Reset() {
	a.GamesPlayed = 0
	a.GamesWon = 0
	a.TotalCupsHit = 0
	a.NumberOfScorecards = 0
	a.NakedLapsRun = 0
	a.TotalErrors = 0
	a.refreshRatios()
}

// Replay rebuilds the counters from scratch from the given contributions,
// keyed by game id. GameIDs becomes exactly the set of keys.
func (a *PlayerAggregate) Replay(contributions map[uuid.UUID]Contribution) {
	a.Reset()
	a.GameIDs = make([]uuid.UUID, 0, len(contributions))
	for id, c := range contributions {
		a.GameIDs = append(a.GameIDs, id)
		a.add(c)
	}
	SortGameIDs(a.GameIDs)
	a.refreshRatios()
}

func (a *PlayerAggregate) add(c Contribution) {
	a.GamesPlayed++
	if c.Won {
		a.GamesWon++
	}
	a.TotalCupsHit += c.CupsHit
	if c.Scorecard {
		a.NumberOfScorecards++
	}
	a.NakedLapsRun += c.NakedLaps
	a.TotalErrors += c.Errors
}

// refreshRatios derives the ratios from the integer counters every time so
// no floating point error accumulates.
func (a *PlayerAggregate) refreshRatios() {
	if a.GamesPlayed == 0 {
		a.WinRatio = 0
		a.CupsHitAvg = 0
		return
	}
	a.WinRatio = float64(a.GamesWon) / float64(a.GamesPlayed)
	a.CupsHitAvg = float64(a.TotalCupsHit) / float64(a.GamesPlayed)
}

func (a PlayerAggregate) Clone() PlayerAggregate {
	c := a
	c.GameIDs = append([]uuid.UUID{}, a.GameIDs...)
	return c
}

func SortGameIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
