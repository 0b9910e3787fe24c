package sqlite

import (
	"fmt"

	"github.com/Nick-Wu5/ceeps/gen/sqlite/model"
	"github.com/Nick-Wu5/ceeps/internal/domain"

	"github.com/google/uuid"
)

func convertGameFromDomain(game domain.Game) (model.Games, []model.GamePlayers) {
	dbGame := model.Games{
		ID:              game.ID.String(),
		Date:            game.Date.String(),
		Winner:          string(game.Winner),
		Team1Score:      int32(game.Team1Score),
		Team2Score:      int32(game.Team2Score),
		ScorecardPlayer: game.ScorecardPlayer,
		CreatedAt:       game.CreatedAt,
		UpdatedAt:       game.UpdatedAt,
	}
	players := make([]model.GamePlayers, 0, 2*domain.TeamSize)
	for _, team := range []domain.Team{domain.Team1, domain.Team2} {
		for slot, name := range game.Roster(team) {
			stats := game.IndividualStats[name]
			players = append(players, model.GamePlayers{
				GameID:          dbGame.ID,
				Team:            string(team),
				Slot:            int32(slot),
				PlayerName:      name,
				CupsHit:         int32(stats.CupsHit),
				NakedLaps:       int32(stats.NakedLaps),
				ManualNakedLaps: stats.ManualNakedLaps,
				Errors:          int32(stats.Errors),
			})
		}
	}
	return dbGame, players
}

// convertGameToDomain expects players ordered by team and slot.
func convertGameToDomain(game model.Games, players []model.GamePlayers) (domain.Game, error) {
	id, err := uuid.Parse(game.ID)
	if err != nil {
		return domain.Game{}, fmt.Errorf("game id %q: %w", game.ID, err)
	}
	date, err := domain.ParseDate(game.Date)
	if err != nil {
		return domain.Game{}, fmt.Errorf("game %s date: %w", game.ID, err)
	}
	converted := domain.Game{
		ID:              id,
		Date:            date,
		Team1:           []string{},
		Team2:           []string{},
		Winner:          domain.Team(game.Winner),
		Team1Score:      int(game.Team1Score),
		Team2Score:      int(game.Team2Score),
		ScorecardPlayer: game.ScorecardPlayer,
		IndividualStats: make(map[string]domain.PlayerGameStats, len(players)),
		CreatedAt:       game.CreatedAt,
		UpdatedAt:       game.UpdatedAt,
	}
	for _, p := range players {
		switch domain.Team(p.Team) {
		case domain.Team1:
			converted.Team1 = append(converted.Team1, p.PlayerName)
		case domain.Team2:
			converted.Team2 = append(converted.Team2, p.PlayerName)
		}
		converted.IndividualStats[p.PlayerName] = domain.PlayerGameStats{
			CupsHit:         int(p.CupsHit),
			NakedLaps:       int(p.NakedLaps),
			ManualNakedLaps: p.ManualNakedLaps,
			Errors:          int(p.Errors),
		}
	}
	return converted, nil
}

func convertAggregateFromDomain(agg domain.PlayerAggregate) (model.PlayerStats, []model.PlayerStatGames) {
	stats := model.PlayerStats{
		PlayerName:         agg.PlayerName,
		GamesPlayed:        int32(agg.GamesPlayed),
		GamesWon:           int32(agg.GamesWon),
		WinRatio:           agg.WinRatio,
		TotalCupsHit:       int32(agg.TotalCupsHit),
		CupsHitAvg:         agg.CupsHitAvg,
		NumberOfScorecards: int32(agg.NumberOfScorecards),
		NakedLapsRun:       int32(agg.NakedLapsRun),
		TotalErrors:        int32(agg.TotalErrors),
		LastUpdated:        agg.LastUpdated,
	}
	games := make([]model.PlayerStatGames, 0, len(agg.GameIDs))
	for _, id := range agg.GameIDs {
		games = append(games, model.PlayerStatGames{
			PlayerName: agg.PlayerName,
			GameID:     id.String(),
		})
	}
	return stats, games
}

func convertAggregateToDomain(stats model.PlayerStats, games []model.PlayerStatGames) (domain.PlayerAggregate, error) {
	agg := domain.PlayerAggregate{
		PlayerName:         stats.PlayerName,
		GamesPlayed:        int(stats.GamesPlayed),
		GamesWon:           int(stats.GamesWon),
		WinRatio:           stats.WinRatio,
		TotalCupsHit:       int(stats.TotalCupsHit),
		CupsHitAvg:         stats.CupsHitAvg,
		NumberOfScorecards: int(stats.NumberOfScorecards),
		NakedLapsRun:       int(stats.NakedLapsRun),
		TotalErrors:        int(stats.TotalErrors),
		GameIDs:            make([]uuid.UUID, 0, len(games)),
		LastUpdated:        stats.LastUpdated,
	}
	for _, g := range games {
		id, err := uuid.Parse(g.GameID)
		if err != nil {
			return domain.PlayerAggregate{}, fmt.Errorf("player %s game id %q: %w", stats.PlayerName, g.GameID, err)
		}
		agg.GameIDs = append(agg.GameIDs, id)
	}
	domain.SortGameIDs(agg.GameIDs)
	return agg, nil
}
