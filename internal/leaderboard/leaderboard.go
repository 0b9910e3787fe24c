// Package leaderboard ranks player aggregates. Rank is a pure function of
// its input and never touches storage.
package leaderboard

import (
	"sort"
	"strings"

	"github.com/Nick-Wu5/ceeps/internal/domain"
)

type SortKey string

const (
	WinRatio    SortKey = "win_ratio"
	CupsHitAvg  SortKey = "cups_hit_avg"
	TotalCups   SortKey = "total_cups"
	TotalWins   SortKey = "total_wins"
	GamesPlayed SortKey = "games_played"
	Scorecards  SortKey = "scorecards"
)

var SortKeys = []SortKey{WinRatio, CupsHitAvg, TotalCups, TotalWins, GamesPlayed, Scorecards}

// ParseSortKey accepts the wire names of the sort keys. An empty string
// selects WinRatio.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return WinRatio, nil
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	names := make([]string, 0, len(SortKeys))
	for _, k := range SortKeys {
		names = append(names, string(k))
	}
	return "", domain.NewValidationError(domain.ConstraintSortKey,
		"unknown sort key %q, expected one of %s", s, strings.Join(names, ", "))
}

type Row struct {
	Rank int `json:"rank"`
	domain.PlayerAggregate
}

func (k SortKey) value(a domain.PlayerAggregate) float64 {
	switch k {
	case CupsHitAvg:
		return a.CupsHitAvg
	case TotalCups:
		return float64(a.TotalCupsHit)
	case TotalWins:
		return float64(a.GamesWon)
	case GamesPlayed:
		return float64(a.GamesPlayed)
	case Scorecards:
		return float64(a.NumberOfScorecards)
	default:
		return a.WinRatio
	}
}

// Rank filters out players without games and the guest, orders the rest by
// key and returns at most limit rows. A limit of zero or less returns all.
//
// Ties on key fall back to win ratio (unless it is the key), then games
// played, then name.
func Rank(aggregates []domain.PlayerAggregate, key SortKey, limit int) []Row {
	eligible := make([]domain.PlayerAggregate, 0, len(aggregates))
	for _, a := range aggregates {
		if a.GamesPlayed > 0 && a.PlayerName != domain.GuestName {
			eligible = append(eligible, a)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if va, vb := key.value(a), key.value(b); va != vb {
			return va > vb
		}
		if key != WinRatio && a.WinRatio != b.WinRatio {
			return a.WinRatio > b.WinRatio
		}
		if key != GamesPlayed && a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed > b.GamesPlayed
		}
		return a.PlayerName < b.PlayerName
	})

	if limit > 0 && limit < len(eligible) {
		eligible = eligible[:limit]
	}
	rows := make([]Row, 0, len(eligible))
	for i, a := range eligible {
		rows = append(rows, Row{Rank: i + 1, PlayerAggregate: a.Clone()})
	}
	return rows
}
