package domain

import (
	"errors"
	"testing"

	"github.com/Nick-Wu5/ceeps/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rosterStub map[string]string

func (r rosterStub) Resolve(name string) (string, bool) {
	canonical, ok := r[normalize.Name(name)]
	return canonical, ok
}

var testRoster = rosterStub{
	"alice": "Alice", "bob": "Bob", "carl": "Carl", "dee": "Dee",
	"eve": "Eve", "fay": "Fay", "gus": "Gus", "hal": "Hal", "ivy": "Ivy",
}

func intp(v int) *int { return &v }

func cups(values map[string]int) map[string]PlayerStatsInput {
	stats := make(map[string]PlayerStatsInput, len(values))
	for name, v := range values {
		stats[name] = PlayerStatsInput{CupsHit: intp(v)}
	}
	return stats
}

func gameA() GameInput {
	return GameInput{
		Date:  NewDate(2024, 3, 1),
		Team1: []string{"Alice", "Bob", "Carl", "Dee"},
		Team2: []string{"Eve", "Fay", "Gus", "Hal"},
		IndividualStats: cups(map[string]int{
			"Alice": 14, "Bob": 14, "Carl": 14, "Dee": 13,
			"Eve": 10, "Fay": 10, "Gus": 12, "Hal": 8,
		}),
		ScorecardPlayer: "Alice",
	}
}

func TestBuildDerivesGame(t *testing.T) {
	g, err := gameA().Build(testRoster)
	require.NoError(t, err)

	assert.Equal(t, Team1, g.Winner)
	assert.Equal(t, 55, g.Team1Score)
	assert.Equal(t, 40, g.Team2Score)
	assert.Equal(t, "Alice", g.ScorecardPlayer)

	assert.Equal(t, 0, g.IndividualStats["Dee"].NakedLaps, "winners never run by rule")
	assert.Equal(t, 0, g.IndividualStats["Eve"].NakedLaps, "10 cups is above the threshold")
	assert.Equal(t, 1, g.IndividualStats["Hal"].NakedLaps)
	assert.False(t, g.IndividualStats["Hal"].ManualNakedLaps)
}

func TestBuildCanonicalisesNames(t *testing.T) {
	in := gameA()
	in.Team1 = []string{"alice", " BOB ", "Carl", "dee"}
	in.IndividualStats = cups(map[string]int{
		"ALICE": 14, "bob": 14, "carl": 14, "Dee": 13,
		"Eve": 10, "Fay": 10, "Gus": 12, "Hal": 8,
	})
	in.ScorecardPlayer = "alice"

	g, err := in.Build(testRoster)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carl", "Dee"}, g.Team1)
	assert.Equal(t, "Alice", g.ScorecardPlayer)
	assert.Contains(t, g.IndividualStats, "Alice")
}

func TestBuildNakedLapOverride(t *testing.T) {
	tests := []struct {
		name       string
		player     string
		override   *int
		wantLaps   int
		wantManual bool
	}{
		{name: "rule applies", player: "Hal", wantLaps: 1},
		{name: "override above rule", player: "Hal", override: intp(3), wantLaps: 3, wantManual: true},
		{name: "explicit zero beats rule", player: "Hal", override: intp(0), wantLaps: 0, wantManual: true},
		{name: "override on winner", player: "Bob", override: intp(2), wantLaps: 2, wantManual: true},
		{name: "no rule above threshold", player: "Eve", wantLaps: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := gameA()
			s := in.IndividualStats[tt.player]
			s.NakedLaps = tt.override
			in.IndividualStats[tt.player] = s

			g, err := in.Build(testRoster)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLaps, g.IndividualStats[tt.player].NakedLaps)
			assert.Equal(t, tt.wantManual, g.IndividualStats[tt.player].ManualNakedLaps)
		})
	}
}

func TestBuildGuest(t *testing.T) {
	in := gameA()
	in.Team1 = []string{"Alice", "Bob", "Carl", "guest"}
	in.Team2 = []string{"Eve", "Fay", "Gus", "Guest"}
	in.IndividualStats = cups(map[string]int{
		"Alice": 14, "Bob": 14, "Carl": 14, "Guest": 13,
		"Eve": 10, "Fay": 10, "Gus": 12,
	})

	g, err := in.Build(testRoster)
	require.NoError(t, err)
	assert.Equal(t, GuestName, g.Team1[3])
	assert.Equal(t, 55, g.Team1Score)
	assert.Equal(t, 37, g.Team2Score)
	assert.ElementsMatch(t, []string{"Alice", "Bob", "Carl", "Eve", "Fay", "Gus"}, g.TrackedPlayers().ToSlice())

	_, ok := g.ContributionOf("Guest")
	assert.True(t, ok)
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(in *GameInput)
		constraint string
	}{
		{
			name:       "missing date",
			mutate:     func(in *GameInput) { in.Date = Date{} },
			constraint: ConstraintMissingField,
		},
		{
			name:       "short team",
			mutate:     func(in *GameInput) { in.Team1 = in.Team1[:3] },
			constraint: ConstraintTeamSize,
		},
		{
			name:       "duplicate player across teams",
			mutate:     func(in *GameInput) { in.Team2[0] = "Alice" },
			constraint: ConstraintDuplicatePlayer,
		},
		{
			name:       "duplicate player after normalisation",
			mutate:     func(in *GameInput) { in.Team1[1] = "ALICE" },
			constraint: ConstraintDuplicatePlayer,
		},
		{
			name: "guest twice on one team",
			mutate: func(in *GameInput) {
				in.Team2[2] = GuestName
				in.Team2[3] = GuestName
			},
			constraint: ConstraintGuestLimit,
		},
		{
			name:       "unknown player",
			mutate:     func(in *GameInput) { in.Team2[0] = "Zed" },
			constraint: ConstraintUnknownPlayer,
		},
		{
			name:       "empty name",
			mutate:     func(in *GameInput) { in.Team2[0] = "  " },
			constraint: ConstraintMissingField,
		},
		{
			name:       "no stats",
			mutate:     func(in *GameInput) { in.IndividualStats = nil },
			constraint: ConstraintMissingStats,
		},
		{
			name:       "missing player stats",
			mutate:     func(in *GameInput) { delete(in.IndividualStats, "Gus") },
			constraint: ConstraintMissingStats,
		},
		{
			name: "stats for player not in game",
			mutate: func(in *GameInput) {
				in.IndividualStats["Ivy"] = PlayerStatsInput{CupsHit: intp(1)}
			},
			constraint: ConstraintUnknownPlayer,
		},
		{
			name: "negative cups",
			mutate: func(in *GameInput) {
				in.IndividualStats["Gus"] = PlayerStatsInput{CupsHit: intp(-1)}
			},
			constraint: ConstraintNegativeStat,
		},
		{
			name: "tie",
			mutate: func(in *GameInput) {
				in.IndividualStats["Gus"] = PlayerStatsInput{CupsHit: intp(27)}
			},
			constraint: ConstraintTie,
		},
		{
			name: "nobody reached the winning score",
			mutate: func(in *GameInput) {
				in.IndividualStats = cups(map[string]int{
					"Alice": 3, "Bob": 3, "Carl": 2, "Dee": 2,
					"Eve": 1, "Fay": 1, "Gus": 1, "Hal": 1,
				})
			},
			constraint: ConstraintMinimumScore,
		},
		{
			name:       "winner disagrees",
			mutate:     func(in *GameInput) { in.Winner = Team2 },
			constraint: ConstraintWinner,
		},
		{
			name:       "score disagrees",
			mutate:     func(in *GameInput) { in.Team1Score = intp(54) },
			constraint: ConstraintScore,
		},
		{
			name:       "scorecard not a top scorer",
			mutate:     func(in *GameInput) { in.ScorecardPlayer = "Dee" },
			constraint: ConstraintScorecard,
		},
		{
			name:       "scorecard tie needs a choice",
			mutate:     func(in *GameInput) { in.ScorecardPlayer = "" },
			constraint: ConstraintScorecard,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := gameA()
			in.Team1 = append([]string{}, in.Team1...)
			in.Team2 = append([]string{}, in.Team2...)
			tt.mutate(&in)

			_, err := in.Build(testRoster)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.constraint, verr.Constraint)
		})
	}
}

func TestBuildScorecardTieResolvedByChoice(t *testing.T) {
	in := gameA()
	in.ScorecardPlayer = "Carl"
	g, err := in.Build(testRoster)
	require.NoError(t, err)
	assert.Equal(t, "Carl", g.ScorecardPlayer)
}

func TestBuildSingleTopScorerNeedsNoChoice(t *testing.T) {
	in := gameA()
	in.IndividualStats["Alice"] = PlayerStatsInput{CupsHit: intp(15)}
	in.ScorecardPlayer = ""
	g, err := in.Build(testRoster)
	require.NoError(t, err)
	assert.Equal(t, "Alice", g.ScorecardPlayer)
}

func TestBuildLosingTeamMayStayBelowWinningScore(t *testing.T) {
	in := gameA()
	in.IndividualStats = cups(map[string]int{
		"Alice": 14, "Bob": 14, "Carl": 14, "Dee": 13,
		"Eve": 0, "Fay": 0, "Gus": 0, "Hal": 0,
	})
	g, err := in.Build(testRoster)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Team2Score)
}

func TestBuildWithoutRoster(t *testing.T) {
	t.Run("case variants are one player", func(t *testing.T) {
		t.Parallel()
		in := gameA()
		in.Team1 = []string{"Alice", "alice", "Carl", "Dee"}
		_, err := in.Build(nil)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ConstraintDuplicatePlayer, verr.Constraint)
	})
	t.Run("first spelling wins", func(t *testing.T) {
		t.Parallel()
		in := gameA()
		in.Team1 = []string{"alice", "Bob", "Carl", "Dee"}
		in.ScorecardPlayer = "ALICE"
		g, err := in.Build(nil)
		require.NoError(t, err)
		assert.Equal(t, "alice", g.Team1[0])
		assert.Equal(t, "alice", g.ScorecardPlayer)
		assert.Equal(t, 14, g.IndividualStats["alice"].CupsHit)
	})
}

func TestOpenRoster(t *testing.T) {
	r := NewOpenRoster([]string{"Alice"})

	name, ok := r.Resolve("ALICE ")
	assert.True(t, ok)
	assert.Equal(t, "Alice", name)

	name, ok = r.Resolve(" Zed")
	assert.True(t, ok)
	assert.Equal(t, "Zed", name)

	name, _ = r.Resolve("zed")
	assert.Equal(t, "Zed", name)
}
