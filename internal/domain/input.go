package domain

import (
	"sort"
	"strings"

	"github.com/Nick-Wu5/ceeps/internal/normalize"
)

// PlayerResolver maps a submitted name to its canonical roster spelling.
type PlayerResolver interface {
	Resolve(name string) (string, bool)
}

// OpenRoster accepts every name. A name that matches a known one after
// normalisation takes the known spelling, and new names become known.
type OpenRoster struct {
	names map[string]string
}

func NewOpenRoster(known []string) *OpenRoster {
	r := &OpenRoster{names: make(map[string]string, len(known))}
	for _, name := range known {
		r.Resolve(name)
	}
	return r
}

func (r *OpenRoster) Resolve(name string) (string, bool) {
	key := normalize.Name(name)
	if canonical, ok := r.names[key]; ok {
		return canonical, true
	}
	canonical := normalize.Trim(name)
	r.names[key] = canonical
	return canonical, true
}

// PlayerStatsInput is one player's submitted line. NakedLaps is the manual
// override: nil means "not set" and lets the rule decide.
type PlayerStatsInput struct {
	CupsHit   *int `json:"cups_hit"`
	NakedLaps *int `json:"naked_laps,omitempty"`
	Errors    *int `json:"errors,omitempty"`
}

// GameInput is a game submission or edit. Winner, scores and scorecard
// player are derived; when supplied they must agree with the derivation.
type GameInput struct {
	Date            Date                        `json:"date"`
	Team1           []string                    `json:"team1"`
	Team2           []string                    `json:"team2"`
	Winner          Team                        `json:"winner,omitempty"`
	Team1Score      *int                        `json:"team1_score,omitempty"`
	Team2Score      *int                        `json:"team2_score,omitempty"`
	ScorecardPlayer string                      `json:"scorecard_player,omitempty"`
	IndividualStats map[string]PlayerStatsInput `json:"individual_stats"`
}

// Build validates the submission and derives a Game without id or
// timestamps. A nil resolver accepts any name, spelled as first seen.
func (in GameInput) Build(resolver PlayerResolver) (Game, error) {
	if resolver == nil {
		resolver = NewOpenRoster(nil)
	}
	if in.Date.IsZero() {
		return Game{}, NewValidationError(ConstraintMissingField, "date is required")
	}
	if len(in.Team1) != TeamSize || len(in.Team2) != TeamSize {
		return Game{}, NewValidationError(ConstraintTeamSize,
			"each team must have exactly %d players, got %d and %d", TeamSize, len(in.Team1), len(in.Team2))
	}
	team1, err := resolveTeam(in.Team1, resolver)
	if err != nil {
		return Game{}, err
	}
	team2, err := resolveTeam(in.Team2, resolver)
	if err != nil {
		return Game{}, err
	}
	if err := checkParticipants(team1, team2); err != nil {
		return Game{}, err
	}
	stats, err := resolveStats(in.IndividualStats, team1, team2, resolver)
	if err != nil {
		return Game{}, err
	}

	g := Game{
		Date:  in.Date,
		Team1: team1,
		Team2: team2,
	}
	g.Team1Score = teamScore(team1, stats)
	g.Team2Score = teamScore(team2, stats)
	if in.Team1Score != nil && *in.Team1Score != g.Team1Score {
		return Game{}, NewValidationError(ConstraintScore,
			"team1_score %d does not match summed cups %d", *in.Team1Score, g.Team1Score)
	}
	if in.Team2Score != nil && *in.Team2Score != g.Team2Score {
		return Game{}, NewValidationError(ConstraintScore,
			"team2_score %d does not match summed cups %d", *in.Team2Score, g.Team2Score)
	}

	if g.Team1Score < WinningScore && g.Team2Score < WinningScore {
		return Game{}, NewValidationError(ConstraintMinimumScore,
			"neither team reached %d cups (%d-%d)", WinningScore, g.Team1Score, g.Team2Score)
	}

	switch {
	case g.Team1Score > g.Team2Score:
		g.Winner = Team1
	case g.Team2Score > g.Team1Score:
		g.Winner = Team2
	default:
		return Game{}, NewValidationError(ConstraintTie,
			"game ended in a tie (%d-%d), a winner cannot be derived", g.Team1Score, g.Team2Score)
	}
	if in.Winner != "" && in.Winner != g.Winner {
		return Game{}, NewValidationError(ConstraintWinner,
			"winner %q does not match scores %d-%d", in.Winner, g.Team1Score, g.Team2Score)
	}

	scorecard, err := pickScorecard(g.Roster(g.Winner), stats, in.ScorecardPlayer, resolver)
	if err != nil {
		return Game{}, err
	}
	g.ScorecardPlayer = scorecard

	g.IndividualStats = make(map[string]PlayerGameStats, len(stats))
	for name, s := range stats {
		team, _ := g.TeamOf(name)
		line := PlayerGameStats{
			CupsHit: derefOr(s.CupsHit, 0),
			Errors:  derefOr(s.Errors, 0),
		}
		line.NakedLaps, line.ManualNakedLaps = ResolveNakedLaps(team != g.Winner, line.CupsHit, s.NakedLaps)
		g.IndividualStats[name] = line
	}
	return g, nil
}

// ResolveNakedLaps applies the naked lap rule. A set override always wins,
// including an explicit zero; otherwise a losing player with
// NakedLapCupThreshold cups or fewer runs one lap.
func ResolveNakedLaps(lost bool, cupsHit int, override *int) (laps int, manual bool) {
	if override != nil {
		return *override, true
	}
	if lost && cupsHit <= NakedLapCupThreshold {
		return 1, false
	}
	return 0, false
}

func IsGuest(name string) bool {
	return normalize.Name(name) == normalize.Name(GuestName)
}

func resolveName(raw string, resolver PlayerResolver) (string, error) {
	name := normalize.Trim(raw)
	if name == "" {
		return "", NewValidationError(ConstraintMissingField, "player name is empty")
	}
	if IsGuest(name) {
		return GuestName, nil
	}
	canonical, ok := resolver.Resolve(name)
	if !ok {
		return "", NewValidationError(ConstraintUnknownPlayer, "%s is not on the roster", name)
	}
	return canonical, nil
}

func resolveTeam(team []string, resolver PlayerResolver) ([]string, error) {
	resolved := make([]string, 0, len(team))
	for _, raw := range team {
		name, err := resolveName(raw, resolver)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, name)
	}
	return resolved, nil
}

func checkParticipants(team1, team2 []string) error {
	counts := make(map[string]int)
	spelling := make(map[string]string)
	for _, team := range [][]string{team1, team2} {
		guests := 0
		for _, name := range team {
			key := normalize.Name(name)
			counts[key]++
			if _, ok := spelling[key]; !ok {
				spelling[key] = name
			}
			if name == GuestName {
				guests++
			}
		}
		if guests > 1 {
			return NewValidationError(ConstraintGuestLimit, "%s can appear at most once per team", GuestName)
		}
	}
	var duplicates []string
	for key, n := range counts {
		if name := spelling[key]; name != GuestName && n > 1 {
			duplicates = append(duplicates, name)
		}
	}
	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return NewValidationError(ConstraintDuplicatePlayer,
			"players listed more than once: %s", strings.Join(duplicates, ", "))
	}
	return nil
}

func resolveStats(raw map[string]PlayerStatsInput, team1, team2 []string, resolver PlayerResolver) (map[string]PlayerStatsInput, error) {
	if len(raw) == 0 {
		return nil, NewValidationError(ConstraintMissingStats, "individual stats are required")
	}
	inGame := make(map[string]bool, 2*TeamSize)
	for _, name := range append(append([]string{}, team1...), team2...) {
		inGame[name] = true
	}
	stats := make(map[string]PlayerStatsInput, len(raw))
	for rawName, s := range raw {
		name, err := resolveName(rawName, resolver)
		if err != nil {
			return nil, err
		}
		if !inGame[name] {
			return nil, NewValidationError(ConstraintUnknownPlayer, "%s has stats but is not in the game", name)
		}
		if _, dup := stats[name]; dup {
			return nil, NewValidationError(ConstraintDuplicatePlayer, "stats for %s given more than once", name)
		}
		for field, v := range map[string]*int{"cups_hit": s.CupsHit, "naked_laps": s.NakedLaps, "errors": s.Errors} {
			if v != nil && *v < 0 {
				return nil, NewValidationError(ConstraintNegativeStat, "%s of %s must not be negative", field, name)
			}
		}
		stats[name] = s
	}
	for name := range inGame {
		s, ok := stats[name]
		if name == GuestName {
			if !ok {
				stats[name] = PlayerStatsInput{}
			}
			continue
		}
		if !ok || s.CupsHit == nil {
			return nil, NewValidationError(ConstraintMissingStats, "cups_hit is required for %s", name)
		}
	}
	return stats, nil
}

func teamScore(team []string, stats map[string]PlayerStatsInput) int {
	total := 0
	for _, name := range team {
		total += derefOr(stats[name].CupsHit, 0)
	}
	return total
}

func pickScorecard(winners []string, stats map[string]PlayerStatsInput, chosen string, resolver PlayerResolver) (string, error) {
	best := -1
	var top []string
	for _, name := range winners {
		cups := derefOr(stats[name].CupsHit, 0)
		switch {
		case cups > best:
			best = cups
			top = []string{name}
		case cups == best && !contains(top, name):
			top = append(top, name)
		}
	}
	if strings.TrimSpace(chosen) == "" {
		if len(top) > 1 {
			return "", NewValidationError(ConstraintScorecard,
				"scorecard is tied between %s, choose one", strings.Join(top, ", "))
		}
		return top[0], nil
	}
	name, err := resolveName(chosen, resolver)
	if err != nil {
		return "", err
	}
	if !contains(top, name) {
		return "", NewValidationError(ConstraintScorecard,
			"%s is not a top scorer of the winning team (%s)", name, strings.Join(top, ", "))
	}
	return name, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func derefOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
