package rating

import (
	"testing"
	"time"

	"github.com/Nick-Wu5/ceeps/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func game(day int, team1, team2 []string, winner domain.Team) domain.Game {
	return domain.Game{
		ID:        uuid.New(),
		Date:      domain.NewDate(2024, 5, day),
		Team1:     team1,
		Team2:     team2,
		Winner:    winner,
		CreatedAt: time.Date(2024, 5, day, 20, 0, 0, 0, time.UTC),
	}
}

var (
	strong = []string{"Alice", "Bob", "Carl", "Dee"}
	weak   = []string{"Eve", "Fay", "Gus", domain.GuestName}
)

func byName(rows []Row) map[string]Row {
	out := make(map[string]Row, len(rows))
	for _, r := range rows {
		out[r.Player] = r
	}
	return out
}

func TestCompute(t *testing.T) {
	games := []domain.Game{
		game(1, strong, weak, domain.Team1),
		game(3, strong, weak, domain.Team1),
		game(2, weak, strong, domain.Team2),
	}
	for _, system := range []System{Elo, Glicko2} {
		system := system
		t.Run(string(system), func(t *testing.T) {
			t.Parallel()
			rows := Compute(games, system)
			require.Len(t, rows, 7, "guest is never rated")

			got := byName(rows)
			for _, w := range strong {
				for _, l := range weak[:3] {
					assert.Greater(t, got[w].Rating, got[l].Rating, "%s over %s", w, l)
				}
				assert.Equal(t, 3, got[w].GamesPlayed)
			}
			for i, r := range rows {
				assert.Equal(t, i+1, r.Rank)
			}
			assert.Equal(t, []string{"Alice", "Bob", "Carl", "Dee"}, []string{rows[0].Player, rows[1].Player, rows[2].Player, rows[3].Player})
		})
	}
}

func TestComputeEloSingleGame(t *testing.T) {
	rows := byName(Compute([]domain.Game{game(1, strong, weak, domain.Team1)}, Elo))
	assert.Equal(t, 1020.0, rows["Alice"].Rating)
	assert.Equal(t, 980.0, rows["Eve"].Rating)
}

func TestComputeIgnoresInputOrder(t *testing.T) {
	games := []domain.Game{
		game(1, strong, weak, domain.Team1),
		game(2, weak, strong, domain.Team1),
		game(3, strong, weak, domain.Team2),
	}
	reversed := []domain.Game{games[2], games[1], games[0]}
	assert.Equal(t, Compute(games, Elo), Compute(reversed, Elo))
}

func TestComputeEmpty(t *testing.T) {
	assert.Empty(t, Compute(nil, Glicko2))
}

func TestParseSystem(t *testing.T) {
	s, err := ParseSystem("")
	require.NoError(t, err)
	assert.Equal(t, Elo, s)

	s, err = ParseSystem("Glicko2")
	require.NoError(t, err)
	assert.Equal(t, Glicko2, s)

	_, err = ParseSystem("trueskill")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ConstraintRatingSystem, verr.Constraint)
}
