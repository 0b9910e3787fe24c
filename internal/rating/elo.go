package rating

import "math"

type Points float64

const (
	Win  Points = 1
	Draw Points = 0.5
	Lose Points = 0
)

const (
	eloStart        = 1000
	eloProvisional  = 30
	eloMasterRating = 2400
)

// Calculate new rating.
// Ra - player rating.
// Rb - opponent rating.
// K - coefficient: 40 while provisional, then 10 at or above 2400 and 20 below.
// Sa - points: 1 for win; 0.5 for draw; 0 for lose.
func Calculate(Ra int, Rb int, K int, Sa Points) int {
	ra := float64(Ra)
	rb := float64(Rb)
	k := float64(K)

	Ea := 1.0 / (1.0 + math.Pow(10, (rb-ra)/400.0))
	ra = ra + k*(float64(Sa)-Ea)
	return int(math.Round(ra))
}

func coefficient(gamesPlayed int, rating int) int {
	if gamesPlayed <= eloProvisional {
		return 40
	}
	if rating >= eloMasterRating {
		return 10
	}
	return 20
}

func teamMean(ratings map[string]int, players []string) int {
	if len(players) == 0 {
		return eloStart
	}
	sum := 0
	for _, p := range players {
		sum += ratings[p]
	}
	return int(math.Round(float64(sum) / float64(len(players))))
}
