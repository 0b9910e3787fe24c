package webpath

const (
	Health  = "/healthz"
	Metrics = "/metrics"

	Api            = "/api"
	ApiGames       = Api + "/games"
	ApiGame        = ApiGames + "/:id"
	ApiPlayers     = Api + "/players"
	ApiPlayer      = ApiPlayers + "/:name"
	ApiPlayerStats = ApiPlayer + "/stats"
	ApiLeaderboard = Api + "/leaderboard"
	ApiRatings     = Api + "/ratings"
	ApiAdmin       = Api + "/admin"
	ApiRecompute   = ApiAdmin + "/recompute"
)

func Path() map[string]string {
	return map[string]string{
		"Health":      Health,
		"Metrics":     Metrics,
		"Games":       ApiGames,
		"Players":     ApiPlayers,
		"Leaderboard": ApiLeaderboard,
		"Ratings":     ApiRatings,
		"Recompute":   ApiRecompute,
	}
}
