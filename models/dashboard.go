package models

// DashboardStats aggregates entity counts for the admin dashboard.
type DashboardStats struct {
	TournamentsTotal int `json:"tournaments_total"`
	TeamsTotal       int `json:"teams_total"`
	PlayersTotal     int `json:"players_total"`
	NewsTotal        int `json:"news_total"`
}
