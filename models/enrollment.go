package models

// Enrollment is a denormalized join row linking one player to one team within
// one tournament. Enrolling a team inserts one row per selected player.
// There is no uniqueness constraint: re-enrolling the same player inserts
// another row.
type Enrollment struct {
	ID             int    `json:"id" db:"id"`
	PlayerID       int    `json:"player_id" db:"player_id"`
	TeamID         string `json:"team_id" db:"team_id"`
	TeamName       string `json:"team_name" db:"team_name"`
	TournamentID   string `json:"tournament_id" db:"tournament_id"`
	TournamentName string `json:"tournament_name" db:"tournament_name"`
}
