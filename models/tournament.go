package models

import "time"

// Tournament представляет турнир. Logo is stored as a relative path of the
// form /uploads/tournament_logo/<name>, nullable.
type Tournament struct {
	ID            int       `json:"id" db:"id"`
	AgeGroup      string    `json:"age_group" db:"age_group"`
	Name          string    `json:"name" db:"name"`
	Format        string    `json:"format" db:"format"`
	StartDate     time.Time `json:"start_date" db:"start_date"`
	EndDate       time.Time `json:"end_date" db:"end_date"`
	NumberOfTeams int       `json:"number_of_teams" db:"number_of_teams"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	LogoPath *string `json:"logo_path,omitempty" db:"logo_path"`

	// External scoreboard links.
	CrickheroesURL *string `json:"crickheroes_url,omitempty" db:"crickheroes_url"`
	SportlinkURL   *string `json:"sportlink_url,omitempty" db:"sportlink_url"`
}

// TournamentName is a light projection for dropdowns on the frontend.
type TournamentName struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
