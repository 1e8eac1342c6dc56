package models

import "time"

// Team is a registered team account. Teams authenticate with the
// username/password pair supplied at registration, so the row doubles as a
// captain login record.
type Team struct {
	ID            int       `json:"id" db:"id"`
	TeamID        string    `json:"team_id" db:"team_id"`
	TeamName      string    `json:"team_name" db:"team_name"`
	ClubName      string    `json:"club_name" db:"club_name"`
	CaptainName   string    `json:"captain_name" db:"captain_name"`
	ContactNumber string    `json:"contact_number" db:"contact_number"`
	Email         string    `json:"email" db:"email"`
	AadhaarNumber string    `json:"aadhaar_number" db:"aadhaar_number"`
	Username      string    `json:"username" db:"username"`
	Password      string    `json:"-" db:"password"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	LogoPath      *string `json:"logo_path,omitempty" db:"logo_path"`
	ReceiptNumber *string `json:"receipt_number,omitempty" db:"receipt_number"`
	ReceiptPath   *string `json:"receipt_path,omitempty" db:"receipt_path"`
}
