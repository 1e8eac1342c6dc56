package models

import "time"

// NewsItem is a published article. The three image slots are independently
// nullable and independently replaceable on update.
type NewsItem struct {
	ID              int       `json:"id" db:"id"`
	Headline        string    `json:"headline" db:"headline"`
	Description     string    `json:"description" db:"description"`
	PublicationDate string    `json:"publication_date" db:"publication_date"`
	Category        string    `json:"category" db:"category"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	Image1 *string `json:"image1,omitempty" db:"image1"`
	Image2 *string `json:"image2,omitempty" db:"image2"`
	Image3 *string `json:"image3,omitempty" db:"image3"`
}
