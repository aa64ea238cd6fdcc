package domain

import "time"

// Book is immutable once loaded into a deck session.
type Book struct {
	ID            int64     `json:"id" db:"id"`
	ISBN          string    `json:"isbn" db:"isbn"`
	Title         string    `json:"title" db:"title"`
	Author        string    `json:"author" db:"author"`
	Publisher     *string   `json:"publisher" db:"publisher"`
	Year          *int      `json:"year" db:"publication_year"`
	ImageURLSmall *string   `json:"image_url_small" db:"image_url_small"`
	ImageURLMed   *string   `json:"image_url_medium" db:"image_url_medium"`
	ImageURLLarge *string   `json:"image_url_large" db:"image_url_large"`
	Summary       *string   `json:"summary" db:"summary"`
	AuthorBio     *string   `json:"author_bio" db:"author_bio"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
