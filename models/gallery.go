package models

import "time"

type GalleryItem struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	ImageKey    *string   `json:"-" db:"image_key"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
