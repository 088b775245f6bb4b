package models

import "time"

type Team struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Sport       string    `json:"sport" db:"sport"`
	Department  string    `json:"department" db:"department"`
	Coach       string    `json:"coach" db:"coach"`
	CaptainName string    `json:"captain_name" db:"captain_name"`
	Description string    `json:"description" db:"description"`
	Record      string    `json:"record" db:"record"`
	Wins        string    `json:"wins" db:"wins"`
	Standings   string    `json:"standings" db:"standings"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	ImageKey *string `json:"-" db:"image_key"`
	ImageURL *string `json:"image_url,omitempty" db:"image_url"`

	Players []Player `json:"players,omitempty" db:"-"`
}
