package models

import "time"

// Player is the self-registering player account, independent of captains.
type Player struct {
	ID           int                `json:"id" db:"id"`
	Name         string             `json:"name" db:"name"`
	Email        string             `json:"email" db:"email"`
	RNumber      string             `json:"r_number" db:"r_number"`
	PasswordHash string             `json:"-" db:"password_hash"`
	TeamID       *int               `json:"team_id,omitempty" db:"team_id"`
	Department   string             `json:"department" db:"department"`
	Position     string             `json:"position" db:"position"`
	JerseyNumber *int               `json:"jersey_number,omitempty" db:"jersey_number"`
	Status       RegistrationStatus `json:"status" db:"status"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`

	TeamName *string `json:"team_name,omitempty" db:"-"`
}
