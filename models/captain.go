package models

import "time"

// Captain is a department-level user who registers players for their department.
type Captain struct {
	ID           int                `json:"id" db:"id"`
	Name         string             `json:"name" db:"name"`
	Email        string             `json:"email" db:"email"`
	RNumber      string             `json:"r_number" db:"r_number"`
	UniqueID     string             `json:"unique_id" db:"unique_id"`
	Department   string             `json:"department" db:"department"`
	BloodGroup   string             `json:"blood_group" db:"blood_group"`
	Phone        string             `json:"phone" db:"phone"`
	Sport        string             `json:"sport" db:"sport"`
	Gender       string             `json:"gender" db:"gender"`
	PasswordHash string             `json:"-" db:"password_hash"`
	Status       RegistrationStatus `json:"status" db:"status"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"`

	PlayerCount *int `json:"player_count,omitempty" db:"-"`
}
