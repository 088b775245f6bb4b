package models

import "time"

// MaxSportsPerPlayer limits how many sports one R-Number may be registered for.
const MaxSportsPerPlayer = 2

// DepartmentPlayer is a player record added by a captain.
type DepartmentPlayer struct {
	ID         int                `json:"id" db:"id"`
	Name       string             `json:"name" db:"name"`
	Email      string             `json:"email" db:"email"`
	RNumber    string             `json:"r_number" db:"r_number"`
	UniqueID   string             `json:"unique_id" db:"unique_id"`
	Department string             `json:"department" db:"department"`
	BloodGroup string             `json:"blood_group" db:"blood_group"`
	Phone      string             `json:"phone" db:"phone"`
	Sport      string             `json:"sport" db:"sport"`
	Gender     string             `json:"gender" db:"gender"`
	Year       string             `json:"year" db:"year"`
	CaptainID  int                `json:"captain_id" db:"captain_id"`
	Status     RegistrationStatus `json:"status" db:"status"`
	AddedAt    time.Time          `json:"added_at" db:"added_at"`

	CaptainName *string `json:"captain_name,omitempty" db:"-"`
}
