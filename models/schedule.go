package models

// GeneralSport marks schedule entries that are not tied to a specific sport
// (opening ceremony, prize distribution and so on).
const GeneralSport = "General"

type Schedule struct {
	ID          int    `json:"id" db:"id"`
	SerialNo    int    `json:"serial_no" db:"serial_no"`
	Date        string `json:"date" db:"date"`
	Time        string `json:"time" db:"time"`
	Activity    string `json:"activity" db:"activity"`
	Sport       string `json:"sport" db:"sport"`
	Gender      string `json:"gender" db:"gender"`
	MatchDetail string `json:"match_detail" db:"match_detail"`
}
