package models

type Rule struct {
	ID           int    `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	Sport        string `json:"sport" db:"sport"`
	Category     string `json:"category" db:"category"`
	DisplayOrder int    `json:"display_order" db:"display_order"`

	DescriptionHTML string `json:"description_html,omitempty" db:"-"`
}
