package models

import "time"

type AnnouncementPriority string

const (
	PriorityUrgent AnnouncementPriority = "urgent"
	PriorityHigh   AnnouncementPriority = "high"
	PriorityMedium AnnouncementPriority = "medium"
	PriorityNormal AnnouncementPriority = "normal"
	PriorityLow    AnnouncementPriority = "low"
)

// Rank orders priorities for display; medium and normal are the same tier.
func (p AnnouncementPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium, PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	}
	return -1
}

type Announcement struct {
	ID          int                  `json:"id" db:"id"`
	Title       string               `json:"title" db:"title"`
	Description string               `json:"description" db:"description"`
	Priority    AnnouncementPriority `json:"priority" db:"priority"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
}
