package model

import "time"

// Item is a reported lost or found item in its stored (canonical) form.
type Item struct {
	ID                 string    `json:"_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	ReporterName       *string   `json:"reporterName,omitempty"`
	ContactInformation *string   `json:"contactInformation,omitempty"`
	Category           string    `json:"category"`
	Location           string    `json:"location"`
	Image              string    `json:"image"`
	Status             string    `json:"status"`
	ReporterID         *string   `json:"userId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ItemDraft is the creation payload for an item. The store assigns ID and
// CreatedAt.
type ItemDraft struct {
	Name               string
	Description        string
	ReporterName       *string
	ContactInformation *string
	Category           string
	Location           string
	Image              string
	Status             string
	ReporterID         *string
}

// Item statuses.
const (
	ItemStatusLost  = "lost"
	ItemStatusFound = "found"
)

// DefaultCategory is used when a report names no category.
const DefaultCategory = "general"

// ValidItemStatus reports whether status is one of the known statuses.
func ValidItemStatus(status string) bool {
	return status == ItemStatusLost || status == ItemStatusFound
}
