package model

import "time"

// Listing is an item in the display vocabulary the listing pages and the
// original browser client expect.
type Listing struct {
	ID                 string    `json:"_id"`
	Type               string    `json:"Type"`
	ItemName           string    `json:"ItemName"`
	Name               string    `json:"Name"`
	Description        string    `json:"Description"`
	Location           string    `json:"Location"`
	ContactInformation string    `json:"ContactInformation"`
	Date               time.Time `json:"Date"`
	Image              string    `json:"image"`
}
