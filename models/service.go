// File: travelgo/models/service.go
package models

import (
	"encoding/json"
	"time"
)

// Category groups travel services (tours, hotels, tickets).
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProviderRef is the owning provider of a service. The API serializes
// it either as a bare primary key or as a nested user object depending
// on the endpoint, so it unmarshals from both.
type ProviderRef struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

func (p *ProviderRef) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		p.ID = id
		return nil
	}
	type alias ProviderRef
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = ProviderRef(obj)
	return nil
}

// TravelService is a bookable listing in the catalog.
type TravelService struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price,string"`
	Location    string     `json:"location"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Duration    string     `json:"duration"`
	SlotsTotal  int        `json:"slots_total"`

	// Nil when the server does not report a capacity bound.
	SlotsAvailable *int `json:"slots_available"`

	Image        string      `json:"image"`
	Category     *Category   `json:"category"`
	Provider     ProviderRef `json:"provider"`
	Active       bool        `json:"active"`
	AvgRating    *float64    `json:"avg_rating"`
	BookingCount int         `json:"booking_count"`
}
