// File: travelgo/provider/listings.go
package provider

import (
	"context"
	"fmt"
	"net/url"

	"travelgo/api"
	"travelgo/booking"
	"travelgo/models"
)

// ListingAPI is the slice of the REST client the listings service needs.
type ListingAPI interface {
	Services(ctx context.Context, query url.Values) ([]models.TravelService, error)
	CreateService(ctx context.Context, token string, form api.TourForm) (*models.TravelService, error)
	UpdateService(ctx context.Context, token string, id int64, form api.TourForm) (*models.TravelService, error)
	DeleteService(ctx context.Context, token string, id int64) error
}

// Listings manages the provider's own tours.
type Listings struct {
	api     ListingAPI
	session booking.Identity
}

// NewListings builds the listings service for the authenticated provider.
func NewListings(api ListingAPI, session booking.Identity) *Listings {
	return &Listings{api: api, session: session}
}

// MyTours returns the listings owned by the current provider. The list
// endpoint is not scoped, so ownership is filtered here; the provider
// field arrives as either a bare id or a nested object.
func (l *Listings) MyTours(ctx context.Context) ([]models.TravelService, error) {
	user := l.session.CurrentUser()
	if user == nil {
		return nil, fmt.Errorf("list tours: not logged in")
	}
	all, err := l.api.Services(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tours: %w", err)
	}

	mine := make([]models.TravelService, 0, len(all))
	for _, svc := range all {
		if svc.Provider.ID == user.ID {
			mine = append(mine, svc)
		}
	}
	return mine, nil
}

// Save creates a new listing or, when id is non-zero, patches an
// existing one.
func (l *Listings) Save(ctx context.Context, id int64, form api.TourForm) (*models.TravelService, error) {
	token := l.session.Token()
	if id > 0 {
		return l.api.UpdateService(ctx, token, id, form)
	}
	return l.api.CreateService(ctx, token, form)
}

// Delete removes a listing. Listings with existing bookings are
// rejected server-side; the error is surfaced for the caller's notice.
func (l *Listings) Delete(ctx context.Context, id int64) error {
	return l.api.DeleteService(ctx, l.session.Token(), id)
}
