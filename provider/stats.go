// File: travelgo/provider/stats.go
package provider

import (
	"context"
	"fmt"

	"travelgo/booking"
	"travelgo/models"
)

// Stats is the provider dashboard summary, aggregated client-side from
// the provider-scoped bookings list.
type Stats struct {
	Revenue   float64
	Orders    int
	Customers int
}

// OrdersAPI is the slice of the REST client the dashboard needs.
type OrdersAPI interface {
	Bookings(ctx context.Context, token string) ([]models.Booking, error)
}

// Dashboard serves the provider's orders and their aggregate stats.
type Dashboard struct {
	api     OrdersAPI
	session booking.Identity
}

// NewDashboard builds the dashboard for the authenticated provider.
func NewDashboard(api OrdersAPI, session booking.Identity) *Dashboard {
	return &Dashboard{api: api, session: session}
}

// Orders lists bookings placed against the provider's services, newest
// first (server ordering).
func (d *Dashboard) Orders(ctx context.Context) ([]models.Booking, error) {
	orders, err := d.api.Bookings(ctx, d.session.Token())
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return orders, nil
}

// Load fetches the orders and aggregates them.
func (d *Dashboard) Load(ctx context.Context) (Stats, error) {
	orders, err := d.Orders(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(orders), nil
}

// Aggregate folds a bookings list into dashboard totals. Cancelled
// orders do not count toward revenue.
func Aggregate(orders []models.Booking) Stats {
	var stats Stats
	customers := make(map[int64]struct{})
	for _, order := range orders {
		if order.Status == models.BookingCancelled {
			continue
		}
		stats.Revenue += order.TotalPrice
		stats.Orders++
		customers[order.User] = struct{}{}
	}
	stats.Customers = len(customers)
	return stats
}
