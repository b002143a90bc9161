// File: travelgo/api/bookings.go
package api

import (
	"context"

	"travelgo/models"
)

// CreateBooking commits a booking under the authenticated session. The
// server validates remaining capacity inside a transaction, so a
// sold-out race comes back as an API error rather than an oversell.
func (c *Client) CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.postJSON(ctx, epBookings, token, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Bookings lists orders for the authenticated account; the server
// scopes the result by role.
func (c *Client) Bookings(ctx context.Context, token string) ([]models.Booking, error) {
	return getList[models.Booking](c, ctx, epBookings, nil, token)
}

// CancelBooking cancels an order; the server restores the slots.
func (c *Client) CancelBooking(ctx context.Context, token string, id int64) error {
	return c.postJSON(ctx, epBookingCancel(id), token, struct{}{}, nil)
}
