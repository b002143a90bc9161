// File: travelgo/models/booking.go
package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "CASH"
	PaymentMomo    PaymentMethod = "MOMO"
	PaymentZaloPay PaymentMethod = "ZALOPAY"
	PaymentStripe  PaymentMethod = "STRIPE"
)

// Booking is a committed order as served by the bookings endpoint. The
// list is already scoped server-side: customers see their own orders,
// providers see orders against their services.
type Booking struct {
	ID            int64          `json:"id"`
	User          int64          `json:"user"`
	Service       int64          `json:"service"`
	ServiceDetail *TravelService `json:"service_detail"`
	Quantity      int            `json:"quantity"`
	TotalPrice    float64        `json:"total_price,string"`
	Status        BookingStatus  `json:"status"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	CreatedDate   time.Time      `json:"created_date"`
}

// BookingRequest is the write shape for creating a booking. The server
// recomputes the total and decrements capacity atomically.
type BookingRequest struct {
	Service       int64         `json:"service"`
	Quantity      int           `json:"quantity"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}
