// File: travelgo/api/endpoints.go
package api

import "fmt"

// Endpoint paths on the marketplace API.
const (
	epCategories  = "/categories/"
	epServices    = "/services/"
	epToken       = "/o/token/"
	epCurrentUser = "/users/current-user/"
	epRegister    = "/users/"
	epBookings    = "/bookings/"
)

func epService(id int64) string {
	return fmt.Sprintf("%s%d/", epServices, id)
}

func epServiceComments(id int64) string {
	return epService(id) + "comments/"
}

func epBookingCancel(id int64) string {
	return fmt.Sprintf("%s%d/cancel/", epBookings, id)
}
