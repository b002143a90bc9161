package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTravelServiceDecoding(t *testing.T) {
	raw := `{
		"id": 7,
		"name": "Đà Lạt 3N2Đ",
		"price": "500000.00",
		"location": "Đà Lạt",
		"slots_total": 20,
		"slots_available": 3,
		"provider": {"id": 9, "username": "prov", "first_name": "Bình"},
		"category": {"id": 2, "name": "Tour"},
		"avg_rating": 4.5
	}`

	var svc TravelService
	require.NoError(t, json.Unmarshal([]byte(raw), &svc))

	assert.Equal(t, int64(7), svc.ID)
	assert.Equal(t, float64(500000), svc.Price)
	require.NotNil(t, svc.SlotsAvailable)
	assert.Equal(t, 3, *svc.SlotsAvailable)
	assert.Equal(t, int64(9), svc.Provider.ID)
	assert.Equal(t, "prov", svc.Provider.Username)
	require.NotNil(t, svc.AvgRating)
	assert.Equal(t, 4.5, *svc.AvgRating)
}

func TestTravelServiceOptionalFieldsAbsent(t *testing.T) {
	raw := `{"id": 1, "name": "minimal", "price": "1000", "provider": 4}`

	var svc TravelService
	require.NoError(t, json.Unmarshal([]byte(raw), &svc))

	assert.Nil(t, svc.SlotsAvailable, "absent capacity must stay nil, not zero")
	assert.Nil(t, svc.Category)
	assert.Nil(t, svc.AvgRating)
}

func TestProviderRefDualShape(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected ProviderRef
	}{
		{
			name:     "bare primary key",
			raw:      `9`,
			expected: ProviderRef{ID: 9},
		},
		{
			name:     "nested object",
			raw:      `{"id": 9, "username": "prov", "first_name": "Bình", "last_name": "Trần"}`,
			expected: ProviderRef{ID: 9, Username: "prov", FirstName: "Bình", LastName: "Trần"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ref ProviderRef
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &ref))
			assert.Equal(t, tc.expected, ref)
		})
	}
}

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{name: "full name", user: User{Username: "an", FirstName: "An", LastName: "Nguyễn"}, expected: "Nguyễn An"},
		{name: "first name only", user: User{Username: "an", FirstName: "An"}, expected: "An"},
		{name: "falls back to username", user: User{Username: "an"}, expected: "an"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.user.DisplayName())
		})
	}
}

func TestIsProviderNilSafe(t *testing.T) {
	var nobody *User
	assert.False(t, nobody.IsProvider())
	assert.False(t, (&User{Role: RoleCustomer}).IsProvider())
	assert.True(t, (&User{Role: RoleProvider}).IsProvider())
}

func TestBookingPriceDecoding(t *testing.T) {
	raw := `{"id": 42, "user": 5, "service": 7, "quantity": 2, "total_price": "1000000.00", "status": "PENDING", "payment_method": "CASH"}`

	var b Booking
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.Equal(t, float64(1000000), b.TotalPrice)
	assert.Equal(t, BookingPending, b.Status)
	assert.Equal(t, PaymentCash, b.PaymentMethod)
}
