package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgo/models"
	"travelgo/utils"
)

type fakeBookingAPI struct {
	mu      sync.Mutex
	booking *models.Booking
	err     error

	calls     int
	lastToken string
	lastReq   models.BookingRequest
}

func (f *fakeBookingAPI) CreateBooking(_ context.Context, token string, req models.BookingRequest) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastToken = token
	f.lastReq = req
	return f.booking, f.err
}

type fakeIdentity struct {
	user  *models.User
	token string
}

func (f *fakeIdentity) CurrentUser() *models.User { return f.user }
func (f *fakeIdentity) Token() string             { return f.token }

func tourWithSlots(slots int) models.TravelService {
	return models.TravelService{ID: 7, Name: "Đà Lạt 3N2Đ", Price: 500000, SlotsAvailable: &slots}
}

func TestAdjustQuantityClamps(t *testing.T) {
	tests := []struct {
		name        string
		slots       *int
		start       int
		delta       int
		expected    int
		capacityErr bool
	}{
		{name: "increment within bound", slots: intPtr(5), start: 1, delta: 1, expected: 2},
		{name: "at upper bound stays put", slots: intPtr(3), start: 3, delta: 1, expected: 3, capacityErr: true},
		{name: "decrement floor is one", slots: intPtr(5), start: 1, delta: -1, expected: 1},
		{name: "big jump over bound rejected", slots: intPtr(4), start: 2, delta: 10, expected: 2, capacityErr: true},
		{name: "no reported bound falls back high", slots: nil, start: 1, delta: 500, expected: 501},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flow := NewFlow(&fakeBookingAPI{}, &fakeIdentity{})
			flow.Begin(models.TravelService{ID: 1, Price: 100000, SlotsAvailable: tc.slots})
			if tc.start > 1 {
				_, err := flow.AdjustQuantity(tc.start - 1)
				require.NoError(t, err)
			}

			qty, err := flow.AdjustQuantity(tc.delta)
			assert.Equal(t, tc.expected, qty)
			if tc.capacityErr {
				require.Error(t, err)
				assert.True(t, IsCapacity(err))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, flow.Draft().Quantity)
		})
	}
}

func TestAdjustQuantityWithoutDraft(t *testing.T) {
	flow := NewFlow(&fakeBookingAPI{}, &fakeIdentity{})
	_, err := flow.AdjustQuantity(1)
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestOpenConfirmationWithoutSessionParksDraft(t *testing.T) {
	identity := &fakeIdentity{}
	flow := NewFlow(&fakeBookingAPI{}, identity)
	flow.Begin(tourWithSlots(10))
	_, err := flow.AdjustQuantity(1)
	require.NoError(t, err)

	state, err := flow.OpenConfirmation()
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, StateAwaitingAuth, state)

	// The draft, including which tour, survives the login detour.
	draft := flow.Draft()
	require.NotNil(t, draft)
	assert.Equal(t, int64(7), draft.Tour.ID)
	assert.Equal(t, 2, draft.Quantity)

	// Login lands; the flow resumes exactly where it parked.
	identity.user = &models.User{ID: 1, Role: models.RoleCustomer}
	identity.token = "tok"
	assert.True(t, flow.ResumeAfterLogin())
	assert.Equal(t, StateConfirming, flow.State())
	assert.Equal(t, 2, flow.Draft().Quantity)
}

func TestResumeAfterLoginOnlyFromParkedState(t *testing.T) {
	identity := &fakeIdentity{user: &models.User{ID: 1}}
	flow := NewFlow(&fakeBookingAPI{}, identity)

	assert.False(t, flow.ResumeAfterLogin(), "idle flow has nothing to resume")

	flow.Begin(tourWithSlots(5))
	assert.False(t, flow.ResumeAfterLogin(), "flow was never parked")
}

func TestConfirmSuccess(t *testing.T) {
	api := &fakeBookingAPI{booking: &models.Booking{ID: 42, Status: models.BookingPending}}
	identity := &fakeIdentity{user: &models.User{ID: 1}, token: "bearer-tok"}
	flow := NewFlow(api, identity)

	flow.Begin(tourWithSlots(10))
	_, err := flow.AdjustQuantity(1)
	require.NoError(t, err)

	draft := flow.Draft()
	assert.Equal(t, float64(1000000), draft.Total())
	assert.Equal(t, "1.000.000 ₫", utils.FormatVND(draft.Total()))

	_, err = flow.OpenConfirmation()
	require.NoError(t, err)

	booked, err := flow.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), booked.ID)
	assert.Equal(t, StateCommitted, flow.State())
	assert.Nil(t, flow.Draft(), "committed draft must be discarded")

	assert.Equal(t, "bearer-tok", api.lastToken)
	assert.Equal(t, models.BookingRequest{Service: 7, Quantity: 2, PaymentMethod: models.PaymentCash}, api.lastReq)
}

func TestConfirmFailurePreservesDraft(t *testing.T) {
	api := &fakeBookingAPI{err: errors.New("not enough slots available")}
	identity := &fakeIdentity{user: &models.User{ID: 1}, token: "tok"}
	flow := NewFlow(api, identity)

	flow.Begin(tourWithSlots(3))
	_, err := flow.OpenConfirmation()
	require.NoError(t, err)

	_, err = flow.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, flow.State())

	draft := flow.Draft()
	require.NotNil(t, draft, "failed confirmation keeps the draft for retry")
	assert.Equal(t, int64(7), draft.Tour.ID)

	// Retry re-arms and a second confirm can succeed.
	api.mu.Lock()
	api.err = nil
	api.booking = &models.Booking{ID: 9}
	api.mu.Unlock()

	assert.True(t, flow.Retry())
	assert.Equal(t, StateConfirming, flow.State())

	booked, err := flow.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), booked.ID)
	assert.Equal(t, 2, api.calls)
}

func TestConfirmOutOfOrderRejected(t *testing.T) {
	flow := NewFlow(&fakeBookingAPI{}, &fakeIdentity{user: &models.User{ID: 1}})
	flow.Begin(tourWithSlots(5))

	// Confirm without opening confirmation first.
	_, err := flow.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrNoDraft)
	assert.Equal(t, StateIdle, flow.State())
}

func TestCancelDiscardsDraft(t *testing.T) {
	flow := NewFlow(&fakeBookingAPI{}, &fakeIdentity{})
	flow.Begin(tourWithSlots(5))
	_, err := flow.OpenConfirmation()
	require.ErrorIs(t, err, ErrLoginRequired)

	flow.Cancel()
	assert.Equal(t, StateIdle, flow.State())
	assert.Nil(t, flow.Draft())
	assert.False(t, flow.Retry())
}

func intPtr(v int) *int { return &v }
