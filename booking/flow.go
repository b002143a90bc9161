// File: travelgo/booking/flow.go
package booking

import (
	"context"
	"fmt"
	"sync"

	"travelgo/models"
)

// State of the booking flow.
type State int

const (
	StateIdle State = iota
	StateAwaitingAuth
	StateConfirming
	StateCommitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAuth:
		return "awaiting-auth"
	case StateConfirming:
		return "confirming"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Capacity fallback when the server reports no bound.
const unboundedSlots = 999

// Draft is an in-progress booking before commit.
type Draft struct {
	Tour     models.TravelService
	Quantity int
}

// Total is the provisional amount: unit price times quantity. The
// server recomputes this authoritatively on commit.
func (d Draft) Total() float64 {
	return d.Tour.Price * float64(d.Quantity)
}

func (d Draft) maxSlots() int {
	if d.Tour.SlotsAvailable == nil {
		return unboundedSlots
	}
	return *d.Tour.SlotsAvailable
}

// BookingAPI is the slice of the REST client the flow needs.
type BookingAPI interface {
	CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.Booking, error)
}

// Identity is the slice of the session manager the flow needs.
type Identity interface {
	CurrentUser() *models.User
	Token() string
}

// Flow drives a booking from quantity selection through two-phase
// confirmation. State machine:
//
//	Idle -> AwaitingAuth -> Confirming -> {Committed | Failed}
//
// AwaitingAuth is entered only when confirmation is opened without a
// session; the draft (including which tour) survives the login detour
// so the user never restarts the flow.
type Flow struct {
	api     BookingAPI
	session Identity

	mu    sync.Mutex
	state State
	draft *Draft
}

// NewFlow builds an idle flow.
func NewFlow(api BookingAPI, session Identity) *Flow {
	return &Flow{api: api, session: session}
}

// Begin creates a fresh draft for the tour with quantity 1.
func (f *Flow) Begin(tour models.TravelService) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.draft = &Draft{Tour: tour, Quantity: 1}
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns the current draft, or nil.
func (f *Flow) Draft() *Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft == nil {
		return nil
	}
	d := *f.draft
	return &d
}

// AdjustQuantity applies delta clamped to [1, slots available]. Pushing
// past the upper bound leaves the quantity unchanged and returns a
// CapacityError for the caller to surface; dropping below one is a
// silent no-op.
func (f *Flow) AdjustQuantity(delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft == nil {
		return 0, ErrNoDraft
	}

	next := f.draft.Quantity + delta
	max := f.draft.maxSlots()
	switch {
	case next > max:
		return f.draft.Quantity, &CapacityError{Slots: max}
	case next < 1:
		return f.draft.Quantity, nil
	default:
		f.draft.Quantity = next
		return next, nil
	}
}

// OpenConfirmation moves the flow toward commit. Without a session it
// parks in AwaitingAuth with the draft kept and returns ErrLoginRequired
// so the caller can present the login surface.
func (f *Flow) OpenConfirmation() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft == nil {
		return f.state, ErrNoDraft
	}
	if f.session.CurrentUser() == nil {
		if f.state == StateIdle {
			f.state = StateAwaitingAuth
		}
		return f.state, ErrLoginRequired
	}
	f.state = StateConfirming
	return f.state, nil
}

// ResumeAfterLogin re-enters Confirming once a login broadcast arrives
// while the flow is parked. The original draft is intact.
func (f *Flow) ResumeAfterLogin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAwaitingAuth || f.draft == nil || f.session.CurrentUser() == nil {
		return false
	}
	f.state = StateConfirming
	return true
}

// Confirm submits the draft under the authenticated session. Success
// commits and discards the draft; failure (for example sold out between
// confirmation and submit) keeps the draft so the user can retry or
// cancel explicitly.
func (f *Flow) Confirm(ctx context.Context) (*models.Booking, error) {
	f.mu.Lock()
	if f.state != StateConfirming || f.draft == nil {
		state := f.state
		f.mu.Unlock()
		return nil, fmt.Errorf("confirm from state %s: %w", state, ErrNoDraft)
	}
	req := models.BookingRequest{
		Service:       f.draft.Tour.ID,
		Quantity:      f.draft.Quantity,
		PaymentMethod: models.PaymentCash,
	}
	token := f.session.Token()
	f.mu.Unlock()

	booked, err := f.api.CreateBooking(ctx, token, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateFailed
		return nil, fmt.Errorf("confirm booking: %w", err)
	}
	f.state = StateCommitted
	f.draft = nil
	return booked, nil
}

// Retry re-arms a failed confirmation with the preserved draft.
func (f *Flow) Retry() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateFailed || f.draft == nil {
		return false
	}
	f.state = StateConfirming
	return true
}

// Cancel discards the draft and returns the flow to idle.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.draft = nil
}
