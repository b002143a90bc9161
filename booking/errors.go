// File: travelgo/booking/errors.go
package booking

import (
	"errors"
	"fmt"
)

// CapacityError signals an attempt to raise the quantity past the
// tour's remaining slots.
type CapacityError struct {
	Slots int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("only %d slots left", e.Slots)
}

// IsCapacity reports whether err is a capacity bound violation.
func IsCapacity(err error) bool {
	var capErr *CapacityError
	return errors.As(err, &capErr)
}

// ErrLoginRequired is returned when confirmation is opened without a session.
var ErrLoginRequired = errors.New("login required to book")

// ErrNoDraft is returned when an operation needs a draft that does not exist.
var ErrNoDraft = errors.New("no booking draft in progress")
