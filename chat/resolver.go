// File: travelgo/chat/resolver.go
package chat

import "fmt"

// RoomID derives the identifier of a two-party conversation. The ids
// are joined in ascending order, so both participants compute the same
// room independently with no coordination round-trip, and distinct
// pairs never collide.
func RoomID(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}
