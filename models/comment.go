// File: travelgo/models/comment.go
package models

import "time"

// Comment is a rating with text left on a service.
type Comment struct {
	ID          int64     `json:"id"`
	User        User      `json:"user"`
	Rate        int       `json:"rate"`
	Comment     string    `json:"comment"`
	CreatedDate time.Time `json:"created_date"`
}
