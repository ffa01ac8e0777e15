package services

import (
	"math"
	"time"
)

// Status is a client's rebooking state, derived from their next due
// date. Never stored; always recomputed against a supplied clock.
type Status string

const (
	StatusOverdue Status = "Overdue"
	StatusDueSoon Status = "Due Soon"
	StatusActive  Status = "Active"
)

// DueSoonWindowDays is how far ahead a due date still counts as "due
// soon". The boundary day itself is included.
const DueSoonWindowDays = 7

// DaysUntil returns the signed day count from now to nextDueDate,
// rounded up. Negative when the due date has passed, zero when it is
// due within the current day.
func DaysUntil(nextDueDate, now time.Time) int {
	return int(math.Ceil(nextDueDate.Sub(now).Hours() / 24))
}

// Classify maps a due date and the current instant to a status plus
// the signed day count. Pure and deterministic: tests inject now.
func Classify(nextDueDate, now time.Time) (Status, int) {
	days := DaysUntil(nextDueDate, now)
	switch {
	case days < 0:
		return StatusOverdue, days
	case days <= DueSoonWindowDays:
		return StatusDueSoon, days
	default:
		return StatusActive, days
	}
}
