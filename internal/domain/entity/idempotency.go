package entity

import "time"

type IdempotencyStatus int

const (
	IdempotencyNone IdempotencyStatus = iota
	IdempotencyInProgress
	IdempotencyCompleted
)

func (s IdempotencyStatus) String() string {
	switch s {
	case IdempotencyInProgress:
		return "in_progress"
	case IdempotencyCompleted:
		return "completed"
	default:
		return "none"
	}
}

func ParseIdempotencyStatus(s string) IdempotencyStatus {
	switch s {
	case "in_progress":
		return IdempotencyInProgress
	case "completed":
		return IdempotencyCompleted
	default:
		return IdempotencyNone
	}
}

type IdempotencyRecord struct {
	Status    IdempotencyStatus
	ExpiresAt time.Time
}

// Expired treats the record as absent once its deadline is reached.
func (r IdempotencyRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
