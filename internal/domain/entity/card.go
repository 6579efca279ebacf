package entity

import "time"

const (
	MaxPINFailures  = 3
	PINLockDuration = 15 * time.Minute
)

type Card struct {
	ID             int64
	AccountID      int64
	Number         string
	ExpiryYear     int
	ExpiryMonth    int
	PINHash        string
	PINFailCount   int
	PINLockedUntil *time.Time
	Type           CardType
	Status         CardStatus
	DeactivatedAt  *time.Time
	ReplacedBy     *int64
	CreatedAt      time.Time
}

func (c *Card) IsLocked(now time.Time) bool {
	return c.PINLockedUntil != nil && now.Before(*c.PINLockedUntil)
}

// RegisterPINFailure returns the new fail count and, once the limit is
// reached, the instant until which the PIN stays locked.
func (c *Card) RegisterPINFailure(now time.Time) (int, *time.Time) {
	count := c.PINFailCount + 1
	if count >= MaxPINFailures {
		until := now.Add(PINLockDuration)
		return count, &until
	}
	return count, nil
}
