package entity

import "time"

type Account struct {
	ID         int64
	CustomerID int64
	Type       AccountType
	Balance    int64
	Currency   Currency
	Status     AccountStatus
	OpenDate   *time.Time
	CloseDate  *time.Time
	IsClosed   bool
	UpdatedAt  *time.Time
}

func (a *Account) IsActive() bool {
	return a.Status == AccountActive && !a.IsClosed
}

// CanDebit reports whether amount can leave the account without overdrawing it.
func (a *Account) CanDebit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	return nil
}

func (a *Account) CanCredit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	return nil
}
