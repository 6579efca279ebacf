package entity

import "time"

type Transaction struct {
	ID             int64
	AccountID      int64
	Type           TransactionType
	AmountDelta    int64
	RelatedAccount *int64
	CreatedAt      time.Time
	Status         TransactionStatus
	GroupID        *int64
	Note           string
}
