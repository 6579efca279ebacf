package card

import (
	"strings"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

// Input

type IssueInput struct {
	AccountID int64           `json:"account_id" validate:"required,gt=0"`
	Type      entity.CardType `json:"card_type" validate:"min=0,max=1"`
	PIN       string          `json:"pin" validate:"required,numeric,min=4,max=6"`
}

type PINInput struct {
	CardID int64  `json:"card_id" validate:"required,gt=0"`
	PIN    string `json:"pin" validate:"required,numeric,min=4,max=6"`
}

// Output

type Output struct {
	ID          int64             `json:"id"`
	AccountID   int64             `json:"account_id"`
	Number      string            `json:"number"`
	ExpiryYear  int               `json:"expiry_year"`
	ExpiryMonth int               `json:"expiry_month"`
	Type        entity.CardType   `json:"card_type"`
	Status      entity.CardStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (o Output) AuditTargetID() int64 { return o.ID }

type VerifyOutput struct {
	CardID      int64      `json:"card_id"`
	Verified    bool       `json:"verified"`
	FailCount   int        `json:"fail_count"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

func (o VerifyOutput) AuditTargetID() int64 { return o.CardID }

func toOutput(c *entity.Card) Output {
	return Output{
		ID:          c.ID,
		AccountID:   c.AccountID,
		Number:      mask(c.Number),
		ExpiryYear:  c.ExpiryYear,
		ExpiryMonth: c.ExpiryMonth,
		Type:        c.Type,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
}

// mask keeps the last four digits.
func mask(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
