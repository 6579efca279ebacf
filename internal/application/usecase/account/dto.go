package account

import (
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

// Input

// OpenInput identifies the owner by email or phone; email wins when both
// are given.
type OpenInput struct {
	Email          string             `json:"email" validate:"required_without=Phone,omitempty,email"`
	Phone          string             `json:"phone" validate:"required_without=Email"`
	Type           entity.AccountType `json:"account_type" validate:"min=0,max=1"`
	Currency       entity.Currency    `json:"currency" validate:"required,len=3"`
	InitialDeposit int64              `json:"initial_deposit" validate:"min=0"`
}

// CloseInput pays the remaining balance out in cash (withdrawal) or to
// another account (transfer).
type CloseInput struct {
	AccountID             int64                  `json:"account_id" validate:"required,gt=0"`
	Payout                entity.TransactionType `json:"payout" validate:"oneof=1 2"`
	PayoutTargetAccountID *int64                 `json:"payout_target_account_id,omitempty" validate:"required_if=Payout 2"`
}

// ModifyInput applies the amount of TransactionID (when set) to the balance
// and then moves currency, status and type to the given values.
type ModifyInput struct {
	AccountID     int64                `json:"account_id" validate:"required,gt=0"`
	TransactionID int64                `json:"transaction_id" validate:"min=0"`
	Currency      entity.Currency      `json:"currency" validate:"required,len=3"`
	Status        entity.AccountStatus `json:"status" validate:"min=0,max=2"`
	Type          entity.AccountType   `json:"account_type" validate:"min=0,max=1"`
}

type SetCurrencyInput struct {
	AccountID int64           `json:"account_id" validate:"required,gt=0"`
	Currency  entity.Currency `json:"currency" validate:"required,len=3"`
}

type MovementInput struct {
	AccountID int64  `json:"account_id" validate:"required,gt=0"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Note      string `json:"note" validate:"max=200"`
}

type TransferInput struct {
	FromAccountID int64           `json:"from_account_id" validate:"required,gt=0"`
	ToAccountID   int64           `json:"to_account_id" validate:"required,gt=0,nefield=FromAccountID"`
	Amount        int64           `json:"amount" validate:"required,gt=0"`
	Currency      entity.Currency `json:"currency" validate:"omitempty,len=3"`
	Memo          string          `json:"memo" validate:"max=200"`
}

// Output

type Output struct {
	ID         int64                `json:"id"`
	CustomerID int64                `json:"customer_id"`
	Type       entity.AccountType   `json:"account_type"`
	Balance    int64                `json:"balance"`
	Currency   entity.Currency      `json:"currency"`
	Status     entity.AccountStatus `json:"status"`
	OpenDate   *time.Time           `json:"open_date,omitempty"`
	CloseDate  *time.Time           `json:"close_date,omitempty"`
	IsClosed   bool                 `json:"is_closed"`
	UpdatedAt  *time.Time           `json:"updated_at,omitempty"`
}

type CloseOutput struct {
	AccountID           int64  `json:"account_id"`
	PaidOut             int64  `json:"paid_out"`
	DebitTransactionID  int64  `json:"debit_transaction_id"`
	CreditTransactionID *int64 `json:"credit_transaction_id,omitempty"`
	CardsDeactivated    int64  `json:"cards_deactivated"`
}

func (o CloseOutput) AuditTargetID() int64 { return o.AccountID }

type MovementOutput struct {
	AccountID     int64 `json:"account_id"`
	TransactionID int64 `json:"transaction_id"`
	Balance       int64 `json:"balance"`
}

func (o MovementOutput) AuditTargetID() int64 { return o.AccountID }

type TransferOutput struct {
	DebitTransactionID  int64 `json:"debit_transaction_id"`
	CreditTransactionID int64 `json:"credit_transaction_id"`
	FromBalance         int64 `json:"from_balance"`
	ToBalance           int64 `json:"to_balance"`
}

type TransactionOutput struct {
	ID             int64                    `json:"id"`
	AccountID      int64                    `json:"account_id"`
	Type           entity.TransactionType   `json:"transaction_type"`
	AmountDelta    int64                    `json:"amount_delta"`
	RelatedAccount *int64                   `json:"related_account_id,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	Status         entity.TransactionStatus `json:"status"`
	GroupID        *int64                   `json:"group_id,omitempty"`
	Note           string                   `json:"note"`
}

func toOutput(a *entity.Account) Output {
	return Output{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Type:       a.Type,
		Balance:    a.Balance,
		Currency:   entity.ParseCurrency(string(a.Currency)),
		Status:     a.Status,
		OpenDate:   a.OpenDate,
		CloseDate:  a.CloseDate,
		IsClosed:   a.IsClosed,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toTransactionOutput(t *entity.Transaction) TransactionOutput {
	return TransactionOutput{
		ID:             t.ID,
		AccountID:      t.AccountID,
		Type:           t.Type,
		AmountDelta:    t.AmountDelta,
		RelatedAccount: t.RelatedAccount,
		CreatedAt:      t.CreatedAt,
		Status:         t.Status,
		GroupID:        t.GroupID,
		Note:           t.Note,
	}
}
