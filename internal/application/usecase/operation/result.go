package operation

import (
	"errors"
	"fmt"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
)

type Code int

const (
	CodeNone              Code = 0
	CodeFailed            Code = -1
	CodeNotFound          Code = -2
	CodeDuplicateRequest  Code = -3
	CodeCommitFailed      Code = -4
	CodeCustomerNotFound  Code = -5
	CodeInsufficientFunds Code = -6
	CodeInvalidInput      Code = -7
	CodeInvalidState      Code = -8
	CodePINLocked         Code = -9
	CodeConflict          Code = -10
)

// Failure is the outcome of an operation that stopped early. It implements
// error so callers can log or wrap it, but it is never returned as one.
type Failure struct {
	Reason string
	Code   Code
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Reason, f.Err)
	}
	return f.Reason
}

func (f *Failure) Unwrap() error { return f.Err }

// Result is either Ok(value) or Failed.
type Result[T any] struct {
	value   T
	failure *Failure
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Failed[T any](code Code, reason string, err error) Result[T] {
	return Result[T]{failure: &Failure{Reason: reason, Code: code, Err: err}}
}

// Fail classifies err into a Failure with the matching code.
func Fail[T any](reason string, err error) Result[T] {
	return Failed[T](CodeOf(err), reason, err)
}

// Propagate carries a failure over to a result of another type.
func Propagate[U, T any](r Result[T]) Result[U] {
	return Result[U]{failure: r.failure}
}

func (r Result[T]) IsOk() bool { return r.failure == nil }

func (r Result[T]) Value() T { return r.value }

func (r Result[T]) Failure() *Failure { return r.failure }

func (r Result[T]) Unwrap() (T, error) {
	if r.failure != nil {
		var zero T
		return zero, r.failure
	}
	return r.value, nil
}

func CodeOf(err error) Code {
	var f *Failure
	switch {
	case err == nil:
		return CodeNone
	case errors.As(err, &f):
		return f.Code
	case errors.Is(err, outbound.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, outbound.ErrDuplicate):
		return CodeConflict
	case errors.Is(err, entity.ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, entity.ErrPINLocked):
		return CodePINLocked
	case errors.Is(err, entity.ErrAccountNotActive), errors.Is(err, entity.ErrCardNotActive):
		return CodeInvalidState
	case errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrCurrencyNotSupported),
		errors.Is(err, entity.ErrSameAccount),
		errors.Is(err, entity.ErrIDIsRequired):
		return CodeInvalidInput
	default:
		return CodeFailed
	}
}
