package handler

import (
	"net/http"

	"github.com/DioGolang/GoBank/internal/application/usecase/account"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Account struct {
	useCase account.UseCase
	log     logger.Logger
}

func NewAccountHandler(uc account.UseCase, log logger.Logger) *Account {
	return &Account{useCase: uc, log: log}
}

func (h *Account) Routes(r chi.Router) {
	r.Post("/", h.Open)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Modify)
	r.Get("/{id}/balance", h.Balance)
	r.Get("/{id}/transactions", h.Transactions)
	r.Put("/{id}/currency", h.SetCurrency)
	r.Post("/{id}/close", h.Close)
	r.Post("/{id}/deposit", h.Deposit)
	r.Post("/{id}/withdraw", h.Withdraw)
}

func (h *Account) Open(w http.ResponseWriter, r *http.Request) {
	var in account.OpenInput
	if !decode(w, r, &in, nil) {
		return
	}
	res, err := h.useCase.Open(r.Context(), in)
	writeResult(w, r, h.log, http.StatusCreated, "account opened", res, err)
}

func (h *Account) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in account.CloseInput
	if !decode(w, r, &in, func() { in.AccountID = id }) {
		return
	}
	res, err := h.useCase.Close(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "account closed", res, err)
}

func (h *Account) Modify(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in account.ModifyInput
	if !decode(w, r, &in, func() { in.AccountID = id }) {
		return
	}
	res, err := h.useCase.Modify(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "account updated", res, err)
}

func (h *Account) SetCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in account.SetCurrencyInput
	if !decode(w, r, &in, func() { in.AccountID = id }) {
		return
	}
	res, err := h.useCase.SetCurrency(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "currency updated", res, err)
}

func (h *Account) Deposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in account.MovementInput
	if !decode(w, r, &in, func() { in.AccountID = id }) {
		return
	}
	res, err := h.useCase.Deposit(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "deposit completed", res, err)
}

func (h *Account) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in account.MovementInput
	if !decode(w, r, &in, func() { in.AccountID = id }) {
		return
	}
	res, err := h.useCase.Withdraw(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "withdrawal completed", res, err)
}

func (h *Account) Transfer(w http.ResponseWriter, r *http.Request) {
	var in account.TransferInput
	if !decode(w, r, &in, nil) {
		return
	}
	res, err := h.useCase.Transfer(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "transfer completed", res, err)
}

func (h *Account) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.useCase.Get(r.Context(), id)
	writeResult(w, r, h.log, http.StatusOK, "", res, err)
}

func (h *Account) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.useCase.List(r.Context(), id)
	writeResult(w, r, h.log, http.StatusOK, "", res, err)
}

func (h *Account) Balance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.useCase.GetBalance(r.Context(), id)
	writeResult(w, r, h.log, http.StatusOK, "", res, err)
}

func (h *Account) Transactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.useCase.ListTransactions(r.Context(), id)
	writeResult(w, r, h.log, http.StatusOK, "", res, err)
}
