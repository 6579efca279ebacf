package handler

import (
	"net/http"

	"github.com/DioGolang/GoBank/internal/application/usecase/customer"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Customer struct {
	useCase customer.UseCase
	log     logger.Logger
}

func NewCustomerHandler(uc customer.UseCase, log logger.Logger) *Customer {
	return &Customer{useCase: uc, log: log}
}

func (h *Customer) Routes(r chi.Router) {
	r.Post("/", h.Register)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Modify)
	r.Delete("/{id}", h.Remove)
	r.Put("/{id}/kyc", h.UpdateKYC)
}

func (h *Customer) Register(w http.ResponseWriter, r *http.Request) {
	var in customer.RegisterInput
	if !decode(w, r, &in, nil) {
		return
	}
	res, err := h.useCase.Register(r.Context(), in)
	writeResult(w, r, h.log, http.StatusCreated, "customer registered", res, err)
}

func (h *Customer) Modify(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in customer.ModifyInput
	if !decode(w, r, &in, func() { in.CustomerID = id }) {
		return
	}
	res, err := h.useCase.Modify(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "customer updated", res, err)
}

func (h *Customer) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in customer.RemoveInput
	if !decode(w, r, &in, func() { in.CustomerID = id }) {
		return
	}
	res, err := h.useCase.Remove(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "customer removed", res, err)
}

func (h *Customer) UpdateKYC(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in customer.KYCInput
	if !decode(w, r, &in, func() { in.CustomerID = id }) {
		return
	}
	res, err := h.useCase.UpdateKYCStatus(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "kyc status updated", res, err)
}

func (h *Customer) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.useCase.Get(r.Context(), id)
	writeResult(w, r, h.log, http.StatusOK, "", res, err)
}

func (h *Customer) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.useCase.List(r.Context())
	writeResult(w, r, h.log, http.StatusOK, "", res, err)
}
