package handler

import (
	"net/http"

	"github.com/DioGolang/GoBank/internal/application/usecase/card"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Card struct {
	useCase card.UseCase
	log     logger.Logger
}

func NewCardHandler(uc card.UseCase, log logger.Logger) *Card {
	return &Card{useCase: uc, log: log}
}

func (h *Card) Routes(r chi.Router) {
	r.Post("/", h.Issue)
	r.Put("/{id}/pin", h.SetPIN)
	r.Post("/{id}/pin/verify", h.VerifyPIN)
}

func (h *Card) Issue(w http.ResponseWriter, r *http.Request) {
	var in card.IssueInput
	if !decode(w, r, &in, nil) {
		return
	}
	res, err := h.useCase.Issue(r.Context(), in)
	writeResult(w, r, h.log, http.StatusCreated, "card issued", res, err)
}

func (h *Card) SetPIN(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in card.PINInput
	if !decode(w, r, &in, func() { in.CardID = id }) {
		return
	}
	res, err := h.useCase.SetPIN(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "pin updated", res, err)
}

func (h *Card) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in card.PINInput
	if !decode(w, r, &in, func() { in.CardID = id }) {
		return
	}
	res, err := h.useCase.VerifyPIN(r.Context(), in)
	writeResult(w, r, h.log, http.StatusOK, "", res, err)
}

func (h *Card) ListByAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.useCase.List(r.Context(), id)
	writeResult(w, r, h.log, http.StatusOK, "", res, err)
}
