package httpinterface

import (
	"encoding/json"
	"net/http"

	"github.com/escrow-network/escrowd/internal/core/application"
)

type feeHandler struct {
	feeSvc application.FeeService
}

func newFeeHandler(feeSvc application.FeeService) *feeHandler {
	return &feeHandler{feeSvc: feeSvc}
}

type setFlatFeeRequest struct {
	Caller string `json:"caller"`
	Amount uint64 `json:"amount"`
}

func (h *feeHandler) setFlatFee(w http.ResponseWriter, r *http.Request) {
	var req setFlatFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.feeSvc.SetFlatFee(r.Context(), req.Caller, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type setFeeRecipientRequest struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
}

func (h *feeHandler) setFeeRecipient(w http.ResponseWriter, r *http.Request) {
	var req setFeeRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.feeSvc.SetFeeRecipient(r.Context(), req.Caller, req.Recipient); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type withdrawFeesRequest struct {
	Caller string `json:"caller"`
	Amount uint64 `json:"amount"`
}

func (h *feeHandler) withdrawFees(w http.ResponseWriter, r *http.Request) {
	var req withdrawFeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.feeSvc.WithdrawFees(r.Context(), req.Caller, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *feeHandler) getFeeInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.feeSvc.GetFeeInfo(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
