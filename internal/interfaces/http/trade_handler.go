package httpinterface

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/escrow-network/escrowd/internal/core/application"
	"github.com/escrow-network/escrowd/internal/core/domain"
)

type tradeHandler struct {
	tradeSvc application.TradeService
}

func newTradeHandler(tradeSvc application.TradeService) *tradeHandler {
	return &tradeHandler{tradeSvc: tradeSvc}
}

type manifestEntryRequest struct {
	Kind        string `json:"kind"`
	Reference   string `json:"reference"`
	UnitId      uint64 `json:"unit_id"`
	Quantity    uint64 `json:"quantity"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type createTradeRequest struct {
	Participants    []string               `json:"participants"`
	Manifest        []manifestEntryRequest `json:"manifest"`
	DurationSeconds int64                  `json:"duration_seconds"`
}

type createTradeResponse struct {
	TradeId uint64 `json:"trade_id"`
}

func (h *tradeHandler) createTrade(w http.ResponseWriter, r *http.Request) {
	var req createTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	manifest := make([]domain.Asset, 0, len(req.Manifest))
	for _, entry := range req.Manifest {
		kind, ok := domain.AssetKindFromString(entry.Kind)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "unknown asset kind " + entry.Kind,
			})
			return
		}
		manifest = append(manifest, domain.Asset{
			Kind:        kind,
			Reference:   entry.Reference,
			UnitId:      entry.UnitId,
			Quantity:    entry.Quantity,
			Source:      entry.Source,
			Destination: entry.Destination,
		})
	}

	tradeId, err := h.tradeSvc.CreateTrade(
		r.Context(), req.Participants, manifest,
		time.Duration(req.DurationSeconds)*time.Second,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createTradeResponse{TradeId: tradeId})
}

type depositRequest struct {
	Caller     string `json:"caller"`
	Kind       string `json:"kind"`
	Reference  string `json:"reference"`
	UnitId     uint64 `json:"unit_id"`
	Quantity   uint64 `json:"quantity"`
	Recipient  string `json:"recipient,omitempty"`
	FeePayment uint64 `json:"fee_payment"`
}

func (h *tradeHandler) depositAsset(w http.ResponseWriter, r *http.Request) {
	tradeId, ok := tradeIdParam(w, r)
	if !ok {
		return
	}
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	kind, ok := domain.AssetKindFromString(req.Kind)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "unknown asset kind " + req.Kind,
		})
		return
	}

	err := h.tradeSvc.DepositAsset(r.Context(), tradeId, domain.AssetDescriptor{
		Kind:      kind,
		Reference: req.Reference,
		UnitId:    req.UnitId,
		Quantity:  req.Quantity,
		Recipient: req.Recipient,
	}, req.Caller, req.FeePayment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// batchDepositRequest carries the items as parallel arrays which must agree
// in length.
type batchDepositRequest struct {
	Caller     string   `json:"caller"`
	Kinds      []string `json:"kinds"`
	References []string `json:"references"`
	UnitIds    []uint64 `json:"unit_ids"`
	Quantities []uint64 `json:"quantities"`
	FeePayment uint64   `json:"fee_payment"`
}

func (h *tradeHandler) batchDepositAssets(w http.ResponseWriter, r *http.Request) {
	tradeId, ok := tradeIdParam(w, r)
	if !ok {
		return
	}
	var req batchDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(req.References) != len(req.Kinds) ||
		len(req.References) != len(req.UnitIds) ||
		len(req.References) != len(req.Quantities) {
		writeError(w, ErrMismatchedArrays)
		return
	}

	descriptors := make([]domain.AssetDescriptor, 0, len(req.References))
	for i := range req.References {
		kind, ok := domain.AssetKindFromString(req.Kinds[i])
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "unknown asset kind " + req.Kinds[i],
			})
			return
		}
		descriptors = append(descriptors, domain.AssetDescriptor{
			Kind:      kind,
			Reference: req.References[i],
			UnitId:    req.UnitIds[i],
			Quantity:  req.Quantities[i],
		})
	}

	if err := h.tradeSvc.BatchDepositAssets(
		r.Context(), tradeId, descriptors, req.Caller, req.FeePayment,
	); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type callerRequest struct {
	Caller string `json:"caller"`
}

func (h *tradeHandler) confirmTrade(w http.ResponseWriter, r *http.Request) {
	h.callerOp(w, r, h.tradeSvc.ConfirmTrade)
}

func (h *tradeHandler) cancelTrade(w http.ResponseWriter, r *http.Request) {
	h.callerOp(w, r, h.tradeSvc.CancelTrade)
}

func (h *tradeHandler) reclaimAssets(w http.ResponseWriter, r *http.Request) {
	h.callerOp(w, r, h.tradeSvc.ReclaimAssets)
}

func (h *tradeHandler) getTradeStatus(w http.ResponseWriter, r *http.Request) {
	tradeId, ok := tradeIdParam(w, r)
	if !ok {
		return
	}
	status, err := h.tradeSvc.GetTradeStatus(r.Context(), tradeId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *tradeHandler) getTradeInfo(w http.ResponseWriter, r *http.Request) {
	tradeId, ok := tradeIdParam(w, r)
	if !ok {
		return
	}
	info, err := h.tradeSvc.GetTradeInfo(r.Context(), tradeId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *tradeHandler) getMultipleTradeStatuses(w http.ResponseWriter, r *http.Request) {
	rawIds := strings.Split(r.URL.Query().Get("ids"), ",")
	tradeIds := make([]uint64, 0, len(rawIds))
	for _, raw := range rawIds {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "invalid trade id " + raw,
			})
			return
		}
		tradeIds = append(tradeIds, id)
	}

	statuses, err := h.tradeSvc.GetMultipleTradeStatuses(r.Context(), tradeIds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (h *tradeHandler) callerOp(
	w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, tradeId uint64, caller string) error,
) {
	tradeId, ok := tradeIdParam(w, r)
	if !ok {
		return
	}
	var req callerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := op(r.Context(), tradeId, req.Caller); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func tradeIdParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	tradeId, err := strconv.ParseUint(chi.URLParam(r, "tradeId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid trade id"})
		return 0, false
	}
	return tradeId, true
}
