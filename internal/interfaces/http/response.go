package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/escrow-network/escrowd/internal/core/application"
	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// ErrMismatchedArrays is returned when the parallel arrays of a batch
// deposit do not agree in length.
var ErrMismatchedArrays = errors.New("batch arrays must have the same length")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest
	case isAuthorizationError(err):
		return http.StatusForbidden
	case isStateError(err):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTradeNotFound),
		errors.Is(err, domain.ErrAssetNotCommitted):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrUnknownAssetKind):
		return http.StatusBadRequest
	default:
		// adapter refusals and storage failures
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidParticipantCount,
		domain.ErrDuplicateParticipant,
		domain.ErrTooManyAssets,
		domain.ErrEmptyManifest,
		domain.ErrUnknownManifestParty,
		domain.ErrInvalidAssetQuantity,
		domain.ErrInvalidAssetReference,
		domain.ErrWrongFeePayment,
		application.ErrBatchTooLarge,
		application.ErrEmptyBatch,
		application.ErrTooManyTrades,
		ErrMismatchedArrays,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isAuthorizationError(err error) bool {
	for _, target := range []error{
		domain.ErrNotParticipant,
		application.ErrNotAdministrator,
		application.ErrNotFeeRecipient,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isStateError(err error) bool {
	for _, target := range []error{
		domain.ErrTradeNotActive,
		domain.ErrTradeExpired,
		domain.ErrTradeNotExpired,
		domain.ErrAssetAlreadyDeposited,
		domain.ErrAlreadyConfirmed,
		domain.ErrAssetsNotDeposited,
		domain.ErrAlreadyReclaimed,
		domain.ErrNothingToReclaim,
		domain.ErrFeeNotPaid,
		domain.ErrInsufficientFees,
		application.ErrReentrantCall,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
