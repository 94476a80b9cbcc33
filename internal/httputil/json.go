package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/Nehal2048/book-hive/internal/logger"
	"github.com/Nehal2048/book-hive/internal/market"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", zap.Error(err))
	}
}

// WriteMarketError maps a market error kind to an HTTP status. Unclassified
// errors are logged and reported as 500.
func WriteMarketError(w http.ResponseWriter, err error) {
	switch market.KindOf(err) {
	case market.KindNotFound:
		WriteError(w, http.StatusNotFound, err.Error())
	case market.KindInvalidState:
		WriteError(w, http.StatusBadRequest, err.Error())
	case market.KindForbidden:
		WriteError(w, http.StatusForbidden, err.Error())
	case market.KindConflict:
		WriteError(w, http.StatusConflict, err.Error())
	case market.KindInternal:
		logger.Log.Error("internal inconsistency", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, err.Error())
	default:
		logger.Log.Error("unexpected error", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
