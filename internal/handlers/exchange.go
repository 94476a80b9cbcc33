package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Nehal2048/book-hive/internal/httputil"
	"github.com/Nehal2048/book-hive/internal/market"
	appmw "github.com/Nehal2048/book-hive/internal/middleware"
	"github.com/Nehal2048/book-hive/internal/store"
)

type ExchangeRequestBody struct {
	TargetID uint `json:"target_id"`
	YourID   uint `json:"your_id"`
}

func SendExchangeRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req ExchangeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := market.SendExchangeRequest(r.Context(), store.DB, req.TargetID, req.YourID); err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "exchange request sent successfully"})
}

func ReceivedExchangeRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(r, "userID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	requests, err := market.ReceivedExchangeRequests(r.Context(), store.DB, userID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, requests)
}

func SentExchangeRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(r, "userID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	requests, err := market.SentExchangeRequests(r.Context(), store.DB, userID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, requests)
}

func AcceptExchangeRequestHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := appmw.CallerID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	listingID, ok := uintParam(r, "listingID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	if err := market.AcceptExchangeRequest(r.Context(), store.DB, listingID, callerID); err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "exchange completed successfully"})
}

func RejectExchangeRequestHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := appmw.CallerID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	listingID, ok := uintParam(r, "listingID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	if err := market.RejectExchangeRequest(r.Context(), store.DB, listingID, callerID); err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "exchange request rejected"})
}

func CancelExchangeRequestHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := appmw.CallerID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	listingID, ok := uintParam(r, "listingID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	if err := market.CancelExchangeRequest(r.Context(), store.DB, listingID, callerID); err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "exchange request cancelled"})
}

func AllExchangesHandler(w http.ResponseWriter, r *http.Request) {
	records, err := market.AllExchanges(r.Context(), store.DB)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

func UserExchangesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(r, "userID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	records, err := market.UserExchanges(r.Context(), store.DB, userID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}
