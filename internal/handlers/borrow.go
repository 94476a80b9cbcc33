package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Nehal2048/book-hive/internal/httputil"
	"github.com/Nehal2048/book-hive/internal/market"
	appmw "github.com/Nehal2048/book-hive/internal/middleware"
	"github.com/Nehal2048/book-hive/internal/store"
)

type BorrowRequestBody struct {
	TargetID uint `json:"target_id"`
}

func SendBorrowRequestHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := appmw.CallerID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req BorrowRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := market.SendBorrowRequest(r.Context(), store.DB, req.TargetID, callerID); err != nil {
		httputil.WriteMarketError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "borrow request sent successfully"})
}

func ReceivedBorrowRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(r, "userID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	requests, err := market.ReceivedBorrowRequests(r.Context(), store.DB, userID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, requests)
}

func SentBorrowRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(r, "userID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	listings, err := market.SentBorrowRequests(r.Context(), store.DB, userID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

func AcceptBorrowRequestHandler(w http.ResponseWriter, r *http.Request) {
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

	borrowID, err := market.AcceptBorrowRequest(r.Context(), store.DB, listingID, callerID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "borrow request accepted",
		"borrow_id": borrowID,
	})
}

func RejectBorrowRequestHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := market.RejectBorrowRequest(r.Context(), store.DB, listingID, callerID); err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "borrow request rejected"})
}

func CancelBorrowRequestHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := market.CancelBorrowRequest(r.Context(), store.DB, listingID, callerID); err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "borrow request cancelled"})
}

func ReturnBorrowHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := appmw.CallerID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	borrowID, ok := uintParam(r, "borrowID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid borrow id")
		return
	}

	if err := market.ReturnBorrow(r.Context(), store.DB, borrowID, callerID); err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "book returned successfully"})
}

func ActiveBorrowsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(r, "userID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	result, err := market.ActiveBorrows(r.Context(), store.DB, userID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func BorrowHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(r, "userID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	records, err := market.BorrowHistory(r.Context(), store.DB, userID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}
