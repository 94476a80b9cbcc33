package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Nehal2048/book-hive/internal/httputil"
	"github.com/Nehal2048/book-hive/internal/market"
	appmw "github.com/Nehal2048/book-hive/internal/middleware"
	"github.com/Nehal2048/book-hive/internal/store"
)

type CreateOrderBody struct {
	ListingID uint `json:"listing_id"`
}

func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := appmw.CallerID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateOrderBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderID, err := market.CreateOrder(r.Context(), store.DB, req.ListingID, callerID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":  "order created",
		"order_id": orderID,
	})
}

func GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uintParam(r, "orderID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	view, err := market.GetOrder(r.Context(), store.DB, orderID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func OrdersByUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(r, "userID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	views, err := market.OrdersByBuyer(r.Context(), store.DB, userID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func PayOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uintParam(r, "orderID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	result, err := market.Pay(r.Context(), store.DB, orderID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}

	// A declined payment is a business outcome, not an error: the order is
	// cancelled and the caller gets a plain message.
	if result.Outcome == market.PaymentDeclined {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "you do not have sufficient amount to buy this product",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message":        "payment successful, order confirmed",
		"transaction_id": result.TransactionID,
	})
}
