package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Nehal2048/book-hive/internal/httputil"
	"github.com/Nehal2048/book-hive/internal/market"
	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/Nehal2048/book-hive/internal/store"
)

type CreateTransactionBody struct {
	OrderID uint `json:"order_id"`
}

type UpdateTransactionBody struct {
	Status models.TransactionStatus `json:"status"`
}

func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := market.CreateTransactionFromOrder(r.Context(), store.DB, req.OrderID)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, txn)
}

func AllTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	txns, err := market.AllTransactions(r.Context(), store.DB)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, txns)
}

func GetTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "txID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	txn, err := market.GetTransaction(r.Context(), store.DB, id)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, txn)
}

func UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "txID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req UpdateTransactionBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := market.UpdateTransactionStatus(r.Context(), store.DB, id, req.Status)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, txn)
}

func DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "txID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := market.DeleteTransaction(r.Context(), store.DB, id); err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}
