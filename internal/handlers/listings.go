package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Nehal2048/book-hive/internal/httputil"
	"github.com/Nehal2048/book-hive/internal/market"
	appmw "github.com/Nehal2048/book-hive/internal/middleware"
	"github.com/Nehal2048/book-hive/internal/store"
)

func CreateListingHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := appmw.CallerID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in market.CreateListingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := market.CreateListing(r.Context(), store.DB, callerID, in)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, listing)
}

func ListListingsHandler(w http.ResponseWriter, r *http.Request) {
	listings, err := market.AvailableListings(r.Context(), store.DB)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

func GetListingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "listingID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	listing, err := market.GetListing(r.Context(), store.DB, id)
	if err != nil {
		httputil.WriteMarketError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listing)
}
