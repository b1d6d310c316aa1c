package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/wizallet/wizallet-be/internal/auth"
	"github.com/wizallet/wizallet-be/internal/models"
	"github.com/wizallet/wizallet-be/internal/services"
)

// TransactionHandler handles HTTP requests for the transaction ledger.
type TransactionHandler struct {
	service services.TransactionServiceProvider
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(service services.TransactionServiceProvider) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// CreateTransactionPayload defines the structure for create requests. Any
// owner field in the body is simply not decoded; the owner is always the
// authenticated caller.
type CreateTransactionPayload struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Note   string  `json:"note"`
}

// GetAll handles listing the caller's transactions, newest first.
func (h *TransactionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve identity from context")
		respondError(w, models.NewInternalError())
		return
	}

	transactions, err := h.service.ListTransactions(identity.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", identity.ID).Msg("Failed to list transactions")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// Get handles retrieving a single transaction owned by the caller.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, models.NewInternalError())
		return
	}

	id, err := transactionID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	tx, err := h.service.GetTransaction(id, identity.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

// Create handles adding a new ledger entry for the caller.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, models.NewInternalError())
		return
	}

	var payload CreateTransactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, models.NewValidationError("invalid request body"))
		return
	}

	tx, err := h.service.CreateTransaction(identity.ID, payload.Amount, payload.Type, payload.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

// Update handles a partial update of one of the caller's transactions.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, models.NewInternalError())
		return
	}

	id, err := transactionID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.TransactionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, models.NewValidationError("invalid request body"))
		return
	}

	tx, err := h.service.UpdateTransaction(id, identity.ID, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

// Delete handles permanent removal of one of the caller's transactions.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, models.NewInternalError())
		return
	}

	id, err := transactionID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteTransaction(id, identity.ID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles the derived balance computation for the caller's ledger.
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, models.NewInternalError())
		return
	}

	summary, err := h.service.Summarize(identity.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", identity.ID).Msg("Failed to compute summary")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// transactionID parses the {id} route parameter. An unparseable id cannot name
// an existing row, so it gets the same response as a foreign or missing one.
func transactionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, models.NewForbiddenError()
	}
	return id, nil
}
