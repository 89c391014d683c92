package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"pulse/internal/core"
	"pulse/internal/ledger"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	case http.MethodDelete:
		s.handleDeleteTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	transactions, err := s.service.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "List transactions error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	writeJSON(w, http.StatusOK, core.ApplyFilters(transactions, filters, s.now()))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var draft core.TransactionDraft

	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft.Description = sanitizeInput(draft.Description)
	draft.Category = strings.TrimSpace(draft.Category)
	draft.Account = strings.TrimSpace(draft.Account)
	draft.Project = sanitizeInput(draft.Project)
	draft.Notes = sanitizeInput(draft.Notes)

	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	// The form vocabulary is closed; free-form categories never enter the
	// ledger through the API.
	if !ledger.KnownCategory(draft.Type, draft.Category) {
		writeError(w, http.StatusUnprocessableEntity, "unknown category: "+draft.Category)
		return
	}
	if !ledger.KnownAccount(draft.Account) {
		writeError(w, http.StatusUnprocessableEntity, "unknown account: "+draft.Account)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	created, err := s.service.Create(ctx, draft)
	if err != nil {
		slog.ErrorContext(ctx, "Create transaction error", "error", err, "category", draft.Category)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	s.metricsCache.Purge()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id parameter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := s.service.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Delete transaction error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	s.metricsCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filters, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := metricsCacheKey(filters)
	if metrics, found := s.metricsCache.Get(key); found {
		slog.DebugContext(r.Context(), "Metrics cache hit", "key", key)
		writeJSON(w, http.StatusOK, metrics)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	transactions, err := s.service.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Load ledger for metrics error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	now := s.now()
	metrics := core.GenerateMetrics(core.ApplyFilters(transactions, filters, now), now)
	s.metricsCache.Set(key, metrics)

	writeJSON(w, http.StatusOK, metrics)
}

type vocabularyResponse struct {
	ExpenseCategories []string `json:"expenseCategories"`
	IncomeCategories  []string `json:"incomeCategories"`
	Accounts          []string `json:"accounts"`
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, vocabularyResponse{
		ExpenseCategories: ledger.ExpenseCategories,
		IncomeCategories:  ledger.IncomeCategories,
		Accounts:          ledger.AccountTypes,
	})
}
