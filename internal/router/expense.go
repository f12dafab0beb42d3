package router

import (
	"encoding/json"
	"net/http"
)

func (rt *router) createExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rt.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	domainExpense, err := req.toDomain()
	if err != nil {
		rt.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := rt.service.CreateExpense(r.Context(), domainExpense)
	if err != nil {
		rt.logger.Error("Failed to create expense", "error", err)
		rt.writeError(w, http.StatusInternalServerError, "failed to create expense")
		return
	}

	rt.writeJSON(w, http.StatusCreated, createExpenseResponse{Data: toResponse(created)})
}

func (rt *router) expensesHandler(w http.ResponseWriter, r *http.Request) {
	expenses, err := rt.service.ListExpenses(r.Context())
	if err != nil {
		rt.logger.Error("Failed to list expenses", "error", err)
		rt.writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	responses := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = toResponse(e)
	}

	rt.writeJSON(w, http.StatusOK, listExpensesResponse{Data: responses})
}

func (rt *router) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := rt.storage.Ping(r.Context()); err != nil {
		rt.logger.Error("Health check failed", "error", err)
		rt.writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	rt.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
