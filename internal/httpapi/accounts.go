package httpapi

import (
	"encoding/json"
	"net/http"
	"sort"

	chi "github.com/go-chi/chi/v5"

	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
)

// postAccount handles POST /accounts.
func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	req, _ := r.Context().Value(ctxKeyPostAccount).(postAccountRequest)
	created, err := s.chartSvc.Create(r.Context(), ledger.Account{Code: req.Code, Name: req.Name, Type: req.Type})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toAccountResponse(created))
}

// listAccounts handles GET /accounts, sorted by code the way the chart table
// renders.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.chartSvc.List(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to load accounts", "")
		return
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, out)
}

// nextCode handles GET /accounts/next-code?type=, the auto-generated code
// for a new account of the given type.
func (s *Server) nextCode(w http.ResponseWriter, r *http.Request) {
	typ := ledger.AccountType(r.URL.Query().Get("type"))
	if typ == "" {
		badRequest(w, "type is required")
		return
	}
	code, err := s.chartSvc.NextCode(r.Context(), typ)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, nextCodeResponse{Type: typ, Code: code})
}

// updateAccount handles PATCH /accounts/{code}. Name and type are editable;
// the code is fixed for the life of the account.
func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req updateAccountRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	updated, err := s.chartSvc.Update(r.Context(), code, req.Name, req.Type)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(updated))
}

// deleteAccount handles DELETE /accounts/{code}. Deletion is blocked with
// 409 account_in_use while any journal entry references the account.
func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := s.chartSvc.Delete(r.Context(), code); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
