package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// postEntry handles POST /entries.
func (s *Server) postEntry(w http.ResponseWriter, r *http.Request) {
	in, _ := r.Context().Value(ctxKeyPostEntry).(postEntryInput)
	saved, err := s.journalSvc.Record(r.Context(), in.date, in.description, in.debitAccount, in.creditAccount, in.amount)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toEntryResponse(saved))
}

// listEntries handles GET /entries: date descending, same-date ties most
// recently recorded first.
func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.journalSvc.List(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to load entries", "")
		return
	}
	resp := listEntriesResponse{Items: make([]entryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Items = append(resp.Items, toEntryResponse(e))
	}
	toJSON(w, http.StatusOK, resp)
}

// deleteEntry handles DELETE /entries/{id}. Nothing downstream blocks entry
// deletion.
func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid entry id")
		return
	}
	if err := s.journalSvc.Delete(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
