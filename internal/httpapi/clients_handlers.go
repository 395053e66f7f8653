package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"opsdesk-engine/internal/events"
	"opsdesk-engine/internal/smartimport"
	"opsdesk-engine/internal/store"
)

type ClientsHandler struct {
	DB     *sql.DB
	Hub    *events.Hub
	Commit func(ctx context.Context, cands []smartimport.Candidate, source string) (int, error)
}

func (h ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	clients, err := store.ListClients(r.Context(), h.DB, store.ListClientsOpts{
		Sort: q.Get("sort"), Limit: 2000,
	})
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if clients == nil {
		clients = []store.Client{}
	}
	writeJSON(w, clients)
}

type createClientReq struct {
	Name    string `json:"name"`
	Company string `json:"companyName"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (h ClientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}

	c := smartimport.Candidate{
		Name:    strings.TrimSpace(req.Name),
		Company: strings.TrimSpace(req.Company),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   smartimport.NormalizePhone(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
	if !smartimport.Valid(c) {
		WriteError(w, r, 400, "invalid_client", "a client needs a name or a company, and a well-formed email")
		return
	}

	if _, err := h.Commit(r.Context(), []smartimport.Candidate{c}, "manual"); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if req.Notes != "" {
		if id, err := store.FindMatch(r.Context(), h.DB, c); err == nil && id != 0 {
			_, _ = h.DB.ExecContext(r.Context(), `UPDATE clients SET notes = ? WHERE id = ?;`, req.Notes, id)
		}
	}

	writeJSON(w, map[string]any{"ok": true})
}

type deleteClientReq struct {
	ID int64 `json:"id"`
}

func (h ClientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteClientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID <= 0 {
		http.Error(w, "invalid id", 400)
		return
	}

	if err := store.DeleteClient(r.Context(), h.DB, req.ID); err != nil {
		if err == sql.ErrNoRows {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, "client_deleted", 1, map[string]any{"id": req.ID}))
	writeJSON(w, map[string]any{"ok": true, "id": req.ID})
}
