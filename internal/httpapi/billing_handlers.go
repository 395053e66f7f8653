package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"opsdesk-engine/internal/events"
	"opsdesk-engine/internal/store"
)

type BillingHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h BillingHandler) ListPricebook(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") == ""

	items, err := store.ListPriceItems(r.Context(), h.DB, activeOnly)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if items == nil {
		items = []store.PriceItem{}
	}
	writeJSON(w, items)
}

func (h BillingHandler) CreatePriceItem(w http.ResponseWriter, r *http.Request) {
	var p store.PriceItem
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}

	id, err := store.InsertPriceItem(r.Context(), h.DB, p)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func (h BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	var clientID int64
	if s := strings.TrimSpace(r.URL.Query().Get("client_id")); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid client_id", 400)
			return
		}
		clientID = id
	}

	invs, err := store.ListInvoices(r.Context(), h.DB, clientID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if invs == nil {
		invs = []store.Invoice{}
	}
	writeJSON(w, invs)
}

func (h BillingHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var inv store.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}

	id, err := store.InsertInvoice(r.Context(), h.DB, inv)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, "invoice_created", 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
