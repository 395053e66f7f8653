package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"opsdesk-engine/internal/ingest"
	"opsdesk-engine/internal/smartimport"
)

type ImportHandler struct {
	Status      *atomic.Value // stores ingest.Status
	Commit      func(ctx context.Context, cands []smartimport.Candidate, source string) (int, error)
	RunIngest   func()
	TakePending func() []smartimport.Candidate
}

type parseReq struct {
	Text string `json:"text"`
}

// Parse is the engine's front door: raw text in, validated and
// deduplicated candidates out. Zero candidates is not an error.
func (h ImportHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}

	cands := smartimport.ParseSmartInput(req.Text)
	if cands == nil {
		cands = []smartimport.Candidate{}
	}
	writeJSON(w, map[string]any{"candidates": cands})
}

type commitReq struct {
	Candidates []smartimport.Candidate `json:"candidates"`
}

func (h ImportHandler) CommitBatch(w http.ResponseWriter, r *http.Request) {
	var req commitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}

	var keep []smartimport.Candidate
	for _, c := range req.Candidates {
		if smartimport.Valid(c) {
			keep = append(keep, c)
		}
	}

	added, err := h.Commit(r.Context(), keep, "manual-import")
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "added": added, "committed": len(keep)})
}

func (h ImportHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	st := ingest.Status{}
	if v := h.Status.Load(); v != nil {
		st = v.(ingest.Status)
	}
	writeJSON(w, st)
}

// Run kicks off one background ingest pass right now.
func (h ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := ingest.Status{}
	if v := h.Status.Load(); v != nil {
		st = v.(ingest.Status)
	}
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	go h.RunIngest()
	writeJSON(w, map[string]any{"ok": true})
}

// Pending hands the review queue to the caller and clears it; whoever
// takes it is expected to commit the survivors.
func (h ImportHandler) Pending(w http.ResponseWriter, r *http.Request) {
	cands := h.TakePending()
	if cands == nil {
		cands = []smartimport.Candidate{}
	}
	writeJSON(w, map[string]any{"candidates": cands})
}
