package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Clients
	ch := ClientsHandler{DB: d.DB, Hub: d.Hub, Commit: d.Commit}
	mux.HandleFunc("/clients", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ch.List,
		http.MethodPost: ch.Create,
	}))
	mux.HandleFunc("/clients/delete", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ch.Delete,
	}))

	// Import pipeline
	ih := ImportHandler{
		Status:      d.ImportStatus,
		Commit:      d.Commit,
		RunIngest:   d.RunIngest,
		TakePending: d.TakePending,
	}
	mux.HandleFunc("/import/parse", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.Parse,
	}))
	mux.HandleFunc("/import/commit", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.CommitBatch,
	}))
	mux.HandleFunc("/import/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.GetStatus,
	}))
	mux.HandleFunc("/import/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.Run,
	}))
	mux.HandleFunc("/import/pending", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.Pending,
	}))

	// Pricebook + invoices
	bh := BillingHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/pricebook", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  bh.ListPricebook,
		http.MethodPost: bh.CreatePriceItem,
	}))
	mux.HandleFunc("/invoices", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  bh.ListInvoices,
		http.MethodPost: bh.CreateInvoice,
	}))

	// Config
	cfg := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfg.Get,
		http.MethodPut: cfg.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfg.Path,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetIMAPPassword,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Logos
	lh := LogosHandler{DB: d.DB}
	mux.HandleFunc("/logo/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.GetByPath,
	}))

	// Maintenance
	dh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", dh.Checkpoint)

	return mux
}
