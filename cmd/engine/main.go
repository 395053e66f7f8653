package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"opsdesk-engine/internal/config"
	"opsdesk-engine/internal/enrich"
	"opsdesk-engine/internal/events"
	"opsdesk-engine/internal/httpapi"
	"opsdesk-engine/internal/ingest"
	"opsdesk-engine/internal/ingest/mailsig"
	"opsdesk-engine/internal/poll"
	"opsdesk-engine/internal/scheduler"
	"opsdesk-engine/internal/smartimport"
	"opsdesk-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("OPSDESK_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already owns %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "opsdesk.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	var statusVal atomic.Value
	statusVal.Store(ingest.Status{})

	commit := func(ctx context.Context, cands []smartimport.Candidate, source string) (int, error) {
		cur := cfgVal.Load().(config.Config)
		var lk *enrich.Lookup
		if cur.Enrich.Enabled {
			lk = enrich.NewLookup(cur.Enrich.BlockedDomains)
		}
		return poll.CommitCandidates(ctx, db.Pool, cands, source, hub, lk)
	}

	runner := &poll.Runner{
		DB:      db.Pool,
		CfgVal:  &cfgVal,
		Status:  &statusVal,
		Hub:     hub,
		Sources: []ingest.Source{mailsig.Source{}},
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		CfgVal:       &cfgVal,
		ImportStatus: &statusVal,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		Commit:       commit,
		RunIngest:    func() { _ = runner.RunOnce(context.Background()) },
		TakePending:  runner.Pending,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background loops. Intervals come from the config at startup; a change
	// takes effect on restart.
	go scheduler.Every(ctx, pollInterval(cfg), "ingest", runner.RunOnce)
	go scheduler.Every(ctx, enrichInterval(cfg), "enrich", func(tctx context.Context) error {
		cur := cfgVal.Load().(config.Config)
		if !cur.Enrich.Enabled {
			return nil
		}
		return enrich.NewLookup(cur.Enrich.BlockedDomains).BackfillDomains(tctx, db.Pool, 10)
	})
	go scheduler.Every(ctx, cleanupInterval(cfg), "cleanup", func(context.Context) error {
		n, err := store.CleanupStaleImports(db.Pool, cleanupHours(cfg))
		if n > 0 {
			log.Printf("[cleanup] removed %d stale imports", n)
		}
		return err
	})

	port := cfg.App.Port
	if port <= 0 {
		port = 38481
	}
	addr := "127.0.0.1:" + strconv.Itoa(port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.Cors, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "shutdown.token"), []byte(token), 0o600); err != nil {
		log.Fatalf("write shutdown token: %v", err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func pollInterval(cfg config.Config) time.Duration {
	s := cfg.Polling.EmailSeconds
	if s <= 0 {
		s = 120
	}
	return time.Duration(s) * time.Second
}

func enrichInterval(cfg config.Config) time.Duration {
	s := cfg.Polling.EnrichSeconds
	if s <= 0 {
		s = 300
	}
	return time.Duration(s) * time.Second
}

func cleanupHours(cfg config.Config) int {
	h := cfg.Polling.CleanupHours
	if h <= 0 {
		h = 48
	}
	return h
}

func cleanupInterval(cfg config.Config) time.Duration {
	return time.Duration(cleanupHours(cfg)) * time.Hour
}
