package poll

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"opsdesk-engine/internal/config"
	"opsdesk-engine/internal/enrich"
	"opsdesk-engine/internal/events"
	"opsdesk-engine/internal/ingest"
	"opsdesk-engine/internal/smartimport"
)

// Runner drives the background ingest loop: harvest every enabled source,
// parse the blobs, commit (or queue) the survivors.
type Runner struct {
	DB      *sql.DB
	CfgVal  *atomic.Value // stores config.Config
	Status  *atomic.Value // stores ingest.Status
	Hub     *events.Hub
	Sources []ingest.Source

	mu      sync.Mutex
	pending []smartimport.Candidate
}

// RunOnce fans out over the sources, each with its own timeout, and feeds
// everything harvested through the parse pipeline.
func (r *Runner) RunOnce(ctx context.Context) error {
	cfgAny := r.CfgVal.Load()
	if cfgAny == nil {
		return nil
	}
	cfg := cfgAny.(config.Config)

	r.setRunning(true)

	var g errgroup.Group
	blobs := make(chan string, 64)

	for _, s := range r.Sources {
		s := s
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()

			texts, err := s.Harvest(sctx, cfg)
			if err != nil {
				log.Printf("[%s] error: %v", s.Name(), err)
				return nil
			}
			for _, t := range texts {
				blobs <- t
			}
			return nil
		})
	}

	done := make(chan struct{})
	var cands []smartimport.Candidate
	go func() {
		defer close(done)
		for b := range blobs {
			cands = append(cands, smartimport.ParseSmartInput(b)...)
		}
	}()

	_ = g.Wait()
	close(blobs)
	<-done

	cands = smartimport.Deduplicate(cands)

	var added int
	var err error
	if len(cands) > 0 {
		if cfg.Import.AutoCommit {
			cctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			added, err = CommitCandidates(cctx, r.DB, cands, "auto-import", r.Hub, r.lookup(cfg))
			cancel()
		} else {
			r.queueForReview(cands)
		}
	}

	r.finish(added, err)
	return err
}

func (r *Runner) lookup(cfg config.Config) *enrich.Lookup {
	if !cfg.Enrich.Enabled {
		return nil
	}
	return enrich.NewLookup(cfg.Enrich.BlockedDomains)
}

// queueForReview holds parsed candidates until someone commits them
// through /import/commit. Re-harvesting the same text replaces the queue
// rather than growing it.
func (r *Runner) queueForReview(cands []smartimport.Candidate) {
	r.mu.Lock()
	r.pending = cands
	r.mu.Unlock()
	if r.Hub != nil {
		r.Hub.Publish(events.MakeEvent("", "import_review", 1, map[string]any{"count": len(cands)}))
	}
}

// Pending returns the queued candidates and clears the queue.
func (r *Runner) Pending() []smartimport.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}

func (r *Runner) setRunning(v bool) {
	st := r.status()
	st.Running = v
	if v {
		st.LastRunAt = time.Now().Format(time.RFC3339)
	}
	r.Status.Store(st)
}

func (r *Runner) finish(added int, err error) {
	st := r.status()
	st.Running = false
	st.LastAdded = added
	if err != nil {
		st.LastError = err.Error()
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
	}
	r.Status.Store(st)
	if r.Hub != nil {
		r.Hub.Publish(events.MakeEvent("", "import_done", 1, st))
	}
}

func (r *Runner) status() ingest.Status {
	if v := r.Status.Load(); v != nil {
		return v.(ingest.Status)
	}
	return ingest.Status{}
}
