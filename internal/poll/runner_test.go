package poll

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"opsdesk-engine/internal/config"
	"opsdesk-engine/internal/events"
	"opsdesk-engine/internal/ingest"
	"opsdesk-engine/internal/store"
)

type fakeSource struct {
	texts []string
}

func (fakeSource) Name() string { return "fake" }

func (f fakeSource) Harvest(ctx context.Context, cfg config.Config) ([]string, error) {
	return f.texts, nil
}

func newTestRunner(t *testing.T, autoCommit bool, src ingest.Source) *Runner {
	t.Helper()

	d, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	if err := store.Migrate(d.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var cfg config.Config
	cfg.Import.AutoCommit = autoCommit

	cfgVal := &atomic.Value{}
	cfgVal.Store(cfg)
	statusVal := &atomic.Value{}

	return &Runner{
		DB:      d.Pool,
		CfgVal:  cfgVal,
		Status:  statusVal,
		Hub:     events.NewHub(),
		Sources: []ingest.Source{src},
	}
}

func TestRunOnceAutoCommit(t *testing.T) {
	r := newTestRunner(t, true, fakeSource{texts: []string{
		"Add John Doe from ABC Construction, phone 555-123-4567, email john@abcconstruction.com",
	}})

	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	st := r.Status.Load().(ingest.Status)
	if st.Running {
		t.Errorf("still marked running: %+v", st)
	}
	if st.LastAdded != 1 {
		t.Errorf("last_added = %d, want 1", st.LastAdded)
	}
	if st.LastOkAt == "" || st.LastError != "" {
		t.Errorf("status not ok: %+v", st)
	}

	got, err := store.ListClients(context.Background(), r.DB, store.ListClientsOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "John Doe" {
		t.Fatalf("clients = %+v", got)
	}
	if got[0].Source != "auto-import" {
		t.Errorf("source = %q", got[0].Source)
	}
}

func TestRunOnceQueuesWhenAutoCommitOff(t *testing.T) {
	r := newTestRunner(t, false, fakeSource{texts: []string{
		"Sarah Williams, Williams HVAC, sarah@williamshvac.com, (555) 234-5678",
	}})

	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, err := store.ListClients(context.Background(), r.DB, store.ListClientsOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("auto-commit off but clients inserted: %+v", got)
	}

	pending := r.Pending()
	if len(pending) != 1 || pending[0].Email != "sarah@williamshvac.com" {
		t.Fatalf("pending = %+v", pending)
	}
	if again := r.Pending(); len(again) != 0 {
		t.Errorf("Pending did not clear the queue: %+v", again)
	}
}

func TestRunOnceMergesAcrossBlobs(t *testing.T) {
	r := newTestRunner(t, true, fakeSource{texts: []string{
		"Bob Smith\nbob@x.com\n(555) 111-2222",
		"Bob Smith\nAcme Construction LLC\nbob@x.com",
	}})

	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, err := store.ListClients(context.Background(), r.DB, store.ListClientsOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var withEmail []store.Client
	for _, c := range got {
		if c.Email != "" {
			withEmail = append(withEmail, c)
		}
	}
	if len(withEmail) != 1 {
		t.Fatalf("want one client for bob@x.com, got %+v", got)
	}
	if withEmail[0].Phone == "" || withEmail[0].Company == "" {
		t.Errorf("fields not merged: %+v", withEmail[0])
	}
}
