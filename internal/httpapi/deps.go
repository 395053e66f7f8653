package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"opsdesk-engine/internal/config"
	"opsdesk-engine/internal/events"
	"opsdesk-engine/internal/smartimport"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ImportStatus *atomic.Value // stores ingest.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Import pipeline (injected for testability)
	Commit      func(ctx context.Context, cands []smartimport.Candidate, source string) (added int, err error)
	RunIngest   func()
	TakePending func() []smartimport.Candidate
}
