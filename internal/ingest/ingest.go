// Package ingest defines the sources that feed raw text into the import
// pipeline. A source does all of its own I/O and hands back plain text;
// the parsing core never sees a socket.
package ingest

import (
	"context"

	"opsdesk-engine/internal/config"
)

type Source interface {
	Name() string
	// Harvest returns one text blob per harvested item (an email body, a
	// pasted note). Blobs keep their line structure; parsers depend on it.
	Harvest(ctx context.Context, cfg config.Config) ([]string, error)
}

// Status is the result of the last background ingest run, served on
// /import/status and stored in an atomic.Value.
type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}
