package poll

import (
	"context"
	"database/sql"
	"log"

	"opsdesk-engine/internal/enrich"
	"opsdesk-engine/internal/events"
	"opsdesk-engine/internal/smartimport"
	"opsdesk-engine/internal/store"
)

// CommitCandidates runs the insert-or-merge path for a batch of parsed
// candidates. Both /import/commit and the background poller funnel
// through here so a contact lands identically either way.
func CommitCandidates(ctx context.Context, db *sql.DB, cands []smartimport.Candidate, source string, hub *events.Hub, lookup *enrich.Lookup) (added int, err error) {
	for _, c := range cands {
		id, merged, err := store.UpsertFromCandidate(ctx, db, c, source)
		if err != nil {
			return added, err
		}

		typ := "client_created"
		if merged {
			typ = "client_merged"
		} else {
			added++
		}
		if hub != nil {
			hub.Publish(events.MakeEvent("", typ, 1, map[string]any{"id": id, "name": c.Name}))
		}

		if lookup != nil && !merged && c.Company != "" {
			lookup.EnrichClient(ctx, db, store.Client{
				ID: id, Name: c.Name, Company: c.Company, Email: c.Email,
			})
		}
	}
	if added > 0 {
		log.Printf("[import] committed added=%d total=%d source=%s", added, len(cands), source)
	}
	return added, nil
}
