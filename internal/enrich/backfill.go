package enrich

import (
	"context"
	"database/sql"
	"log"

	"opsdesk-engine/internal/store"
)

// BackfillDomains sweeps clients whose company has no cached domain yet and
// tries to resolve one. Bounded per pass so a big import trickles out over
// several ticks instead of hammering the search endpoint.
func (l *Lookup) BackfillDomains(ctx context.Context, db *sql.DB, limit int) error {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.QueryContext(ctx, `
SELECT c.id, c.name, c.company_name, c.email
FROM clients c
WHERE c.company_name != ''
  AND NOT EXISTS (
    SELECT 1 FROM company_domains d
    WHERE d.company = lower(trim(c.company_name))
  )
LIMIT ?;`, limit)
	if err != nil {
		return err
	}
	defer rows.Close()

	var todo []store.Client
	for rows.Next() {
		var c store.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Email); err != nil {
			return err
		}
		todo = append(todo, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, c := range todo {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		l.EnrichClient(ctx, db, c)
	}

	if len(todo) > 0 {
		log.Printf("[enrich] backfill pass companies=%d", len(todo))
	}
	return nil
}
