package enrich

import (
	"context"
	"database/sql"
	"log"

	"opsdesk-engine/internal/store"
)

// EnrichClient resolves the client's company domain and caches its favicon.
// Best-effort: a failed lookup logs and moves on, it never fails the import.
func (l *Lookup) EnrichClient(ctx context.Context, db *sql.DB, c store.Client) {
	if c.Company == "" {
		return
	}

	domain, err := l.GetOrFindCompanyDomain(ctx, db, c.Company, c.Email)
	if err != nil {
		log.Printf("[enrich] domain lookup company=%q err=%v", c.Company, err)
		return
	}
	if domain == "" {
		return
	}

	if err := l.Limiter.WaitURL(ctx, store.FaviconURLForDomain(domain)); err != nil {
		return
	}
	if _, err := store.CacheFaviconForDomain(ctx, db, domain); err != nil {
		log.Printf("[enrich] favicon domain=%s err=%v", domain, err)
	}
}
