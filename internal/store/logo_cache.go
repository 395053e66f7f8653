package store

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GetLogo returns the cached bytes for a key, or sql.ErrNoRows.
func GetLogo(ctx context.Context, db *sql.DB, key string) (contentType string, b []byte, err error) {
	err = db.QueryRowContext(ctx,
		`SELECT content_type, bytes FROM logos WHERE key = ? LIMIT 1;`,
		key,
	).Scan(&contentType, &b)
	return contentType, b, err
}

func FaviconURLForDomain(domain string) string {
	domain = normalizeDomain(domain)
	if domain == "" {
		return ""
	}
	// sz can be 16/32/64/128
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(domain) + "&sz=64"
}

// CacheFaviconForDomain fetches the domain's favicon through Google's
// favicon service and stores it under the domain itself as the key, so a
// client row can resolve its logo from company_domains alone.
func CacheFaviconForDomain(ctx context.Context, db *sql.DB, domain string) (key string, err error) {
	key = normalizeDomain(domain)
	u := FaviconURLForDomain(key)
	if u == "" {
		return "", nil
	}

	// If already cached, skip fetch
	var exists int
	e := db.QueryRowContext(ctx, `SELECT 1 FROM logos WHERE key = ? LIMIT 1;`, key).Scan(&exists)
	if e == nil {
		return key, nil
	}
	if e != sql.ErrNoRows {
		return "", e
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[logo-cache] fetch error domain=%s err=%v", key, err)
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[logo-cache] non-2xx domain=%s status=%s", key, resp.Status)
		return "", nil
	}

	// Limit size (protect DB)
	const max = 512 * 1024 // 512KB
	b, err := io.ReadAll(io.LimitReader(resp.Body, max+1))
	if err != nil {
		return "", nil
	}
	if len(b) == 0 || len(b) > max {
		return "", nil
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "image/") {
		// sniff as fallback
		sn := http.DetectContentType(b)
		if !strings.HasPrefix(sn, "image/") {
			return "", errors.New("not an image")
		}
		ct = sn
	}

	_, err = db.ExecContext(ctx, `
INSERT OR REPLACE INTO logos(key, content_type, bytes, fetched_at)
VALUES(?,?,?,?);`,
		key,
		ct,
		b,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}

	return key, nil
}

func normalizeDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "www.")
	return strings.Trim(domain, "/")
}
