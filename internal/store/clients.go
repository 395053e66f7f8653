package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"opsdesk-engine/internal/smartimport"
)

type Client struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"companyName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
	Source    string `json:"source"`
	LogoKey   string `json:"logoKey"`
	LogoURL   string `json:"logoURL"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ListClientsOpts struct {
	Sort  string // name | company | created
	Limit int
}

func ListClients(ctx context.Context, db *sql.DB, opts ListClientsOpts) ([]Client, error) {
	// whitelist sort columns (prevents SQL injection)
	sortCol := map[string]string{
		"name":    "lower(name) ASC",
		"company": "lower(company_name) ASC",
		"created": "created_at DESC",
	}[opts.Sort]
	if sortCol == "" {
		sortCol = "lower(name) ASC"
	}
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	query := fmt.Sprintf(`
SELECT c.id, c.name, c.company_name, c.email, c.phone, c.address, c.notes, c.source,
       c.created_at, c.updated_at,
       COALESCE((SELECT l.key FROM company_domains d
                 JOIN logos l ON l.key = d.domain
                 WHERE d.company = lower(trim(c.company_name)) LIMIT 1), '')
FROM clients c
ORDER BY %s
LIMIT ?;
`, sortCol)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Company,
			&c.Email,
			&c.Phone,
			&c.Address,
			&c.Notes,
			&c.Source,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.LogoKey,
		); err != nil {
			return nil, err
		}
		if c.LogoKey != "" {
			c.LogoURL = "/logo/" + c.LogoKey
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func DeleteClient(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindMatch resolves a candidate against persisted clients by the same keys
// the in-memory dedup uses: email, phone digits, then name+company.
// Returns 0 when nothing matches.
func FindMatch(ctx context.Context, db *sql.DB, c smartimport.Candidate) (int64, error) {
	var id int64

	if c.Email != "" {
		err := db.QueryRowContext(ctx,
			`SELECT id FROM clients WHERE lower(email) = ? LIMIT 1;`,
			strings.ToLower(c.Email),
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}
	}

	if d := digits(c.Phone); d != "" {
		err := db.QueryRowContext(ctx,
			`SELECT id FROM clients WHERE phone_digits = ? LIMIT 1;`,
			d,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}
	}

	if c.Name != "" && c.Company != "" {
		err := db.QueryRowContext(ctx,
			`SELECT id FROM clients WHERE lower(name) = ? AND lower(company_name) = ? LIMIT 1;`,
			strings.ToLower(c.Name), strings.ToLower(c.Company),
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}
	}

	return 0, nil
}

// UpsertFromCandidate inserts a new client, or merges into an existing match.
// Merging fills blank company/email/phone/address and never touches the name,
// mirroring the parse-time dedup.
func UpsertFromCandidate(ctx context.Context, db *sql.DB, c smartimport.Candidate, source string) (id int64, merged bool, err error) {
	now := time.Now().UTC().Format(time.RFC3339)

	id, err = FindMatch(ctx, db, c)
	if err != nil {
		return 0, false, err
	}

	if id != 0 {
		_, err = db.ExecContext(ctx, `
UPDATE clients SET
  company_name = CASE WHEN company_name = '' THEN ? ELSE company_name END,
  email        = CASE WHEN email = ''        THEN ? ELSE email END,
  phone        = CASE WHEN phone = ''        THEN ? ELSE phone END,
  phone_digits = CASE WHEN phone_digits = '' THEN ? ELSE phone_digits END,
  address      = CASE WHEN address = ''      THEN ? ELSE address END,
  updated_at   = ?
WHERE id = ?;`,
			c.Company, strings.ToLower(c.Email), c.Phone, digits(c.Phone), c.Address, now, id)
		if err != nil {
			return 0, false, fmt.Errorf("merge client %d: %w", id, err)
		}
		return id, true, nil
	}

	res, err := db.ExecContext(ctx, `
INSERT INTO clients(name, company_name, email, phone, phone_digits, address, notes, source, created_at, updated_at)
VALUES(?,?,?,?,?,?,?,?,?,?);`,
		c.Name, c.Company, strings.ToLower(c.Email), c.Phone, digits(c.Phone), c.Address, "", source, now, now)
	if err != nil {
		return 0, false, fmt.Errorf("insert client: %w", err)
	}
	id, _ = res.LastInsertId()
	return id, false, nil
}

// CleanupStaleImports drops auto-imported rows that never picked up an email
// or phone. They are parser leftovers nobody reviewed, not real clients.
func CleanupStaleImports(db *sql.DB, olderThanHours int) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM clients
WHERE source = 'auto-import'
  AND email = ''
  AND phone_digits = ''
  AND created_at < datetime('now', ?);
`, fmt.Sprintf("-%d hours", olderThanHours))
	if err != nil {
		return 0, fmt.Errorf("cleanup stale imports: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
