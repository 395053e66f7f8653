package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type LineItem struct {
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type Invoice struct {
	ID         int64      `json:"id"`
	ClientID   int64      `json:"clientId"`
	Number     string     `json:"number"`
	Status     string     `json:"status"`
	IssuedAt   string     `json:"issuedAt"`
	DueAt      string     `json:"dueAt"`
	TotalCents int64      `json:"totalCents"`
	LineItems  []LineItem `json:"lineItems"`
}

var invoiceStatuses = map[string]bool{
	"draft": true, "sent": true, "paid": true, "void": true,
}

func ListInvoices(ctx context.Context, db *sql.DB, clientID int64) ([]Invoice, error) {
	query := `
SELECT id, client_id, number, status, issued_at, due_at, total_cents, line_items
FROM invoices
`
	var args []any
	if clientID > 0 {
		query += "WHERE client_id = ?\n"
		args = append(args, clientID)
	}
	query += "ORDER BY id DESC;"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		var inv Invoice
		var itemsJSON string
		if err := rows.Scan(
			&inv.ID, &inv.ClientID, &inv.Number, &inv.Status,
			&inv.IssuedAt, &inv.DueAt, &inv.TotalCents, &itemsJSON,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(itemsJSON), &inv.LineItems)
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertInvoice stores a new invoice. The total is always recomputed from the
// line items, whatever the caller sent.
func InsertInvoice(ctx context.Context, db *sql.DB, inv Invoice) (int64, error) {
	if inv.ClientID <= 0 {
		return 0, errors.New("invoice needs a client")
	}
	inv.Number = strings.TrimSpace(inv.Number)
	if inv.Number == "" {
		inv.Number = nextInvoiceNumber(ctx, db)
	}
	if inv.Status == "" {
		inv.Status = "draft"
	}
	if !invoiceStatuses[inv.Status] {
		return 0, fmt.Errorf("unknown invoice status %q", inv.Status)
	}
	if inv.IssuedAt == "" {
		inv.IssuedAt = time.Now().UTC().Format(time.RFC3339)
	}

	inv.TotalCents = 0
	for i, li := range inv.LineItems {
		if li.Quantity < 0 || li.UnitPriceCents < 0 {
			return 0, fmt.Errorf("line item %d: negative quantity or price", i)
		}
		inv.TotalCents += li.Quantity * li.UnitPriceCents
	}

	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM clients WHERE id = ? LIMIT 1;`, inv.ClientID).Scan(&exists)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("client %d not found", inv.ClientID)
	}
	if err != nil {
		return 0, err
	}

	itemsB, _ := json.Marshal(inv.LineItems)
	if inv.LineItems == nil {
		itemsB = []byte("[]")
	}
	res, err := db.ExecContext(ctx, `
INSERT INTO invoices(client_id, number, status, issued_at, due_at, total_cents, line_items)
VALUES(?,?,?,?,?,?,?);`,
		inv.ClientID, inv.Number, inv.Status, inv.IssuedAt, inv.DueAt, inv.TotalCents, string(itemsB))
	if err != nil {
		return 0, fmt.Errorf("insert invoice: %w", err)
	}
	return res.LastInsertId()
}

func nextInvoiceNumber(ctx context.Context, db *sql.DB) string {
	var n int64
	_ = db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM invoices;`).Scan(&n)
	return fmt.Sprintf("INV-%04d", n+1)
}
