package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type PriceItem struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Unit           string `json:"unit"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Active         bool   `json:"active"`
}

func ListPriceItems(ctx context.Context, db *sql.DB, activeOnly bool) ([]PriceItem, error) {
	query := `
SELECT id, name, description, unit, unit_price_cents, active
FROM pricebook
`
	if activeOnly {
		query += "WHERE active = 1\n"
	}
	query += "ORDER BY lower(name) ASC;"

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PriceItem
	for rows.Next() {
		var p PriceItem
		var active int
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Unit, &p.UnitPriceCents, &active); err != nil {
			return nil, err
		}
		p.Active = active != 0
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func InsertPriceItem(ctx context.Context, db *sql.DB, p PriceItem) (int64, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return 0, errors.New("price item name is required")
	}
	if p.UnitPriceCents < 0 {
		return 0, errors.New("unit price cannot be negative")
	}
	if strings.TrimSpace(p.Unit) == "" {
		p.Unit = "each"
	}

	active := 0
	if p.Active {
		active = 1
	}
	res, err := db.ExecContext(ctx, `
INSERT INTO pricebook(name, description, unit, unit_price_cents, active)
VALUES(?,?,?,?,?);`,
		p.Name, p.Description, p.Unit, p.UnitPriceCents, active)
	if err != nil {
		return 0, fmt.Errorf("insert price item: %w", err)
	}
	return res.LastInsertId()
}
