package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"omservice/internal/models"
)

const listingColumns = `category, images, discount, description, packages, updated_at`

// UpsertServiceListing creates the catalog page for a category or
// replaces the existing one. The category is the key.
func (db *DB) UpsertServiceListing(ctx context.Context, l *models.ServiceListing) error {
	if l.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}

	images, err := json.Marshal(l.Images)
	if err != nil {
		return fmt.Errorf("encode listing images: %w", err)
	}
	packages, err := json.Marshal(l.Packages)
	if err != nil {
		return fmt.Errorf("encode listing packages: %w", err)
	}
	l.UpdatedAt = time.Now()

	query := `INSERT INTO service_listings (` + listingColumns + `)
	          VALUES (?, ?, ?, ?, ?, ?)
	          ON CONFLICT(category) DO UPDATE SET
	              images = excluded.images,
	              discount = excluded.discount,
	              description = excluded.description,
	              packages = excluded.packages,
	              updated_at = excluded.updated_at`
	_, err = db.ExecContext(ctx, query,
		l.Category, string(images), l.Discount, l.Description, string(packages), l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert service listing: %w", err)
	}
	return nil
}

// ListServiceListings returns catalog pages, optionally narrowed to one
// category.
func (db *DB) ListServiceListings(ctx context.Context, category string) ([]models.ServiceListing, error) {
	query := `SELECT ` + listingColumns + ` FROM service_listings`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY category`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query service listings: %w", err)
	}
	defer rows.Close()

	var listings []models.ServiceListing
	for rows.Next() {
		var l models.ServiceListing
		var images, packages string
		if err := rows.Scan(&l.Category, &images, &l.Discount, &l.Description, &packages, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service listing: %w", err)
		}
		if err := json.Unmarshal([]byte(images), &l.Images); err != nil {
			return nil, fmt.Errorf("decode listing images: %w", err)
		}
		if err := json.Unmarshal([]byte(packages), &l.Packages); err != nil {
			return nil, fmt.Errorf("decode listing packages: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service listings: %w", err)
	}
	return listings, nil
}
