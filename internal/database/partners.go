package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"omservice/internal/models"

	"github.com/google/uuid"
)

const partnerColumns = `id, category, name, mobile, email, address, details,
	team_size, menu_items, vehicle_model, camera_model, sweet_type, images, created_at`

// CreatePartner persists a partner application. Partners have no
// lifecycle; the record is written once.
func (db *DB) CreatePartner(ctx context.Context, p *models.Partner) error {
	if p.Category == "" || p.Name == "" || p.Mobile == "" || p.Email == "" || p.Address == "" {
		return fmt.Errorf("%w: category, name, mobile, email and address are required", ErrValidation)
	}
	if !models.ValidPartnerCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}
	if len(p.Images) > models.MaxPartnerImages {
		return fmt.Errorf("%w: at most %d images allowed", ErrValidation, models.MaxPartnerImages)
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}

	query := `INSERT INTO partners (` + partnerColumns + `)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, query,
		p.ID, p.Category, p.Name, p.Mobile, p.Email, p.Address, p.Details,
		p.TeamSize, p.MenuItems, p.VehicleModel, p.CameraModel, p.SweetType,
		string(images), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

func (db *DB) GetPartner(ctx context.Context, id string) (*models.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE id = ?`
	p, err := scanPartner(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

func (db *DB) ListPartners(ctx context.Context) ([]models.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners ORDER BY created_at DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query partners: %w", err)
	}
	defer rows.Close()

	var partners []models.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		partners = append(partners, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate partners: %w", err)
	}
	return partners, nil
}

func scanPartner(row rowScanner) (*models.Partner, error) {
	var p models.Partner
	var images string
	err := row.Scan(
		&p.ID, &p.Category, &p.Name, &p.Mobile, &p.Email, &p.Address, &p.Details,
		&p.TeamSize, &p.MenuItems, &p.VehicleModel, &p.CameraModel, &p.SweetType,
		&images, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return &p, nil
}
