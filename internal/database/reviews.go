package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"omservice/internal/models"

	"github.com/google/uuid"
)

const reviewColumns = `id, name, rating, comment, service_type, created_at`

// CreateReview persists a customer review.
func (db *DB) CreateReview(ctx context.Context, r *models.Review) error {
	if err := validateReview(r); err != nil {
		return err
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	query := `INSERT INTO reviews (` + reviewColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		r.ID, r.Name, r.Rating, r.Comment, r.ServiceType, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (db *DB) GetReview(ctx context.Context, id string) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	r, err := scanReview(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return r, nil
}

// ListReviews returns the newest reviews, capped at limit.
func (db *DB) ListReviews(ctx context.Context, limit int) ([]models.Review, error) {
	if limit < 1 {
		limit = models.ReviewFeedLimit
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC LIMIT ?`
	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

// UpdateReview overwrites the stored row with the given review.
func (db *DB) UpdateReview(ctx context.Context, r *models.Review) error {
	if err := validateReview(r); err != nil {
		return err
	}

	query := `UPDATE reviews SET name = ?, rating = ?, comment = ?, service_type = ? WHERE id = ?`
	res, err := db.ExecContext(ctx, query, r.Name, r.Rating, r.Comment, r.ServiceType, r.ID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteReview(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) CountReviews(ctx context.Context) (int, error) {
	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return total, nil
}

func validateReview(r *models.Review) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if r.ServiceType != "" && !models.ValidServiceType(r.ServiceType) {
		return fmt.Errorf("%w: unknown service type %q", ErrValidation, r.ServiceType)
	}
	return nil
}

func scanReview(row rowScanner) (*models.Review, error) {
	var r models.Review
	err := row.Scan(&r.ID, &r.Name, &r.Rating, &r.Comment, &r.ServiceType, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
