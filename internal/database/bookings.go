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

const bookingColumns = `id, service_type, service_name, name, age, phone, email, address,
	event_date, notes, total_amount, status, status_history, details, created_at, updated_at`

// CreateBooking persists a new booking. Required fields are checked
// first so a rejected request never leaves a partial write.
func (db *DB) CreateBooking(ctx context.Context, b *models.Booking) error {
	if b.Name == "" || b.ServiceType == "" {
		return fmt.Errorf("%w: name and serviceType are required", ErrValidation)
	}
	if b.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if !models.ValidStatus(b.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, b.Status)
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	history, details, err := encodeBookingJSON(b)
	if err != nil {
		return err
	}

	query := `INSERT INTO bookings (` + bookingColumns + `)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, query,
		b.ID, b.ServiceType, b.ServiceName, b.Name, b.Age, b.Phone, b.Email, b.Address,
		b.Date, b.Notes, b.TotalAmount, b.Status, history, details, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// ListBookings returns one page of bookings matching the filter plus
// the total matching count, newest first.
func (db *DB) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, int, error) {
	where, args := filter.BuildWhere()
	clause := ""
	if where != "" {
		clause = " WHERE " + where
	}

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	_, limit := filter.Normalize()
	query := `SELECT ` + bookingColumns + ` FROM bookings` + clause +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	pageArgs := append(append([]any{}, args...), limit, filter.Offset())

	bookings, err := db.queryBookings(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListBookingsUnpaged returns every booking matching the filter, newest
// first. The spreadsheet export uses this; pagination fields of the
// filter are ignored.
func (db *DB) ListBookingsUnpaged(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	where, args := filter.BuildWhere()
	clause := ""
	if where != "" {
		clause = " WHERE " + where
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings` + clause + ` ORDER BY created_at DESC`
	return db.queryBookings(ctx, query, args...)
}

// ListAllBookings returns a whole-collection snapshot, newest first.
// Reports and statistics exports operate on this snapshot.
func (db *DB) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return db.queryBookings(ctx, query)
}

// ListBookingsByEmail returns the bookings correlated with an email,
// newest first. Used for the "my bookings" view.
func (db *DB) ListBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE LOWER(email) = LOWER(?) ORDER BY created_at DESC`
	return db.queryBookings(ctx, query, email)
}

// UpdateBooking overwrites the stored row with the given booking.
// Status and history land in the same single-row UPDATE, so readers
// never observe one without the other.
func (db *DB) UpdateBooking(ctx context.Context, b *models.Booking) error {
	if !models.ValidStatus(b.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, b.Status)
	}

	b.UpdatedAt = time.Now()
	history, details, err := encodeBookingJSON(b)
	if err != nil {
		return err
	}

	query := `UPDATE bookings SET service_type = ?, service_name = ?, name = ?, age = ?,
	          phone = ?, email = ?, address = ?, event_date = ?, notes = ?, total_amount = ?,
	          status = ?, status_history = ?, details = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		b.ServiceType, b.ServiceName, b.Name, b.Age, b.Phone, b.Email, b.Address,
		b.Date, b.Notes, b.TotalAmount, b.Status, history, details, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteBooking(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) CountBookings(ctx context.Context) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	var history, details string
	err := row.Scan(
		&b.ID, &b.ServiceType, &b.ServiceName, &b.Name, &b.Age, &b.Phone, &b.Email, &b.Address,
		&b.Date, &b.Notes, &b.TotalAmount, &b.Status, &history, &details, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(history), &b.StatusHistory); err != nil {
		return nil, fmt.Errorf("decode status history: %w", err)
	}
	if err := json.Unmarshal([]byte(details), &b.Details); err != nil {
		return nil, fmt.Errorf("decode service details: %w", err)
	}
	return &b, nil
}

func encodeBookingJSON(b *models.Booking) (history, details string, err error) {
	historyBytes, err := json.Marshal(b.StatusHistory)
	if err != nil {
		return "", "", fmt.Errorf("encode status history: %w", err)
	}
	detailsBytes, err := json.Marshal(b.Details)
	if err != nil {
		return "", "", fmt.Errorf("encode service details: %w", err)
	}
	return string(historyBytes), string(detailsBytes), nil
}
