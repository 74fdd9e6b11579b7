// Package lifecycle is the only legitimate mutator of a booking's
// status and status history.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"omservice/internal/models"
)

// ErrInvalidStatus is returned for values outside the fixed enum.
var ErrInvalidStatus = errors.New("invalid booking status")

// Seed initialises a new booking: default Pending status and a single
// history entry noting creation.
func Seed(b *models.Booking, now time.Time) {
	if b.Status == "" {
		b.Status = models.StatusPending
	}
	b.StatusHistory = []models.StatusChange{{
		Status:    b.Status,
		ChangedAt: now,
		Note:      "Booking created",
	}}
}

// Apply transitions the booking to newStatus, appending exactly one
// history entry. It is a no-op when newStatus equals the current
// status, so repeated updates never produce spurious history entries.
//
// Any-to-any transitions between valid statuses are permitted; the
// lifecycle records history, it does not gate edges.
func Apply(b *models.Booking, newStatus, changedBy, note string, now time.Time) (bool, error) {
	if !models.ValidStatus(newStatus) {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	if newStatus == b.Status {
		return false, nil
	}

	if changedBy == "" {
		changedBy = models.DefaultActor
	}
	if note == "" {
		note = fmt.Sprintf("Status changed to %s", newStatus)
	}

	b.Status = newStatus
	b.StatusHistory = append(b.StatusHistory, models.StatusChange{
		Status:    newStatus,
		ChangedAt: now,
		ChangedBy: changedBy,
		Note:      note,
	})
	return true, nil
}
