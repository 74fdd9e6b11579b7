package lifecycle

import (
	"testing"
	"time"

	"omservice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking() *models.Booking {
	b := &models.Booking{Name: "John Doe", Phone: "123", ServiceType: models.ServiceCatering}
	Seed(b, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	return b
}

func TestSeed(t *testing.T) {
	b := newBooking()

	assert.Equal(t, models.StatusPending, b.Status)
	require.Len(t, b.StatusHistory, 1)
	assert.Equal(t, models.StatusPending, b.StatusHistory[0].Status)
	assert.Equal(t, "Booking created", b.StatusHistory[0].Note)
}

func TestApplyAppendsHistory(t *testing.T) {
	b := newBooking()
	now := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)

	changed, err := Apply(b, models.StatusConfirmed, "", "", now)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, models.StatusConfirmed, b.Status)
	require.Len(t, b.StatusHistory, 2)

	last := b.StatusHistory[len(b.StatusHistory)-1]
	assert.Equal(t, models.StatusConfirmed, last.Status)
	assert.Equal(t, "admin", last.ChangedBy)
	assert.Equal(t, "Status changed to Confirmed", last.Note)
	assert.Equal(t, now, last.ChangedAt)

	// Invariant: last history entry matches current status.
	assert.Equal(t, b.Status, b.CurrentHistoryStatus())
}

func TestApplySameStatusIsNoop(t *testing.T) {
	b := newBooking()

	changed, err := Apply(b, models.StatusPending, "admin", "note", time.Now())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, b.StatusHistory, 1)
}

func TestApplyCustomActorAndNote(t *testing.T) {
	b := newBooking()

	changed, err := Apply(b, models.StatusCancelled, "ops-42", "customer called", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)

	last := b.StatusHistory[len(b.StatusHistory)-1]
	assert.Equal(t, "ops-42", last.ChangedBy)
	assert.Equal(t, "customer called", last.Note)
}

func TestApplyRejectsUnknownStatus(t *testing.T) {
	b := newBooking()

	changed, err := Apply(b, "Done", "", "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.False(t, changed)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Len(t, b.StatusHistory, 1)
}

func TestApplyBackwardsTransitionAllowed(t *testing.T) {
	// Completed -> Pending is not blocked; edges are not enforced.
	b := newBooking()
	_, err := Apply(b, models.StatusCompleted, "", "", time.Now())
	require.NoError(t, err)

	changed, err := Apply(b, models.StatusPending, "", "", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, b.StatusHistory, 3)
}
