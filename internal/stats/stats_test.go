package stats

import (
	"testing"
	"time"

	"omservice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(service, status, name, email, amount string, created time.Time) models.Booking {
	return models.Booking{
		ServiceType: service,
		Status:      status,
		Name:        name,
		Email:       email,
		TotalAmount: amount,
		CreatedAt:   created,
	}
}

func TestSummarizeByService(t *testing.T) {
	now := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	s := Summarize([]models.Booking{
		booking(models.ServiceCatering, models.StatusPending, "A", "", "₹15,000", now),
		booking(models.ServiceTravels, models.StatusConfirmed, "B", "", "5000", now),
		booking(models.ServiceCatering, models.StatusCompleted, "C", "", "10,000.50", now),
	})

	require.Len(t, s.ByService, 2)
	// First-encounter order is preserved.
	assert.Equal(t, models.ServiceCatering, s.ByService[0].ServiceType)
	assert.Equal(t, 2, s.ByService[0].Count)
	assert.InDelta(t, 25000.5, s.ByService[0].TotalAmount, 0.001)
	assert.Equal(t, models.ServiceTravels, s.ByService[1].ServiceType)
	assert.InDelta(t, 30000.5, s.TotalRevenue, 0.001)
}

func TestSummarizeByStatus(t *testing.T) {
	now := time.Now()
	s := Summarize([]models.Booking{
		booking(models.ServiceCatering, models.StatusPending, "A", "", "", now),
		booking(models.ServiceCatering, models.StatusPending, "B", "", "", now),
		booking(models.ServiceCatering, models.StatusCancelled, "C", "", "", now),
	})

	require.Len(t, s.ByStatus, 2)
	assert.Equal(t, StatusStat{Status: models.StatusPending, Count: 2}, s.ByStatus[0])
	assert.Equal(t, StatusStat{Status: models.StatusCancelled, Count: 1}, s.ByStatus[1])
}

func TestSummarizeUnparsableAmountsContributeZero(t *testing.T) {
	now := time.Now()
	s := Summarize([]models.Booking{
		booking(models.ServiceCatering, models.StatusPending, "A", "", "abc", now),
		booking(models.ServiceCatering, models.StatusPending, "B", "", "15000", now),
	})
	assert.InDelta(t, 15000, s.TotalRevenue, 0.001)
}

func TestConversionRateCountsLiteralDone(t *testing.T) {
	now := time.Now()
	s := Summarize([]models.Booking{
		booking(models.ServiceCatering, models.StatusCompleted, "A", "", "", now),
		booking(models.ServiceCatering, models.StatusCompleted, "B", "", "", now),
	})
	// Completed bookings do not count; only the literal "Done" does.
	assert.Equal(t, 0, s.ConversionRate)

	s = Summarize([]models.Booking{
		booking(models.ServiceCatering, "Done", "A", "", "", now),
		booking(models.ServiceCatering, models.StatusPending, "B", "", "", now),
	})
	assert.Equal(t, 50, s.ConversionRate)
}

func TestMonthlyNewestFirstCappedAtTwelve(t *testing.T) {
	var bookings []models.Booking
	for i := 0; i < 15; i++ {
		created := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		bookings = append(bookings, booking(models.ServiceCatering, models.StatusPending, "A", "", "100", created))
	}

	s := Summarize(bookings)
	require.Len(t, s.Monthly, 12)
	assert.Equal(t, 2026, s.Monthly[0].Year)
	assert.Equal(t, time.March, s.Monthly[0].Month)
	assert.Equal(t, time.April, s.Monthly[11].Month)
	assert.Equal(t, 2025, s.Monthly[11].Year)
}

func TestLastMonthsChronological(t *testing.T) {
	var bookings []models.Booking
	for i := 0; i < 8; i++ {
		created := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		bookings = append(bookings, booking(models.ServiceCatering, models.StatusPending, "A", "", "100", created))
	}

	last := Summarize(bookings).LastMonths(6)
	require.Len(t, last, 6)
	assert.Equal(t, time.March, last[0].Month)
	assert.Equal(t, time.August, last[5].Month)
	assert.Equal(t, "Mar 2026", last[0].Label())
}

func TestTopCustomersStableTies(t *testing.T) {
	now := time.Now()
	s := Summarize([]models.Booking{
		booking(models.ServiceCatering, models.StatusPending, "Alice", "alice@example.com", "100", now),
		booking(models.ServiceTravels, models.StatusPending, "Bob", "bob@example.com", "200", now),
		booking(models.ServiceCatering, models.StatusPending, "Alice", "ALICE@example.com", "300", now),
		booking(models.ServiceCatering, models.StatusPending, "Carol", "carol@example.com", "50", now),
	})

	assert.Equal(t, 3, s.UniqueCustomers)

	top := s.TopCustomers(5)
	require.Len(t, top, 3)
	assert.Equal(t, "Alice", top[0].Name)
	assert.Equal(t, 2, top[0].Count)
	// Bob and Carol are tied at one booking each; input order holds.
	assert.Equal(t, "Bob", top[1].Name)
	assert.Equal(t, "Carol", top[2].Name)
}

func TestTopServiceFirstEncounteredWinsTies(t *testing.T) {
	now := time.Now()
	s := Summarize([]models.Booking{
		booking(models.ServiceTravels, models.StatusPending, "A", "", "", now),
		booking(models.ServiceCatering, models.StatusPending, "B", "", "", now),
	})

	top, ok := s.TopService()
	require.True(t, ok)
	assert.Equal(t, models.ServiceTravels, top.ServiceType)

	_, ok = Summarize(nil).TopService()
	assert.False(t, ok)
}
