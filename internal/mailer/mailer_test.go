package mailer

import (
	"os"
	"testing"

	"omservice/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stdout)
}

func TestBookingConfirmation(t *testing.T) {
	b := &models.Booking{
		ServiceType: models.ServiceCatering,
		ServiceName: "Banana Leaf",
		Name:        "John Doe",
		Email:       "john@example.com",
		Phone:       "9876543210",
		Date:        "2026-09-14",
		Details: models.ServiceDetails{
			Catering: &models.CateringDetails{Guests: 120, MealType: "Veg"},
		},
	}

	msg, err := BookingConfirmation(b)
	require.NoError(t, err)

	assert.Equal(t, "john@example.com", msg.To)
	assert.Equal(t, "Booking Confirmation - Banana Leaf", msg.Subject)
	assert.Contains(t, msg.HTML, "John Doe")
	assert.Contains(t, msg.HTML, "Meal Type")
	assert.Contains(t, msg.HTML, "Veg")
	assert.Contains(t, msg.HTML, "120")
	assert.NotContains(t, msg.HTML, "Pickup")
}

func TestBookingConfirmationSubjectFallsBackToServiceType(t *testing.T) {
	b := &models.Booking{
		ServiceType: models.ServiceTravels,
		Name:        "Jane",
		Email:       "jane@example.com",
	}

	msg, err := BookingConfirmation(b)
	require.NoError(t, err)
	assert.Equal(t, "Booking Confirmation - Travels", msg.Subject)
}

func TestBookingConfirmationEscapesHTML(t *testing.T) {
	b := &models.Booking{
		ServiceType: models.ServiceCatering,
		Name:        "<script>alert(1)</script>",
		Email:       "x@example.com",
	}

	msg, err := BookingConfirmation(b)
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>alert(1)</script>")
}

func TestPartnerWelcome(t *testing.T) {
	p := &models.Partner{
		Category: models.CategoryPhotography,
		Name:     "Lens Queen Studios",
		Email:    "studio@example.com",
	}

	msg, err := PartnerWelcome(p)
	require.NoError(t, err)

	assert.Equal(t, "studio@example.com", msg.To)
	assert.Equal(t, "Welcome to the Squad! - Photography Partner", msg.Subject)
	assert.Contains(t, msg.HTML, "Lens Queen Studios")
	assert.Contains(t, msg.HTML, "Photography")
}

func TestSendRequiresRecipient(t *testing.T) {
	logger := testLogger()
	m := New(Config{Host: "localhost", Port: 2525}, &logger)

	err := m.Send(Message{Subject: "no recipient"})
	assert.Error(t, err)
}
