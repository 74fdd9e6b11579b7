package service

import (
	"context"
	"time"

	"omservice/internal/database"
	"omservice/internal/domain"
	"omservice/internal/events"
	"omservice/internal/lifecycle"
	"omservice/internal/mailer"
	"omservice/internal/metrics"
	"omservice/internal/models"
	"omservice/internal/stats"

	"github.com/rs/zerolog"
)

type BookingService struct {
	db         *database.DB
	eventBus   domain.EventPublisher
	emails     domain.EmailQueue
	statsCache domain.StatsCache
	logger     *zerolog.Logger
}

func NewBookingService(db *database.DB, eventBus domain.EventPublisher, emails domain.EmailQueue, statsCache domain.StatsCache, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		db:         db,
		eventBus:   eventBus,
		emails:     emails,
		statsCache: statsCache,
		logger:     logger,
	}
}

// BookingUpdate carries a partial field set for an update. Nil fields
// are left untouched. StatusNote feeds the lifecycle history entry and
// is never stored as a booking field.
type BookingUpdate struct {
	ServiceType *string
	ServiceName *string
	Name        *string
	Age         *int64
	Phone       *string
	Email       *string
	Address     *string
	Date        *string
	Notes       *string
	TotalAmount *string
	Status      *string
	StatusNote  *string
	ChangedBy   *string
	Details     *models.ServiceDetails
}

// Create persists a new booking, seeds its status history and kicks
// off the confirmation email. The email never blocks the caller.
func (s *BookingService) Create(ctx context.Context, b *models.Booking) error {
	lifecycle.Seed(b, time.Now())

	if err := s.db.CreateBooking(ctx, b); err != nil {
		return err
	}

	metrics.IncBookingEvent(events.EventBookingCreated)
	s.invalidateStats(ctx)
	s.publishBooking(events.EventBookingCreated, b, "", "")

	if b.Email != "" {
		s.enqueueConfirmation(ctx, b)
	}

	s.logger.Info().Str("booking_id", b.ID).Str("service_type", b.ServiceType).Msg("Booking created")
	return nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.db.GetBooking(ctx, id)
}

func (s *BookingService) List(ctx context.Context, filter database.BookingFilter) ([]models.Booking, int, error) {
	return s.db.ListBookings(ctx, filter)
}

// ListUnpaged returns every booking matching the filter; the Excel
// export renders from this.
func (s *BookingService) ListUnpaged(ctx context.Context, filter database.BookingFilter) ([]models.Booking, error) {
	return s.db.ListBookingsUnpaged(ctx, filter)
}

func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return s.db.ListBookingsByEmail(ctx, email)
}

// Snapshot returns the whole collection, newest first. Reports render
// from this.
func (s *BookingService) Snapshot(ctx context.Context) ([]models.Booking, error) {
	return s.db.ListAllBookings(ctx)
}

// Update applies a partial field set. A status change goes through the
// lifecycle so the history entry and the status land together.
func (s *BookingService) Update(ctx context.Context, id string, upd BookingUpdate) (*models.Booking, error) {
	b, err := s.db.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&b.ServiceType, upd.ServiceType)
	applyString(&b.ServiceName, upd.ServiceName)
	applyString(&b.Name, upd.Name)
	applyString(&b.Phone, upd.Phone)
	applyString(&b.Email, upd.Email)
	applyString(&b.Address, upd.Address)
	applyString(&b.Date, upd.Date)
	applyString(&b.Notes, upd.Notes)
	applyString(&b.TotalAmount, upd.TotalAmount)
	if upd.Age != nil {
		b.Age = *upd.Age
	}
	if upd.Details != nil {
		b.Details = *upd.Details
	}

	oldStatus := b.Status
	changed := false
	if upd.Status != nil {
		note := ""
		if upd.StatusNote != nil {
			note = *upd.StatusNote
		}
		changedBy := ""
		if upd.ChangedBy != nil {
			changedBy = *upd.ChangedBy
		}
		changed, err = lifecycle.Apply(b, *upd.Status, changedBy, note, time.Now())
		if err != nil {
			return nil, err
		}
	}

	if err := s.db.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	if changed {
		metrics.IncBookingEvent(events.EventBookingStatusChanged)
		s.publishBooking(events.EventBookingStatusChanged, b, oldStatus, lastNote(b))
		s.logger.Info().Str("booking_id", b.ID).
			Str("old_status", oldStatus).Str("new_status", b.Status).
			Msg("Booking status changed")
	}

	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.db.DeleteBooking(ctx, id); err != nil {
		return err
	}

	metrics.IncBookingEvent(events.EventBookingDeleted)
	s.invalidateStats(ctx)
	_ = s.eventBus.PublishJSON(events.EventBookingDeleted, events.BookingEventPayload{BookingID: id})

	s.logger.Info().Str("booking_id", id).Msg("Booking deleted")
	return nil
}

// Statistics returns the aggregation snapshot, serving from cache when
// possible and recomputing on a miss.
func (s *BookingService) Statistics(ctx context.Context) (*stats.Summary, error) {
	if summary, ok, err := s.statsCache.Get(ctx); err == nil && ok {
		return summary, nil
	}

	bookings, err := s.db.ListAllBookings(ctx)
	if err != nil {
		return nil, err
	}

	summary := stats.Summarize(bookings)
	if err := s.statsCache.Set(ctx, &summary); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache statistics snapshot")
	}
	return &summary, nil
}

func (s *BookingService) publishBooking(eventType string, b *models.Booking, oldStatus, note string) {
	err := s.eventBus.PublishJSON(eventType, events.BookingEventPayload{
		BookingID:   b.ID,
		ServiceType: b.ServiceType,
		ServiceName: b.ServiceName,
		Name:        b.Name,
		Email:       b.Email,
		Status:      b.Status,
		OldStatus:   oldStatus,
		Note:        note,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("Failed to publish event")
	}
}

func (s *BookingService) enqueueConfirmation(ctx context.Context, b *models.Booking) {
	msg, err := mailer.BookingConfirmation(b)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("Failed to render confirmation email")
		return
	}
	if err := s.emails.Enqueue(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("Failed to enqueue confirmation email")
		return
	}
	metrics.IncEmailQueued()
}

func (s *BookingService) invalidateStats(ctx context.Context) {
	if err := s.statsCache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate statistics cache")
	}
}

func lastNote(b *models.Booking) string {
	if len(b.StatusHistory) == 0 {
		return ""
	}
	return b.StatusHistory[len(b.StatusHistory)-1].Note
}
