package service

import (
	"context"
	"strings"

	"omservice/internal/database"
	"omservice/internal/domain"
	"omservice/internal/events"
	"omservice/internal/mailer"
	"omservice/internal/metrics"
	"omservice/internal/models"

	"github.com/rs/zerolog"
)

type PartnerService struct {
	db       *database.DB
	eventBus domain.EventPublisher
	emails   domain.EmailQueue
	logger   *zerolog.Logger
}

func NewPartnerService(db *database.DB, eventBus domain.EventPublisher, emails domain.EmailQueue, logger *zerolog.Logger) *PartnerService {
	return &PartnerService{
		db:       db,
		eventBus: eventBus,
		emails:   emails,
		logger:   logger,
	}
}

// CollapseDetails merges the multi-value details field of a partner
// form: blank entries are dropped, the rest joined with newlines.
func CollapseDetails(values []string) string {
	var kept []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, "\n")
}

// Create stores a partner application and enqueues the welcome email
// when an address was given.
func (s *PartnerService) Create(ctx context.Context, p *models.Partner) error {
	if err := s.db.CreatePartner(ctx, p); err != nil {
		return err
	}

	metrics.IncBookingEvent(events.EventPartnerJoined)
	err := s.eventBus.PublishJSON(events.EventPartnerJoined, events.PartnerEventPayload{
		PartnerID: p.ID,
		Category:  p.Category,
		Name:      p.Name,
		Email:     p.Email,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to publish partner event")
	}

	if p.Email != "" {
		msg, err := mailer.PartnerWelcome(p)
		if err != nil {
			s.logger.Error().Err(err).Str("partner_id", p.ID).Msg("Failed to render welcome email")
		} else if err := s.emails.Enqueue(ctx, msg); err != nil {
			s.logger.Error().Err(err).Str("partner_id", p.ID).Msg("Failed to enqueue welcome email")
		} else {
			metrics.IncEmailQueued()
		}
	}

	s.logger.Info().Str("partner_id", p.ID).Str("category", p.Category).Msg("Partner request saved")
	return nil
}

func (s *PartnerService) List(ctx context.Context) ([]models.Partner, error) {
	return s.db.ListPartners(ctx)
}
