package service

import (
	"context"

	"omservice/internal/database"
	"omservice/internal/models"

	"github.com/rs/zerolog"
)

// CatalogService manages the public service-catalog pages the admin
// edits: per-category galleries, discounts and packages.
type CatalogService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewCatalogService(db *database.DB, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{db: db, logger: logger}
}

// Upsert writes the listing for its category, creating it on first
// save and replacing it afterwards.
func (s *CatalogService) Upsert(ctx context.Context, l *models.ServiceListing) error {
	if err := s.db.UpsertServiceListing(ctx, l); err != nil {
		return err
	}
	s.logger.Info().Str("category", l.Category).Msg("Service listing updated")
	return nil
}

// List returns listings, all of them or a single category.
func (s *CatalogService) List(ctx context.Context, category string) ([]models.ServiceListing, error) {
	return s.db.ListServiceListings(ctx, category)
}
