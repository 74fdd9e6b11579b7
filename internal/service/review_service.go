package service

import (
	"context"

	"omservice/internal/database"
	"omservice/internal/models"

	"github.com/rs/zerolog"
)

type ReviewService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewReviewService(db *database.DB, logger *zerolog.Logger) *ReviewService {
	return &ReviewService{db: db, logger: logger}
}

// ReviewUpdate carries a partial field set; nil fields stay untouched.
type ReviewUpdate struct {
	Name        *string
	Rating      *int
	Comment     *string
	ServiceType *string
}

func (s *ReviewService) Create(ctx context.Context, r *models.Review) error {
	if err := s.db.CreateReview(ctx, r); err != nil {
		return err
	}
	s.logger.Info().Str("review_id", r.ID).Int("rating", r.Rating).Msg("Review saved")
	return nil
}

// List returns the public feed: the newest reviews, capped.
func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	return s.db.ListReviews(ctx, models.ReviewFeedLimit)
}

func (s *ReviewService) Update(ctx context.Context, id string, upd ReviewUpdate) (*models.Review, error) {
	r, err := s.db.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		r.Name = *upd.Name
	}
	if upd.Rating != nil {
		r.Rating = *upd.Rating
	}
	if upd.Comment != nil {
		r.Comment = *upd.Comment
	}
	if upd.ServiceType != nil {
		r.ServiceType = *upd.ServiceType
	}

	if err := s.db.UpdateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.db.DeleteReview(ctx, id)
}

func (s *ReviewService) Count(ctx context.Context) (int, error) {
	return s.db.CountReviews(ctx)
}
