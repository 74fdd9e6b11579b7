package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"omservice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListReviews(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	r := &models.Review{
		Name:        "John Doe",
		Rating:      5,
		Comment:     "Great food",
		ServiceType: models.ServiceCatering,
	}
	require.NoError(t, db.CreateReview(ctx, r))
	require.NotEmpty(t, r.ID)

	reviews, err := db.ListReviews(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "John Doe", reviews[0].Name)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, models.ServiceCatering, reviews[0].ServiceType)
}

func TestListReviewsNewestFirstCapped(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < models.ReviewFeedLimit+3; i++ {
		r := &models.Review{
			Name:      fmt.Sprintf("Customer %02d", i),
			Rating:    4,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.CreateReview(ctx, r))
	}

	reviews, err := db.ListReviews(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reviews, models.ReviewFeedLimit)
	assert.Equal(t, "Customer 12", reviews[0].Name)

	total, err := db.CountReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewFeedLimit+3, total)
}

func TestCreateReviewValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		review models.Review
	}{
		{"missing name", models.Review{Rating: 5}},
		{"rating too low", models.Review{Name: "John", Rating: 0}},
		{"rating too high", models.Review{Name: "John", Rating: 6}},
		{"unknown service type", models.Review{Name: "John", Rating: 3, ServiceType: "Plumbing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review := tt.review
			assert.ErrorIs(t, db.CreateReview(ctx, &review), ErrValidation)
		})
	}
}

func TestUpdateReview(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	r := &models.Review{Name: "John Doe", Rating: 3}
	require.NoError(t, db.CreateReview(ctx, r))

	r.Rating = 5
	r.Comment = "Changed my mind"
	require.NoError(t, db.UpdateReview(ctx, r))

	stored, err := db.GetReview(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
	assert.Equal(t, "Changed my mind", stored.Comment)
}

func TestUpdateReviewNotFound(t *testing.T) {
	db := setupTestDB(t)

	r := &models.Review{ID: "missing", Name: "John", Rating: 4}
	assert.ErrorIs(t, db.UpdateReview(context.Background(), r), ErrNotFound)
}

func TestDeleteReview(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	r := &models.Review{Name: "John Doe", Rating: 4}
	require.NoError(t, db.CreateReview(ctx, r))

	require.NoError(t, db.DeleteReview(ctx, r.ID))
	assert.ErrorIs(t, db.DeleteReview(ctx, r.ID), ErrNotFound)

	_, err := db.GetReview(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
