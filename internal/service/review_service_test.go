package service

import (
	"context"
	"testing"

	"omservice/internal/database"
	"omservice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intptr(n int) *int { return &n }

func TestReviewCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r := &models.Review{Name: "John Doe", Rating: 5, Comment: "Great food"}
	require.NoError(t, env.reviews.Create(ctx, r))

	listed, err := env.reviews.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Great food", listed[0].Comment)
}

func TestReviewPartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r := &models.Review{Name: "John Doe", Rating: 3, Comment: "Okay"}
	require.NoError(t, env.reviews.Create(ctx, r))

	updated, err := env.reviews.Update(ctx, r.ID, ReviewUpdate{Rating: intptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Okay", updated.Comment)

	_, err = env.reviews.Update(ctx, r.ID, ReviewUpdate{Rating: intptr(9)})
	assert.ErrorIs(t, err, database.ErrValidation)
}

func TestReviewDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r := &models.Review{Name: "John Doe", Rating: 4}
	require.NoError(t, env.reviews.Create(ctx, r))
	require.NoError(t, env.reviews.Delete(ctx, r.ID))
	assert.ErrorIs(t, env.reviews.Delete(ctx, r.ID), database.ErrNotFound)
}

func TestCatalogUpsertAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l := &models.ServiceListing{Category: "catering", Discount: "10% OFF"}
	require.NoError(t, env.catalog.Upsert(ctx, l))

	l.Discount = "20% OFF"
	require.NoError(t, env.catalog.Upsert(ctx, l))

	listed, err := env.catalog.List(ctx, "catering")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "20% OFF", listed[0].Discount)
}
