package service

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"omservice/internal/database"
	"omservice/internal/events"
	"omservice/internal/mailer"
	"omservice/internal/stats"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeBus struct {
	published []publishedEvent
}

type publishedEvent struct {
	Type    string
	Payload []byte
}

func (f *fakeBus) PublishJSON(eventType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	f.published = append(f.published, publishedEvent{Type: eventType, Payload: raw})
	return nil
}

func (f *fakeBus) lastBookingEvent(t *testing.T) (string, events.BookingEventPayload) {
	t.Helper()
	require.NotEmpty(t, f.published)
	last := f.published[len(f.published)-1]
	var payload events.BookingEventPayload
	require.NoError(t, json.Unmarshal(last.Payload, &payload))
	return last.Type, payload
}

type fakeEmailQueue struct {
	queued []mailer.Message
}

func (f *fakeEmailQueue) Enqueue(_ context.Context, msg mailer.Message) error {
	f.queued = append(f.queued, msg)
	return nil
}

type fakeStatsCache struct {
	summary     *stats.Summary
	sets        int
	invalidates int
}

func (f *fakeStatsCache) Get(context.Context) (*stats.Summary, bool, error) {
	if f.summary == nil {
		return nil, false, nil
	}
	return f.summary, true, nil
}

func (f *fakeStatsCache) Set(_ context.Context, summary *stats.Summary) error {
	f.summary = summary
	f.sets++
	return nil
}

func (f *fakeStatsCache) Invalidate(context.Context) error {
	f.summary = nil
	f.invalidates++
	return nil
}

type testEnv struct {
	bookings *BookingService
	partners *PartnerService
	reviews  *ReviewService
	catalog  *CatalogService
	bus      *fakeBus
	emails   *fakeEmailQueue
	cache    *fakeStatsCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.New(os.Stdout)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bus := &fakeBus{}
	emails := &fakeEmailQueue{}
	cache := &fakeStatsCache{}

	return &testEnv{
		bookings: NewBookingService(db, bus, emails, cache, &logger),
		partners: NewPartnerService(db, bus, emails, &logger),
		reviews:  NewReviewService(db, &logger),
		catalog:  NewCatalogService(db, &logger),
		bus:      bus,
		emails:   emails,
		cache:    cache,
	}
}
