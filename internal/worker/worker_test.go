package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"omservice/internal/mailer"
	"omservice/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []mailer.Message
}

func (f *fakeSender) Send(msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestWorker(t *testing.T, sender Sender, client *redis.Client, retry RetryPolicy) *EmailWorker {
	t.Helper()
	logger := zerolog.New(io.Discard)
	return NewEmailWorker(sender, client, retry, &logger)
}

func TestEnqueueRequiresRecipient(t *testing.T) {
	w := newTestWorker(t, &fakeSender{}, nil, RetryPolicy{})

	err := w.Enqueue(context.Background(), mailer.Message{Subject: "no to"})
	assert.Error(t, err)
}

func TestProcessSuccess(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(t, sender, nil, RetryPolicy{})
	ctx := context.Background()

	msg := mailer.Message{To: "a@b.c", Subject: "hi", HTML: "<p>hi</p>"}
	require.NoError(t, w.Enqueue(ctx, msg))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.process(ctx, task)

	require.Equal(t, 1, sender.sentCount())
	assert.Equal(t, "a@b.c", sender.sent[0].To)
}

func TestProcessRetryRequeues(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	w := newTestWorker(t, sender, nil, RetryPolicy{MaxRetries: 3, InitialDelay: 5 * time.Millisecond})
	ctx := context.Background()

	require.NoError(t, w.Enqueue(ctx, mailer.Message{To: "a@b.c"}))
	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.process(ctx, task)

	assert.Eventually(t, func() bool {
		task, ok := w.tryLocalQueue()
		if !ok {
			return false
		}
		return task.Attempts == 1
	}, time.Second, 5*time.Millisecond)
}

func TestProcessDeadLetterAfterMaxRetries(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	sender := &fakeSender{err: errors.New("mailbox on fire")}
	w := newTestWorker(t, sender, client, RetryPolicy{MaxRetries: 1})
	ctx := context.Background()

	w.process(ctx, EmailTask{Message: mailer.Message{To: "a@b.c"}})

	letters, err := client.LRange(ctx, w.deadLetterKey, 0, -1).Result()
	require.NoError(t, err)
	assert.Len(t, letters, 1)
}

func TestEnqueuePrefersRedis(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	w := newTestWorker(t, &fakeSender{}, client, RetryPolicy{})
	ctx := context.Background()

	require.NoError(t, w.Enqueue(ctx, mailer.Message{To: "a@b.c"}))

	queued, err := client.LLen(ctx, w.redisQueueKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), queued)

	_, ok := w.tryLocalQueue()
	assert.False(t, ok)

	task, ok := w.tryRedis(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@b.c", task.Message.To)
}

func TestEnqueueFallsBackWhenRedisDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	w := newTestWorker(t, &fakeSender{}, client, RetryPolicy{})

	require.NoError(t, w.Enqueue(context.Background(), mailer.Message{To: "a@b.c"}))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	assert.Equal(t, "a@b.c", task.Message.To)
}

func TestStartDrainsQueue(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(t, sender, nil, RetryPolicy{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, w.Enqueue(ctx, mailer.Message{To: "a@b.c"}))
	require.NoError(t, w.Enqueue(ctx, mailer.Message{To: "d@e.f"}))

	assert.Eventually(t, func() bool {
		return sender.sentCount() == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, MaxDelay: 5 * time.Second}

	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
	assert.Equal(t, 5*time.Second, policy.NextDelay(5))
}

func TestRetryPolicyJitterStaysBounded(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, Jitter: 0.2}

	for i := 0; i < 50; i++ {
		d := policy.NextDelay(2)
		assert.GreaterOrEqual(t, d, 1600*time.Millisecond)
		assert.LessOrEqual(t, d, 2400*time.Millisecond)
	}
}

func TestRetryPolicyDefaults(t *testing.T) {
	policy := RetryPolicy{}.withDefaults()

	assert.Equal(t, 5, policy.MaxRetries)
	assert.Equal(t, 2*time.Second, policy.InitialDelay)
	assert.Equal(t, time.Minute, policy.MaxDelay)
	assert.Equal(t, float64(2), policy.BackoffFactor)
	// explicit values survive
	custom := RetryPolicy{MaxRetries: 9}.withDefaults()
	assert.Equal(t, 9, custom.MaxRetries)
}

func TestWorkerAppliesPolicyDefaults(t *testing.T) {
	w := newTestWorker(t, &fakeSender{}, nil, RetryPolicy{})

	assert.Equal(t, 5, w.retryPolicy.MaxRetries)
	assert.Equal(t, models.EmailQueueSize, cap(w.queue))
}
