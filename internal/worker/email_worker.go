// Package worker runs background delivery of transactional email.
// Requests enqueue and move on; nothing in the HTTP path ever waits on
// SMTP.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"omservice/internal/mailer"
	"omservice/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Sender delivers one rendered message. Satisfied by *mailer.Mailer.
type Sender interface {
	Send(msg mailer.Message) error
}

// EmailTask is the queued unit of work.
type EmailTask struct {
	Message   mailer.Message `json:"message"`
	Attempts  int            `json:"attempts"`
	CreatedAt time.Time      `json:"createdAt"`
}

// EmailWorker consumes queued email tasks. Redis is the primary queue
// so tasks survive a restart; the buffered channel takes over when
// redis is missing or down. Delivery failures retry with exponential
// backoff and land in a dead-letter list when retries run out.
type EmailWorker struct {
	sender        Sender
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan EmailTask
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	logger        *zerolog.Logger
}

func NewEmailWorker(sender Sender, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *EmailWorker {
	return &EmailWorker{
		sender:        sender,
		redis:         redisClient,
		retryPolicy:   retry.withDefaults(),
		queue:         make(chan EmailTask, models.EmailQueueSize),
		redisQueueKey: "email:queue",
		deadLetterKey: "email:deadletter",
		pollInterval:  2 * time.Second,
		logger:        logger,
	}
}

// Enqueue schedules a message for delivery and returns immediately.
// The only error a caller can see is a missing recipient; delivery
// failures are the worker's problem.
func (w *EmailWorker) Enqueue(ctx context.Context, msg mailer.Message) error {
	if msg.To == "" {
		return errors.New("recipient is required")
	}

	task := EmailTask{Message: msg, CreatedAt: time.Now()}
	w.schedule(ctx, task)
	return nil
}

func (w *EmailWorker) schedule(ctx context.Context, task EmailTask) {
	if w.redis != nil {
		if err := w.pushRedis(ctx, task); err == nil {
			return
		} else {
			w.logger.Warn().Err(err).Msg("Redis push failed, falling back to memory queue")
		}
	}

	select {
	case w.queue <- task:
	default:
		w.logger.Error().Str("to", task.Message.To).Msg("Email queue full, task dropped")
	}
}

// Start runs the delivery loop until ctx is done.
func (w *EmailWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("Email worker started")
	defer w.logger.Info().Msg("Email worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if task, ok := w.tryLocalQueue(); ok {
			w.process(ctx, task)
			continue
		}

		if task, ok := w.tryRedis(ctx); ok {
			w.process(ctx, task)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case task := <-w.queue:
			w.process(ctx, task)
		case <-time.After(w.pollInterval):
		}
	}
}

func (w *EmailWorker) tryLocalQueue() (EmailTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return EmailTask{}, false
	}
}

func (w *EmailWorker) tryRedis(ctx context.Context) (EmailTask, bool) {
	if w.redis == nil {
		return EmailTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			w.logger.Warn().Err(err).Msg("Redis BRPOP error")
		}
		return EmailTask{}, false
	}
	if len(res) != 2 {
		return EmailTask{}, false
	}
	var task EmailTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.logger.Error().Err(err).Msg("Decode queued email task")
		return EmailTask{}, false
	}
	return task, true
}

func (w *EmailWorker) process(ctx context.Context, task EmailTask) {
	err := w.sender.Send(task.Message)
	if err == nil {
		return
	}

	task.Attempts++
	if task.Attempts >= w.retryPolicy.MaxRetries {
		w.logger.Error().Err(err).
			Str("to", task.Message.To).
			Int("attempts", task.Attempts).
			Msg("Email delivery failed permanently")
		w.pushDeadLetter(ctx, task)
		return
	}

	delay := w.retryPolicy.NextDelay(task.Attempts)
	w.logger.Warn().Err(err).
		Str("to", task.Message.To).
		Int("attempt", task.Attempts).
		Dur("retry_in", delay).
		Msg("Email delivery failed, will retry")

	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(delay):
			w.schedule(ctx, task)
		}
	}()
}

func (w *EmailWorker) pushRedis(ctx context.Context, task EmailTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, w.redisQueueKey, data).Err()
}

func (w *EmailWorker) pushDeadLetter(ctx context.Context, task EmailTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		w.logger.Error().Err(err).Msg("Encode dead-letter task")
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.logger.Error().Err(err).Msg("Dead-letter push failed")
	}
}
