package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/config"
	"github.com/nucampus/campus-backend/internal/mailer"
	"github.com/nucampus/campus-backend/internal/metrics"
	"github.com/nucampus/campus-backend/internal/repository"
)

// EmailWorker consumes the notice email queue, resolves each job's audience
// into user emails and hands the messages to the mail backend.
type EmailWorker struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
	sender   mailer.EmailSender
	log      zerolog.Logger
}

// NewEmailWorker creates a new EmailWorker.
func NewEmailWorker(userRepo *repository.UserRepository, rdb *redis.Client, sender mailer.EmailSender, log zerolog.Logger) *EmailWorker {
	return &EmailWorker{
		userRepo: userRepo,
		rdb:      rdb,
		sender:   sender,
		log:      log.With().Str("component", "email_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *EmailWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining jobs before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *EmailWorker) processNext(ctx context.Context) {
	// BLPop blocks until a job is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.NoticeEmailQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	if err := w.deliver(ctx, []byte(result[1])); err != nil {
		w.log.Error().Err(err).Msg("Delivery error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.WorkerKey.NoticeEmailQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

func (w *EmailWorker) deliver(ctx context.Context, raw []byte) error {
	var job EmailJob
	if err := json.Unmarshal(raw, &job); err != nil {
		// Malformed job: log and drop, retrying cannot fix it.
		w.log.Error().Err(err).Msg("Unmarshal error, dropping job")
		return nil
	}

	emails, err := w.userRepo.ListEmailsByRoles(ctx, job.Audience.Roles())
	if err != nil {
		return err
	}

	for _, to := range emails {
		if err := w.sender.Send(ctx, mailer.Message{To: to, Subject: job.Subject, Body: job.Body}); err != nil {
			metrics.EmailsSent.WithLabelValues("error").Inc()
			w.log.Error().Err(err).Str("to", to).Msg("Send failed")
			continue
		}
		metrics.EmailsSent.WithLabelValues("ok").Inc()
	}
	return nil
}

// drain processes all remaining jobs in the queue before shutdown.
func (w *EmailWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.NoticeEmailQueue).Result()
		if err != nil {
			break
		}

		if err := w.deliver(ctx, []byte(result)); err != nil {
			w.log.Error().Err(err).Msg("Drain delivery error")
			w.rdb.RPush(ctx, config.WorkerKey.NoticeEmailQueue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining jobs")
	}
}
