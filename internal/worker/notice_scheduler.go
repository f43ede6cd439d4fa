package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/config"
	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/repository"
	"github.com/nucampus/campus-backend/internal/service"
)

// EmailJob is the queue payload handed to the email worker. The audience is
// resolved into concrete recipients at send time, so a user promoted between
// scheduling and delivery is still included.
type EmailJob struct {
	Audience model.NoticeAudience `json:"audience"`
	Subject  string               `json:"subject"`
	Body     string               `json:"body"`
}

// NoticeScheduler periodically claims due notices and announces them:
// a durable notification per audience room plus an email job on the queue.
type NoticeScheduler struct {
	noticeRepo    *repository.NoticeRepository
	notifications *service.NotificationService
	rdb           *redis.Client
	interval      time.Duration
	log           zerolog.Logger
}

// NewNoticeScheduler creates a new NoticeScheduler.
func NewNoticeScheduler(
	noticeRepo *repository.NoticeRepository,
	notifications *service.NotificationService,
	rdb *redis.Client,
	interval time.Duration,
	log zerolog.Logger,
) *NoticeScheduler {
	return &NoticeScheduler{
		noticeRepo:    noticeRepo,
		notifications: notifications,
		rdb:           rdb,
		interval:      interval,
		log:           log.With().Str("component", "notice_scheduler").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine; returns when the context
// is canceled. The first sweep runs immediately so restarts do not delay
// overdue notices.
func (w *NoticeScheduler) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep claims every due notice and announces it. The DB-side claim is
// atomic, so a notice is announced by exactly one instance.
func (w *NoticeScheduler) sweep(ctx context.Context) {
	notices, err := w.noticeRepo.ClaimDue(ctx, time.Now().UTC())
	if err != nil {
		w.log.Error().Err(err).Msg("Claim due notices failed")
		return
	}
	if len(notices) == 0 {
		return
	}

	for i := range notices {
		w.announce(ctx, &notices[i])
	}
	w.log.Info().Int("count", len(notices)).Msg("Announced due notices")
}

func (w *NoticeScheduler) announce(ctx context.Context, n *model.Notice) {
	msg := fmt.Sprintf("%s: %s", n.Title, n.Body)
	for _, room := range n.Audience.Rooms() {
		if _, err := w.notifications.Dispatch(ctx, model.NotificationNotice, room, nil, msg); err != nil {
			w.log.Error().Err(err).Int64("notice_id", n.ID).Str("room", room).Msg("Notice notification failed")
		}
	}

	job, err := json.Marshal(EmailJob{Audience: n.Audience, Subject: n.Title, Body: n.Body})
	if err != nil {
		w.log.Error().Err(err).Int64("notice_id", n.ID).Msg("Marshal email job failed")
		return
	}
	if err := w.rdb.RPush(ctx, config.WorkerKey.NoticeEmailQueue, job).Err(); err != nil {
		w.log.Error().Err(err).Int64("notice_id", n.ID).Msg("Queue email job failed")
	}
}
