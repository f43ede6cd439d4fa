package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/config"
	"github.com/nucampus/campus-backend/internal/metrics"
	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/realtime"
	"github.com/nucampus/campus-backend/internal/repository"
)

// NotificationService persists notifications and pushes them to connected
// clients. The row insert is the operation; the realtime publish is a
// latency optimization that may silently fail.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	rdb              *redis.Client
	log              zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo *repository.NotificationRepository, rdb *redis.Client, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		rdb:              rdb,
		log:              log.With().Str("component", "notification_service").Logger(),
	}
}

// Dispatch writes a notification addressed to a room (a role room or a
// user's email) and then best-effort publishes it on the room's Redis
// channel. Persistence failure is returned; publish failure is only logged.
func (s *NotificationService) Dispatch(ctx context.Context, kind model.NotificationKind, recipient string, courseID *uuid.UUID, message string) (*model.Notification, error) {
	n := &model.Notification{
		Kind:            kind,
		Recipient:       recipient,
		CourseID:        courseID,
		Message:         message,
		ApplicationDate: time.Now().UTC(),
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	metrics.NotificationsDispatched.WithLabelValues(string(kind)).Inc()

	payload, err := json.Marshal(realtime.NotificationEvent{
		Event:        realtime.EventNotification,
		Notification: n,
	})
	if err == nil {
		err = s.rdb.Publish(ctx, config.CacheKey.NotifyChannel(recipient), payload).Err()
	}
	if err != nil {
		metrics.NotificationPublishErrors.Inc()
		s.log.Warn().Err(err).
			Str("recipient", recipient).
			Str("kind", string(kind)).
			Msg("Realtime publish failed, row persisted")
	}

	return n, nil
}

// List returns the notifications addressed to the caller: their email room
// plus their role room.
func (s *NotificationService) List(ctx context.Context, claims *Claims, limit int) ([]model.Notification, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.notificationRepo.ListForRecipients(ctx, claims.Rooms(), limit)
}

// MarkSeen marks the given ids seen, scoped to the caller's rooms. The
// returned count reflects only rows the caller actually owns.
func (s *NotificationService) MarkSeen(ctx context.Context, claims *Claims, ids []int64) (int64, error) {
	return s.notificationRepo.MarkSeen(ctx, claims.Rooms(), ids)
}
