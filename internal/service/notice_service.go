package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/repository"
)

// Notice errors surfaced to handlers.
var (
	ErrNoticeNotFound = errors.New("notice not found")
	ErrNoticeInPast   = errors.New("notice publish time is in the past")
)

// NoticeService manages scheduled notices. Announcement itself happens in
// the notice scheduler worker.
type NoticeService struct {
	noticeRepo *repository.NoticeRepository
}

// NewNoticeService creates a new NoticeService.
func NewNoticeService(noticeRepo *repository.NoticeRepository) *NoticeService {
	return &NoticeService{noticeRepo: noticeRepo}
}

// List returns all notices.
func (s *NoticeService) List(ctx context.Context) ([]model.Notice, error) {
	return s.noticeRepo.List(ctx)
}

// Create schedules a notice for future announcement.
func (s *NoticeService) Create(ctx context.Context, createdBy string, in *model.CreateNoticeRequest) (*model.Notice, error) {
	if in.PublishAt.Before(time.Now().Add(-time.Minute)) {
		return nil, ErrNoticeInPast
	}

	notice := &model.Notice{
		Title:     in.Title,
		Body:      in.Body,
		Audience:  in.Audience,
		PublishAt: in.PublishAt.UTC(),
		CreatedBy: createdBy,
	}
	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// Update modifies a not-yet-announced notice. Announced notices are
// immutable history.
func (s *NoticeService) Update(ctx context.Context, id int64, in *model.CreateNoticeRequest) (*model.Notice, error) {
	notice, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}

	notice.Title = in.Title
	notice.Body = in.Body
	notice.Audience = in.Audience
	notice.PublishAt = in.PublishAt.UTC()

	if err := s.noticeRepo.Update(ctx, notice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return notice, nil
}

// Delete removes a notice.
func (s *NoticeService) Delete(ctx context.Context, id int64) error {
	return s.noticeRepo.Delete(ctx, id)
}
