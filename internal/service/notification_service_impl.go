package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/omnigratum/timeclock/internal/clock"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
)

// StoreDispatcher persists notifications through a NotificationRepo. When
// built from a tx-scoped repo the enqueue commits atomically with the
// status transition that produced it.
type StoreDispatcher struct {
	notifications repository.NotificationRepo
	clk           clock.Clock
}

func NewStoreDispatcher(notifications repository.NotificationRepo, clk clock.Clock) *StoreDispatcher {
	return &StoreDispatcher{notifications: notifications, clk: clk}
}

func (d *StoreDispatcher) Enqueue(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = d.clk.Now()
	return d.notifications.Create(ctx, n)
}

type notificationService struct {
	notifications repository.NotificationRepo
}

func NewNotificationService(notifications repository.NotificationRepo) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) List(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.notifications.ListByUser(ctx, userID, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifications.MarkAllRead(ctx, userID)
}
