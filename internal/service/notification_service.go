package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/edubel/exemption-gateway/internal/models"
	"github.com/edubel/exemption-gateway/internal/repository"
)

// NotificationService manages transient per-student notifications. One
// notification exists per action slot; a new outcome for the same action
// replaces the previous message instead of stacking.
type NotificationService interface {
	Push(ctx context.Context, studentID, action, message string, severity models.NotificationSeverity)
	List(ctx context.Context, studentID string) ([]models.Notification, error)
	Dismiss(ctx context.Context, studentID, notificationID string) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	ttl    time.Duration
	max    int
	logger *zap.Logger
}

// NewNotificationService builds the notification service.
func NewNotificationService(repo repository.NotificationRepository, ttl time.Duration, max int, logger *zap.Logger) NotificationService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if max <= 0 {
		max = 20
	}
	return &notificationService{repo: repo, ttl: ttl, max: max, logger: logger}
}

func (s *notificationService) Push(ctx context.Context, studentID, action, message string, severity models.NotificationSeverity) {
	n := models.Notification{
		ID:        action,
		StudentID: studentID,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}
	// Notifications are best effort, a failed push never fails the action.
	if err := s.repo.Save(ctx, n, s.ttl); err != nil {
		s.logger.Sugar().Warnw("failed to store notification", "student_id", studentID, "action", action, "error", err)
	}
}

func (s *notificationService) List(ctx context.Context, studentID string) ([]models.Notification, error) {
	notifications, err := s.repo.ListByStudent(ctx, studentID, s.max)
	if err != nil {
		return nil, err
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *notificationService) Dismiss(ctx context.Context, studentID, notificationID string) error {
	return s.repo.Delete(ctx, studentID, notificationID)
}

// noopNotificationService is used when Redis is unavailable.
type noopNotificationService struct{}

// NewNoopNotificationService returns a NotificationService that drops everything.
func NewNoopNotificationService() NotificationService { return noopNotificationService{} }

func (noopNotificationService) Push(context.Context, string, string, string, models.NotificationSeverity) {
}
func (noopNotificationService) List(context.Context, string) ([]models.Notification, error) {
	return []models.Notification{}, nil
}
func (noopNotificationService) Dismiss(context.Context, string, string) error { return nil }
