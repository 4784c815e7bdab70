package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edubel/exemption-gateway/internal/models"
)

// NotificationRepository stores transient per-student notifications. Each
// notification lives under its own key so a replacement by ID is a plain
// overwrite and expiry needs no sweeping.
type NotificationRepository interface {
	Save(ctx context.Context, n models.Notification, ttl time.Duration) error
	ListByStudent(ctx context.Context, studentID string, limit int) ([]models.Notification, error)
	Delete(ctx context.Context, studentID, notificationID string) error
}

type redisNotificationRepository struct {
	client *redis.Client
}

// NewRedisNotificationRepository builds a Redis-backed notification store.
func NewRedisNotificationRepository(client *redis.Client) NotificationRepository {
	return &redisNotificationRepository{client: client}
}

func notificationKey(studentID, id string) string {
	return fmt.Sprintf("notif:%s:%s", studentID, id)
}

func (r *redisNotificationRepository) Save(ctx context.Context, n models.Notification, ttl time.Duration) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, notificationKey(n.StudentID, n.ID), raw, ttl).Err()
}

func (r *redisNotificationRepository) ListByStudent(ctx context.Context, studentID string, limit int) ([]models.Notification, error) {
	pattern := notificationKey(studentID, "*")
	keys := make([]string, 0, limit)

	iter := r.client.Scan(ctx, 0, pattern, int64(limit)).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if limit > 0 && len(keys) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []models.Notification{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	notifications := make([]models.Notification, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var n models.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *redisNotificationRepository) Delete(ctx context.Context, studentID, notificationID string) error {
	return r.client.Del(ctx, notificationKey(studentID, notificationID)).Err()
}
