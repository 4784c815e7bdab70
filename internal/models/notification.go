package models

import "time"

// NotificationSeverity classifies a transient notification.
type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "INFO"
	SeveritySuccess NotificationSeverity = "SUCCESS"
	SeverityWarning NotificationSeverity = "WARNING"
	SeverityError   NotificationSeverity = "ERROR"
)

// Notification is a transient per-student message. The ID is stable per
// action slot so a newer notification replaces the previous one instead of
// stacking.
type Notification struct {
	ID        string               `json:"id"`
	StudentID string               `json:"studentId"`
	Message   string               `json:"message"`
	Severity  NotificationSeverity `json:"severity"`
	CreatedAt time.Time            `json:"createdAt"`
}
