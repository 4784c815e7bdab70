package models

import "time"

// AuditLog records a wizard action in the gateway's own trail. Dossier state
// itself is never persisted here, only what was done to it and by whom.
type AuditLog struct {
	ID        int64     `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"studentId"`
	DossierID string    `db:"dossier_id" json:"dossierId"`
	Action    string    `db:"action" json:"action"`
	Outcome   string    `db:"outcome" json:"outcome"`
	Detail    string    `db:"detail" json:"detail,omitempty"`
	RequestID string    `db:"request_id" json:"requestId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
