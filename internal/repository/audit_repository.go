package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/edubel/exemption-gateway/internal/models"
)

// AuditRepository persists the gateway's trail of wizard actions.
type AuditRepository interface {
	Insert(ctx context.Context, entry models.AuditLog) error
	ListByDossier(ctx context.Context, dossierID string, limit int) ([]models.AuditLog, error)
}

type postgresAuditRepository struct {
	db *sqlx.DB
}

// NewPostgresAuditRepository builds a Postgres-backed audit trail.
func NewPostgresAuditRepository(db *sqlx.DB) AuditRepository {
	return &postgresAuditRepository{db: db}
}

func (r *postgresAuditRepository) Insert(ctx context.Context, entry models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (student_id, dossier_id, action, outcome, detail, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		entry.StudentID, entry.DossierID, entry.Action, entry.Outcome, entry.Detail, entry.RequestID, entry.CreatedAt)
	return err
}

func (r *postgresAuditRepository) ListByDossier(ctx context.Context, dossierID string, limit int) ([]models.AuditLog, error) {
	query := `
		SELECT id, student_id, dossier_id, action, outcome, detail, request_id, created_at
		FROM audit_logs
		WHERE dossier_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	logs := []models.AuditLog{}
	if err := r.db.SelectContext(ctx, &logs, query, dossierID, limit); err != nil {
		return nil, err
	}
	return logs, nil
}
