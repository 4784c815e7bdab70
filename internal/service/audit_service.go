package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edubel/exemption-gateway/pkg/jobs"

	"github.com/edubel/exemption-gateway/internal/models"
	"github.com/edubel/exemption-gateway/internal/repository"
)

// AuditService records wizard actions without blocking the request path.
type AuditService interface {
	Record(ctx context.Context, entry models.AuditLog)
	History(ctx context.Context, dossierID string, limit int) ([]models.AuditLog, error)
}

type auditService struct {
	queue  *jobs.Queue
	repo   repository.AuditRepository
	logger *zap.Logger
}

// NewAuditService wires the audit repository behind an async job queue. Call
// Start on the returned service before use and Stop on shutdown.
func NewAuditService(repo repository.AuditRepository, workers, retries int, logger *zap.Logger) (AuditService, *jobs.Queue) {
	s := &auditService{repo: repo, logger: logger}
	s.queue = jobs.NewQueue("audit", s.handle, jobs.QueueConfig{
		Workers:    workers,
		MaxRetries: retries,
		Logger:     logger,
	})
	return s, s.queue
}

func (s *auditService) Record(ctx context.Context, entry models.AuditLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "audit_log",
		Payload: entry,
	})
	if err != nil {
		s.logger.Sugar().Warnw("failed to enqueue audit entry", "action", entry.Action, "error", err)
	}
}

func (s *auditService) History(ctx context.Context, dossierID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListByDossier(ctx, dossierID, limit)
}

func (s *auditService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.AuditLog)
	if !ok {
		s.logger.Sugar().Errorw("unexpected audit payload", "job_id", job.ID)
		return nil
	}
	return s.repo.Insert(ctx, entry)
}

// noopAuditService is used when the audit database is disabled.
type noopAuditService struct{}

// NewNoopAuditService returns an AuditService that drops everything.
func NewNoopAuditService() AuditService { return noopAuditService{} }

func (noopAuditService) Record(context.Context, models.AuditLog) {}
func (noopAuditService) History(context.Context, string, int) ([]models.AuditLog, error) {
	return []models.AuditLog{}, nil
}
