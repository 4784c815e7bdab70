package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubel/exemption-gateway/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestAuditInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAuditRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs("s-1", "d-1", "add_course", "success", "MATH1", "req-1", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), models.AuditLog{
		StudentID: "s-1",
		DossierID: "d-1",
		Action:    "add_course",
		Outcome:   "success",
		Detail:    "MATH1",
		RequestID: "req-1",
		CreatedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditListByDossier(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAuditRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "student_id", "dossier_id", "action", "outcome", "detail", "request_id", "created_at"}).
		AddRow(int64(2), "s-1", "d-1", "submit_dossier", "success", "", "req-2", now).
		AddRow(int64(1), "s-1", "d-1", "add_course", "success", "MATH1", "req-1", now.Add(-time.Minute))

	mock.ExpectQuery("SELECT (.+) FROM audit_logs").
		WithArgs("d-1", 20).
		WillReturnRows(rows)

	logs, err := repo.ListByDossier(context.Background(), "d-1", 20)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "submit_dossier", logs[0].Action)
	require.NoError(t, mock.ExpectationsWereMet())
}
