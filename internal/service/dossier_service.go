package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/edubel/exemption-gateway/pkg/errors"
	"github.com/edubel/exemption-gateway/pkg/middleware/requestid"

	"github.com/edubel/exemption-gateway/internal/models"
	"github.com/edubel/exemption-gateway/internal/repository"
	"github.com/edubel/exemption-gateway/internal/wizard"
)

// DossierView is what the browser renders: the authoritative snapshot plus
// everything derived from it. Derived fields are recomputed on every fetch,
// never patched incrementally.
type DossierView struct {
	Dossier  *models.Dossier      `json:"dossier"`
	Stage    int                  `json:"stage"`
	StageKey string               `json:"stageKey"`
	Advance  wizard.AdvanceCheck  `json:"advance"`
	Analysis wizard.AnalysisCheck `json:"analysis"`
}

// DossierService orchestrates every wizard action against the dossier store.
type DossierService interface {
	List(ctx context.Context, studentID string) ([]models.DossierSummary, error)
	Create(ctx context.Context, studentID string, req models.CreateDossierRequest) (*DossierView, error)
	Get(ctx context.Context, studentID, dossierID string) (*DossierView, error)
	Delete(ctx context.Context, studentID, dossierID string) error

	AddCourse(ctx context.Context, studentID, dossierID string, input models.CourseInput) (*DossierView, error)
	AddDocument(ctx context.Context, studentID, dossierID string, input models.DocumentInput) (*DossierView, error)
	DeleteDocument(ctx context.Context, studentID, dossierID, documentID string) (*DossierView, error)
	RunAnalysis(ctx context.Context, studentID, dossierID string) (*DossierView, error)
	AddItem(ctx context.Context, studentID, dossierID string, input models.ItemInput) (*DossierView, error)
	DeleteItem(ctx context.Context, studentID, dossierID, itemID string) (*DossierView, error)
	CheckAdvance(ctx context.Context, studentID, dossierID string) (*wizard.AdvanceCheck, error)
	Submit(ctx context.Context, studentID, dossierID string, req models.SubmitRequest) (*DossierView, error)
}

type dossierService struct {
	store    repository.DossierStore
	guard    *wizard.AnalysisGuard
	notifier NotificationService
	audit    AuditService
	logger   *zap.Logger
}

// NewDossierService builds the orchestrator.
func NewDossierService(store repository.DossierStore, guard *wizard.AnalysisGuard, notifier NotificationService, audit AuditService, logger *zap.Logger) DossierService {
	return &dossierService{
		store:    store,
		guard:    guard,
		notifier: notifier,
		audit:    audit,
		logger:   logger,
	}
}

func buildView(d *models.Dossier) *DossierView {
	stage := wizard.DeriveStage(d)
	return &DossierView{
		Dossier:  d,
		Stage:    int(stage),
		StageKey: stage.String(),
		Advance:  wizard.CheckAdvance(d),
		Analysis: wizard.CheckAnalysisReady(d),
	}
}

func (s *dossierService) List(ctx context.Context, studentID string) ([]models.DossierSummary, error) {
	return s.store.ListDossiers(ctx, studentID)
}

func (s *dossierService) Create(ctx context.Context, studentID string, req models.CreateDossierRequest) (*DossierView, error) {
	created, err := s.store.CreateDossier(ctx, studentID, req)
	if err != nil {
		s.record(ctx, studentID, "", "create_dossier", err, "")
		return nil, err
	}
	s.record(ctx, studentID, created.ID, "create_dossier", nil, req.SectionID)
	s.notifier.Push(ctx, studentID, "create_dossier", "Your exemption dossier has been created.", models.SeveritySuccess)
	// Refetch rather than trusting the creation payload.
	return s.fetchOwned(ctx, studentID, created.ID)
}

func (s *dossierService) Get(ctx context.Context, studentID, dossierID string) (*DossierView, error) {
	return s.fetchOwned(ctx, studentID, dossierID)
}

func (s *dossierService) Delete(ctx context.Context, studentID, dossierID string) error {
	view, err := s.fetchOwned(ctx, studentID, dossierID)
	if err != nil {
		return err
	}
	if !view.Dossier.Status.Editable() {
		return appErrors.ErrDossierLocked
	}
	if err := s.store.DeleteDossier(ctx, dossierID); err != nil {
		s.record(ctx, studentID, dossierID, "delete_dossier", err, "")
		return err
	}
	s.record(ctx, studentID, dossierID, "delete_dossier", nil, "")
	s.notifier.Push(ctx, studentID, "delete_dossier", "The dossier has been deleted.", models.SeverityInfo)
	return nil
}

func (s *dossierService) AddCourse(ctx context.Context, studentID, dossierID string, input models.CourseInput) (*DossierView, error) {
	return s.mutate(ctx, studentID, dossierID, "add_course", input.Code,
		"The course has been added.",
		func(ctx context.Context) error { return s.store.AddCourse(ctx, dossierID, input) })
}

func (s *dossierService) AddDocument(ctx context.Context, studentID, dossierID string, input models.DocumentInput) (*DossierView, error) {
	return s.mutate(ctx, studentID, dossierID, "add_document", input.Name,
		"The document has been attached.",
		func(ctx context.Context) error { return s.store.AddDocument(ctx, dossierID, input) })
}

func (s *dossierService) DeleteDocument(ctx context.Context, studentID, dossierID, documentID string) (*DossierView, error) {
	return s.mutate(ctx, studentID, dossierID, "delete_document", documentID,
		"The document has been removed.",
		func(ctx context.Context) error { return s.store.DeleteDocument(ctx, dossierID, documentID) })
}

func (s *dossierService) AddItem(ctx context.Context, studentID, dossierID string, input models.ItemInput) (*DossierView, error) {
	return s.mutate(ctx, studentID, dossierID, "add_item", input.UnitCode,
		"The exemption line has been added.",
		func(ctx context.Context) error { return s.store.AddItem(ctx, dossierID, input) })
}

func (s *dossierService) DeleteItem(ctx context.Context, studentID, dossierID, itemID string) (*DossierView, error) {
	return s.mutate(ctx, studentID, dossierID, "delete_item", itemID,
		"The exemption line has been removed.",
		func(ctx context.Context) error { return s.store.DeleteItem(ctx, dossierID, itemID) })
}

// RunAnalysis checks the readiness gate locally before any remote call, then
// holds the per-dossier guard for the whole analysis plus its refetch.
func (s *dossierService) RunAnalysis(ctx context.Context, studentID, dossierID string) (*DossierView, error) {
	view, err := s.fetchOwned(ctx, studentID, dossierID)
	if err != nil {
		return nil, err
	}
	if !view.Dossier.Status.Editable() {
		return nil, appErrors.ErrDossierLocked
	}
	if check := view.Analysis; !check.Ready {
		err := appErrors.Clone(appErrors.ErrPrecondition, check.Reason())
		s.notifier.Push(ctx, studentID, "run_analysis", check.Reason(), models.SeverityWarning)
		return nil, err
	}

	if !s.guard.Acquire(dossierID) {
		return nil, appErrors.ErrAnalysisPending
	}
	defer s.guard.Release(dossierID)

	if err := s.store.RunAnalysis(ctx, dossierID); err != nil {
		s.record(ctx, studentID, dossierID, "run_analysis", err, "")
		s.notifier.Push(ctx, studentID, "run_analysis", messageOf(err, "the matching analysis failed"), models.SeverityError)
		return nil, err
	}
	refreshed, err := s.fetchOwned(ctx, studentID, dossierID)
	if err != nil {
		return nil, err
	}
	s.record(ctx, studentID, dossierID, "run_analysis", nil, fmt.Sprintf("%d items", len(refreshed.Dossier.Items)))
	s.notifier.Push(ctx, studentID, "run_analysis", "The matching analysis has completed.", models.SeveritySuccess)
	return refreshed, nil
}

func (s *dossierService) CheckAdvance(ctx context.Context, studentID, dossierID string) (*wizard.AdvanceCheck, error) {
	view, err := s.fetchOwned(ctx, studentID, dossierID)
	if err != nil {
		return nil, err
	}
	check := view.Advance
	if !check.OK {
		return &check, appErrors.Clone(appErrors.ErrPrecondition, advanceReason(check))
	}
	return &check, nil
}

// Submit is two-phase: without the explicit confirmation the remote store is
// never contacted.
func (s *dossierService) Submit(ctx context.Context, studentID, dossierID string, req models.SubmitRequest) (*DossierView, error) {
	if !req.Confirm {
		return nil, appErrors.ErrConfirmRequired
	}
	view, err := s.fetchOwned(ctx, studentID, dossierID)
	if err != nil {
		return nil, err
	}
	if !view.Dossier.Status.Editable() {
		return nil, appErrors.ErrDossierLocked
	}
	if check := view.Advance; !check.OK {
		return nil, appErrors.Clone(appErrors.ErrPrecondition, advanceReason(check))
	}
	if s.guard.Busy(dossierID) {
		return nil, appErrors.ErrAnalysisPending
	}

	if err := s.store.SubmitDossier(ctx, dossierID); err != nil {
		s.record(ctx, studentID, dossierID, "submit_dossier", err, "")
		s.notifier.Push(ctx, studentID, "submit_dossier", messageOf(err, "the submission failed"), models.SeverityError)
		return nil, err
	}
	refreshed, err := s.fetchOwned(ctx, studentID, dossierID)
	if err != nil {
		return nil, err
	}
	s.record(ctx, studentID, dossierID, "submit_dossier", nil, "")
	s.notifier.Push(ctx, studentID, "submit_dossier", "Your dossier has been submitted for review.", models.SeveritySuccess)
	return refreshed, nil
}

// mutate runs one remote mutation with the shared pre-flight checks, then
// refetches the dossier so derived state never drifts from the store.
func (s *dossierService) mutate(ctx context.Context, studentID, dossierID, action, detail, successMsg string, call func(context.Context) error) (*DossierView, error) {
	view, err := s.fetchOwned(ctx, studentID, dossierID)
	if err != nil {
		return nil, err
	}
	if !view.Dossier.Status.Editable() {
		return nil, appErrors.ErrDossierLocked
	}
	if s.guard.Busy(dossierID) {
		return nil, appErrors.ErrAnalysisPending
	}

	if err := call(ctx); err != nil {
		s.record(ctx, studentID, dossierID, action, err, detail)
		s.notifier.Push(ctx, studentID, action, messageOf(err, "the action failed"), models.SeverityError)
		return nil, err
	}

	refreshed, err := s.fetchOwned(ctx, studentID, dossierID)
	if err != nil {
		return nil, err
	}
	s.record(ctx, studentID, dossierID, action, nil, detail)
	s.notifier.Push(ctx, studentID, action, successMsg, models.SeveritySuccess)
	return refreshed, nil
}

// fetchOwned loads the authoritative snapshot and enforces that it belongs to
// the session student.
func (s *dossierService) fetchOwned(ctx context.Context, studentID, dossierID string) (*DossierView, error) {
	dossier, err := s.store.GetDossier(ctx, dossierID)
	if err != nil {
		return nil, err
	}
	if dossier.StudentID != studentID {
		return nil, appErrors.ErrForbidden
	}
	return buildView(dossier), nil
}

func (s *dossierService) record(ctx context.Context, studentID, dossierID, action string, err error, detail string) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
		if detail == "" {
			detail = err.Error()
		}
	}
	s.audit.Record(ctx, models.AuditLog{
		StudentID: studentID,
		DossierID: dossierID,
		Action:    action,
		Outcome:   outcome,
		Detail:    detail,
		RequestID: requestid.FromContext(ctx),
	})
}

func advanceReason(check wizard.AdvanceCheck) string {
	if check.NoItems {
		return "add at least one exemption line before continuing"
	}
	return "every course must be used by an exemption line, still unused: " + strings.Join(check.OrphanLabels, ", ")
}

func messageOf(err error, fallback string) string {
	appErr := appErrors.FromError(err)
	if appErr != nil && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
