package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/edubel/exemption-gateway/pkg/errors"

	"github.com/edubel/exemption-gateway/internal/models"
	"github.com/edubel/exemption-gateway/internal/wizard"
)

// stubStore serves canned dossiers and counts mutating calls. Mutations only
// change the canned snapshot when mutateEffect is set, which mimics the real
// store: local state must come from the refetch, never from the request.
type stubStore struct {
	dossier      *models.Dossier
	sections     []models.Section
	units        []models.CatalogUnit
	sectionCalls int
	getCalls     int
	addCourses   int
	analyses     int
	submits      int
	deletes      int
	failMutation error
	mutateEffect func(*models.Dossier)
}

func (s *stubStore) ListSections(context.Context) ([]models.Section, error) {
	s.sectionCalls++
	return s.sections, nil
}
func (s *stubStore) ListCatalogUnits(context.Context, string) ([]models.CatalogUnit, error) {
	return s.units, nil
}
func (s *stubStore) GetCatalogUnit(context.Context, string) (*models.CatalogUnit, error) {
	if len(s.units) == 0 {
		return nil, nil
	}
	return &s.units[0], nil
}
func (s *stubStore) ListDossiers(context.Context, string) ([]models.DossierSummary, error) {
	return nil, nil
}
func (s *stubStore) CreateDossier(_ context.Context, studentID string, _ models.CreateDossierRequest) (*models.Dossier, error) {
	return s.dossier, nil
}

func (s *stubStore) GetDossier(context.Context, string) (*models.Dossier, error) {
	s.getCalls++
	copied := *s.dossier
	return &copied, nil
}

func (s *stubStore) DeleteDossier(context.Context, string) error {
	s.deletes++
	return s.failMutation
}

func (s *stubStore) mutated() error {
	if s.failMutation != nil {
		return s.failMutation
	}
	if s.mutateEffect != nil {
		s.mutateEffect(s.dossier)
	}
	return nil
}

func (s *stubStore) AddCourse(context.Context, string, models.CourseInput) error {
	s.addCourses++
	return s.mutated()
}
func (s *stubStore) AddDocument(context.Context, string, models.DocumentInput) error {
	return s.mutated()
}
func (s *stubStore) DeleteDocument(context.Context, string, string) error { return s.mutated() }
func (s *stubStore) RunAnalysis(context.Context, string) error {
	s.analyses++
	return s.mutated()
}
func (s *stubStore) AddItem(context.Context, string, models.ItemInput) error { return s.mutated() }
func (s *stubStore) DeleteItem(context.Context, string, string) error        { return s.mutated() }
func (s *stubStore) SubmitDossier(context.Context, string) error {
	s.submits++
	return s.mutated()
}

type stubNotifier struct {
	pushed []models.Notification
}

func (n *stubNotifier) Push(_ context.Context, studentID, action, message string, severity models.NotificationSeverity) {
	n.pushed = append(n.pushed, models.Notification{ID: action, StudentID: studentID, Message: message, Severity: severity})
}
func (n *stubNotifier) List(context.Context, string) ([]models.Notification, error) {
	return nil, nil
}
func (n *stubNotifier) Dismiss(context.Context, string, string) error { return nil }

func newTestService(store *stubStore) (DossierService, *stubNotifier, *wizard.AnalysisGuard) {
	notifier := &stubNotifier{}
	guard := wizard.NewAnalysisGuard()
	svc := NewDossierService(store, guard, notifier, NewNoopAuditService(), zap.NewNop())
	return svc, notifier, guard
}

func editableDossier() *models.Dossier {
	return &models.Dossier{
		ID:        "d-1",
		StudentID: "s-1",
		Status:    models.StatusDraft,
		Courses: []models.ExternalCourse{
			{ID: "c-1", Code: "MATH1", Title: "Analyse", ECTS: 5},
		},
		Documents: []models.SupportingDocument{
			{ID: "doc-1", Kind: models.DocumentBulletin, Name: "bulletin.pdf"},
		},
	}
}

func TestAddCourseRefetchesAfterMutation(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.mutateEffect = func(d *models.Dossier) {
		d.Courses = append(d.Courses, models.ExternalCourse{ID: "c-2", Code: "PROG1", Title: "Programmation", ECTS: 6})
	}
	svc, notifier, _ := newTestService(store)

	view, err := svc.AddCourse(context.Background(), "s-1", "d-1", models.CourseInput{
		Institution: "HE Vinci", Code: "PROG1", Title: "Programmation", ECTS: 6,
	})
	require.NoError(t, err)

	// One fetch pre-flight, one refetch after the mutation.
	assert.Equal(t, 2, store.getCalls)
	assert.Len(t, view.Dossier.Courses, 2)
	require.Len(t, notifier.pushed, 1)
	assert.Equal(t, models.SeveritySuccess, notifier.pushed[0].Severity)
}

func TestFailedMutationLeavesNothingBehind(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.failMutation = appErrors.Clone(appErrors.ErrBackendRejected, "course already present")
	svc, notifier, _ := newTestService(store)

	_, err := svc.AddCourse(context.Background(), "s-1", "d-1", models.CourseInput{
		Institution: "HE Vinci", Code: "MATH1", Title: "Analyse", ECTS: 5,
	})
	require.Error(t, err)
	assert.Equal(t, "course already present", appErrors.FromError(err).Message)

	// No refetch after failure and the snapshot is untouched.
	assert.Equal(t, 1, store.getCalls)
	assert.Len(t, store.dossier.Courses, 1)
	require.Len(t, notifier.pushed, 1)
	assert.Equal(t, models.SeverityError, notifier.pushed[0].Severity)
}

func TestMutationRefusedOnSubmittedDossier(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.dossier.Status = models.StatusSubmitted
	svc, _, _ := newTestService(store)

	_, err := svc.AddCourse(context.Background(), "s-1", "d-1", models.CourseInput{
		Institution: "X", Code: "Y", Title: "Z", ECTS: 1,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDossierLocked.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, store.addCourses)
}

func TestMutationRefusedWhileAnalysisInFlight(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	svc, _, guard := newTestService(store)

	require.True(t, guard.Acquire("d-1"))
	defer guard.Release("d-1")

	_, err := svc.AddCourse(context.Background(), "s-1", "d-1", models.CourseInput{
		Institution: "X", Code: "Y", Title: "Z", ECTS: 1,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAnalysisPending.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, store.addCourses)
}

func TestRunAnalysisRefusedWhenNotReady(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.dossier.Documents = nil
	svc, _, _ := newTestService(store)

	_, err := svc.RunAnalysis(context.Background(), "s-1", "d-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPrecondition.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, store.analyses, "gate failures must not reach the backend")
}

func TestRunAnalysisRefusedWithoutCourses(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.dossier.Courses = nil
	svc, _, _ := newTestService(store)

	_, err := svc.RunAnalysis(context.Background(), "s-1", "d-1")
	require.Error(t, err)
	assert.Equal(t, 0, store.analyses)
}

func TestRunAnalysisReleasesGuard(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.mutateEffect = func(d *models.Dossier) {
		d.Items = []models.ExemptionItem{{ID: "i-1", CourseIDs: []string{"c-1"}, UnitCode: "UE101", Decision: models.DecisionNeedsReview}}
	}
	svc, _, guard := newTestService(store)

	view, err := svc.RunAnalysis(context.Background(), "s-1", "d-1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.analyses)
	assert.Equal(t, int(3), view.Stage)
	assert.False(t, guard.Busy("d-1"))
}

func TestSubmitRequiresConfirmation(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.dossier.Items = []models.ExemptionItem{{ID: "i-1", CourseIDs: []string{"c-1"}, UnitCode: "UE101"}}
	svc, _, _ := newTestService(store)

	_, err := svc.Submit(context.Background(), "s-1", "d-1", models.SubmitRequest{Confirm: false})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConfirmRequired.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, store.submits, "unconfirmed submit must never reach the backend")
	assert.Equal(t, 0, store.getCalls)
}

func TestSubmitConfirmedMovesToTracking(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.dossier.Items = []models.ExemptionItem{{ID: "i-1", CourseIDs: []string{"c-1"}, UnitCode: "UE101"}}
	store.mutateEffect = func(d *models.Dossier) {
		d.Status = models.StatusSubmitted
	}
	svc, _, _ := newTestService(store)

	view, err := svc.Submit(context.Background(), "s-1", "d-1", models.SubmitRequest{Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 1, store.submits)
	assert.Equal(t, int(5), view.Stage)
	assert.Equal(t, "TRACKING", view.StageKey)
}

func TestSubmitRefusedWithOrphanCourses(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	svc, _, _ := newTestService(store)

	_, err := svc.Submit(context.Background(), "s-1", "d-1", models.SubmitRequest{Confirm: true})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPrecondition.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, store.submits)
}

func TestCheckAdvanceReportsOrphans(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.dossier.Items = []models.ExemptionItem{{ID: "i-1", CourseIDs: []string{"other"}, UnitCode: "UE101"}}
	svc, _, _ := newTestService(store)

	check, err := svc.CheckAdvance(context.Background(), "s-1", "d-1")
	require.Error(t, err)
	require.NotNil(t, check)
	assert.Equal(t, []string{"MATH1 Analyse"}, check.OrphanLabels)
}

func TestGetEnforcesOwnership(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	svc, _, _ := newTestService(store)

	_, err := svc.Get(context.Background(), "someone-else", "d-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestDeleteRefusedPostSubmission(t *testing.T) {
	store := &stubStore{dossier: editableDossier()}
	store.dossier.Status = models.StatusInReview
	svc, _, _ := newTestService(store)

	err := svc.Delete(context.Background(), "s-1", "d-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDossierLocked.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, store.deletes)
}
