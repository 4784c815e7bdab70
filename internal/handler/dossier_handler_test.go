package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubel/exemption-gateway/internal/middleware"
	"github.com/edubel/exemption-gateway/internal/models"
	"github.com/edubel/exemption-gateway/internal/service"
	"github.com/edubel/exemption-gateway/internal/wizard"
	appErrors "github.com/edubel/exemption-gateway/pkg/errors"
)

// fakeDossierService records calls and plays back canned results.
type fakeDossierService struct {
	submitCalls  int
	submitReq    models.SubmitRequest
	advanceCheck *wizard.AdvanceCheck
	advanceErr   error
	view         *service.DossierView
	err          error
}

func (f *fakeDossierService) List(context.Context, string) ([]models.DossierSummary, error) {
	return []models.DossierSummary{}, f.err
}
func (f *fakeDossierService) Create(context.Context, string, models.CreateDossierRequest) (*service.DossierView, error) {
	return f.view, f.err
}
func (f *fakeDossierService) Get(context.Context, string, string) (*service.DossierView, error) {
	return f.view, f.err
}
func (f *fakeDossierService) Delete(context.Context, string, string) error { return f.err }
func (f *fakeDossierService) AddCourse(context.Context, string, string, models.CourseInput) (*service.DossierView, error) {
	return f.view, f.err
}
func (f *fakeDossierService) AddDocument(context.Context, string, string, models.DocumentInput) (*service.DossierView, error) {
	return f.view, f.err
}
func (f *fakeDossierService) DeleteDocument(context.Context, string, string, string) (*service.DossierView, error) {
	return f.view, f.err
}
func (f *fakeDossierService) RunAnalysis(context.Context, string, string) (*service.DossierView, error) {
	return f.view, f.err
}
func (f *fakeDossierService) AddItem(context.Context, string, string, models.ItemInput) (*service.DossierView, error) {
	return f.view, f.err
}
func (f *fakeDossierService) DeleteItem(context.Context, string, string, string) (*service.DossierView, error) {
	return f.view, f.err
}
func (f *fakeDossierService) CheckAdvance(context.Context, string, string) (*wizard.AdvanceCheck, error) {
	return f.advanceCheck, f.advanceErr
}
func (f *fakeDossierService) Submit(_ context.Context, _, _ string, req models.SubmitRequest) (*service.DossierView, error) {
	f.submitCalls++
	f.submitReq = req
	if !req.Confirm {
		return nil, appErrors.ErrConfirmRequired
	}
	return f.view, f.err
}

func testRouter(svc service.DossierService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetSessionClaims(c, &models.JWTClaims{StudentID: "s-1"})
	})
	h := NewDossierHandler(svc, service.NewNoopAuditService())
	r.POST("/dossiers/:id/submit", h.Submit)
	r.POST("/dossiers/:id/advance", h.Advance)
	r.GET("/dossiers/:id", h.Get)
	return r
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitWithoutConfirmationIsRefused(t *testing.T) {
	svc := &fakeDossierService{}
	r := testRouter(svc)

	w := performJSON(t, r, http.MethodPost, "/dossiers/d-1/submit", models.SubmitRequest{Confirm: false})

	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrConfirmRequired.Code, envelope.Error.Code)
}

func TestSubmitConfirmedReturnsView(t *testing.T) {
	svc := &fakeDossierService{view: &service.DossierView{
		Dossier:  &models.Dossier{ID: "d-1", Status: models.StatusSubmitted},
		Stage:    5,
		StageKey: "TRACKING",
	}}
	r := testRouter(svc)

	w := performJSON(t, r, http.MethodPost, "/dossiers/d-1/submit", models.SubmitRequest{Confirm: true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.submitCalls)
	assert.True(t, svc.submitReq.Confirm)

	var envelope struct {
		Data service.DossierView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 5, envelope.Data.Stage)
}

func TestAdvanceRefusalCarriesOrphanDetails(t *testing.T) {
	svc := &fakeDossierService{
		advanceCheck: &wizard.AdvanceCheck{OK: false, OrphanLabels: []string{"MATH1 Analyse"}},
		advanceErr:   appErrors.Clone(appErrors.ErrPrecondition, "every course must be used by an exemption line"),
	}
	r := testRouter(svc)

	w := performJSON(t, r, http.MethodPost, "/dossiers/d-1/advance", nil)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	var envelope struct {
		Data  wizard.AdvanceCheck `json:"data"`
		Error *appErrors.Error    `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, []string{"MATH1 Analyse"}, envelope.Data.OrphanLabels)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrPrecondition.Code, envelope.Error.Code)
}

func TestGetUnknownDossierIs404(t *testing.T) {
	svc := &fakeDossierService{err: appErrors.Clone(appErrors.ErrNotFound, "no such dossier")}
	r := testRouter(svc)

	w := performJSON(t, r, http.MethodGet, "/dossiers/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
