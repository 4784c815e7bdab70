package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/edubel/exemption-gateway/pkg/errors"

	"github.com/edubel/exemption-gateway/internal/models"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) DossierStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPDossierStore(server.URL, 2*time.Second, nil)
}

func TestExtractMessagePrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"json string verbatim", `"quota exceeded"`, "quota exceeded"},
		{"plain text verbatim", "backend exploded", "backend exploded"},
		{"message field", `{"message":"course already present","code":"DUP"}`, "course already present"},
		{"field map first value", `{"ects":"must be positive","title":"required"}`, "must be positive"},
		{"message wins over fields", `{"aaa":"field msg","message":"the message"}`, "the message"},
		{"empty body falls back", "", "fallback"},
		{"unusable json falls back", `{"count":3}`, "fallback"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractMessage([]byte(tc.body), "fallback"))
		})
	}
}

func TestGetDossierNormalisesStatus(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dossiers/d-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"d-1","studentId":"s-1","status":"APPROVED","courses":[{"id":"c-1","institution":"HE Vinci","code":"MATH1","title":"Analyse","ects":5}]}`))
	})

	dossier, err := store.GetDossier(context.Background(), "d-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, dossier.Status)
	assert.Len(t, dossier.Courses, 1)
	assert.NotNil(t, dossier.Items)
	assert.NotNil(t, dossier.Documents)
}

func TestGetDossierUnknownStatusIsError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"d-1","status":"ARCHIVED"}`))
	})

	_, err := store.GetDossier(context.Background(), "d-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnknownStatus.Code, appErrors.FromError(err).Code)
}

func TestGetDossierNotFound(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such dossier", http.StatusNotFound)
	})

	_, err := store.GetDossier(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "no such dossier", appErr.Message)
}

func TestAddCourseBackendRejection(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"ects":"must be positive"}`))
	})

	err := store.AddCourse(context.Background(), "d-1", models.CourseInput{
		Institution: "HE Vinci", Code: "MATH1", Title: "Analyse", ECTS: -1,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrBackendRejected.Code, appErr.Code)
	assert.Equal(t, "must be positive", appErr.Message)
}

func TestUnreachableBackend(t *testing.T) {
	store := NewHTTPDossierStore("http://127.0.0.1:1", 200*time.Millisecond, nil)

	err := store.SubmitDossier(context.Background(), "d-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBackendUnreachable.Code, appErrors.FromError(err).Code)
}

func TestListDossiersNormalisesStatuses(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students/s-1/dossiers", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"d-1","status":"UNDER_REVIEW","itemCount":2},{"id":"d-2","status":"DRAFT","itemCount":0}]`))
	})

	summaries, err := store.ListDossiers(context.Background(), "s-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, models.StatusInReview, summaries[0].Status)
	assert.Equal(t, models.StatusDraft, summaries[1].Status)
}
