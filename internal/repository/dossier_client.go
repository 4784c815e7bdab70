package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	appErrors "github.com/edubel/exemption-gateway/pkg/errors"

	"github.com/edubel/exemption-gateway/internal/models"
)

// DossierStore is the gateway's view of the remote dossier backend. It is the
// single source of truth for dossier state; nothing here is cached or
// persisted locally.
type DossierStore interface {
	ListSections(ctx context.Context) ([]models.Section, error)
	ListCatalogUnits(ctx context.Context, sectionID string) ([]models.CatalogUnit, error)
	GetCatalogUnit(ctx context.Context, code string) (*models.CatalogUnit, error)

	ListDossiers(ctx context.Context, studentID string) ([]models.DossierSummary, error)
	CreateDossier(ctx context.Context, studentID string, req models.CreateDossierRequest) (*models.Dossier, error)
	GetDossier(ctx context.Context, dossierID string) (*models.Dossier, error)
	DeleteDossier(ctx context.Context, dossierID string) error

	AddCourse(ctx context.Context, dossierID string, input models.CourseInput) error
	AddDocument(ctx context.Context, dossierID string, input models.DocumentInput) error
	DeleteDocument(ctx context.Context, dossierID, documentID string) error
	RunAnalysis(ctx context.Context, dossierID string) error
	AddItem(ctx context.Context, dossierID string, input models.ItemInput) error
	DeleteItem(ctx context.Context, dossierID, itemID string) error
	SubmitDossier(ctx context.Context, dossierID string) error
}

// UpstreamObserver records outcome and latency of backend calls.
type UpstreamObserver interface {
	ObserveUpstream(operation string, status int, duration time.Duration)
}

type httpDossierStore struct {
	baseURL  string
	client   *http.Client
	observer UpstreamObserver
}

// NewHTTPDossierStore builds a DossierStore over HTTP/JSON. The observer may
// be nil.
func NewHTTPDossierStore(baseURL string, timeout time.Duration, observer UpstreamObserver) DossierStore {
	return &httpDossierStore{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		observer: observer,
	}
}

func (s *httpDossierStore) ListSections(ctx context.Context) ([]models.Section, error) {
	var sections []models.Section
	if err := s.do(ctx, "list_sections", http.MethodGet, "/sections", nil, &sections, "cannot load sections"); err != nil {
		return nil, err
	}
	return sections, nil
}

func (s *httpDossierStore) ListCatalogUnits(ctx context.Context, sectionID string) ([]models.CatalogUnit, error) {
	var units []models.CatalogUnit
	path := fmt.Sprintf("/sections/%s/units", sectionID)
	if err := s.do(ctx, "list_units", http.MethodGet, path, nil, &units, "cannot load the course catalog"); err != nil {
		return nil, err
	}
	return units, nil
}

func (s *httpDossierStore) GetCatalogUnit(ctx context.Context, code string) (*models.CatalogUnit, error) {
	var unit models.CatalogUnit
	path := fmt.Sprintf("/units/%s", code)
	if err := s.do(ctx, "get_unit", http.MethodGet, path, nil, &unit, "cannot load the unit detail"); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (s *httpDossierStore) ListDossiers(ctx context.Context, studentID string) ([]models.DossierSummary, error) {
	var wire []struct {
		models.DossierSummary
		Status string `json:"status"`
	}
	path := fmt.Sprintf("/students/%s/dossiers", studentID)
	if err := s.do(ctx, "list_dossiers", http.MethodGet, path, nil, &wire, "cannot load your dossiers"); err != nil {
		return nil, err
	}
	summaries := make([]models.DossierSummary, 0, len(wire))
	for _, row := range wire {
		status, err := models.ParseStatus(row.Status)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUnknownStatus.Code, appErrors.ErrUnknownStatus.Status, appErrors.ErrUnknownStatus.Message)
		}
		summary := row.DossierSummary
		summary.Status = status
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *httpDossierStore) CreateDossier(ctx context.Context, studentID string, req models.CreateDossierRequest) (*models.Dossier, error) {
	body := struct {
		models.CreateDossierRequest
		StudentID string `json:"studentId"`
	}{CreateDossierRequest: req, StudentID: studentID}

	var wire dossierWire
	if err := s.do(ctx, "create_dossier", http.MethodPost, "/dossiers", body, &wire, "cannot create the dossier"); err != nil {
		return nil, err
	}
	return wire.toModel()
}

func (s *httpDossierStore) GetDossier(ctx context.Context, dossierID string) (*models.Dossier, error) {
	var wire dossierWire
	path := fmt.Sprintf("/dossiers/%s", dossierID)
	if err := s.do(ctx, "get_dossier", http.MethodGet, path, nil, &wire, "cannot load the dossier"); err != nil {
		return nil, err
	}
	return wire.toModel()
}

func (s *httpDossierStore) DeleteDossier(ctx context.Context, dossierID string) error {
	path := fmt.Sprintf("/dossiers/%s", dossierID)
	return s.do(ctx, "delete_dossier", http.MethodDelete, path, nil, nil, "cannot delete the dossier")
}

func (s *httpDossierStore) AddCourse(ctx context.Context, dossierID string, input models.CourseInput) error {
	path := fmt.Sprintf("/dossiers/%s/courses", dossierID)
	return s.do(ctx, "add_course", http.MethodPost, path, input, nil, "cannot add the course")
}

func (s *httpDossierStore) AddDocument(ctx context.Context, dossierID string, input models.DocumentInput) error {
	path := fmt.Sprintf("/dossiers/%s/documents", dossierID)
	return s.do(ctx, "add_document", http.MethodPost, path, input, nil, "cannot attach the document")
}

func (s *httpDossierStore) DeleteDocument(ctx context.Context, dossierID, documentID string) error {
	path := fmt.Sprintf("/dossiers/%s/documents/%s", dossierID, documentID)
	return s.do(ctx, "delete_document", http.MethodDelete, path, nil, nil, "cannot delete the document")
}

func (s *httpDossierStore) RunAnalysis(ctx context.Context, dossierID string) error {
	path := fmt.Sprintf("/dossiers/%s/analysis", dossierID)
	return s.do(ctx, "run_analysis", http.MethodPost, path, nil, nil, "the matching analysis failed")
}

func (s *httpDossierStore) AddItem(ctx context.Context, dossierID string, input models.ItemInput) error {
	path := fmt.Sprintf("/dossiers/%s/items", dossierID)
	return s.do(ctx, "add_item", http.MethodPost, path, input, nil, "cannot add the exemption line")
}

func (s *httpDossierStore) DeleteItem(ctx context.Context, dossierID, itemID string) error {
	path := fmt.Sprintf("/dossiers/%s/items/%s", dossierID, itemID)
	return s.do(ctx, "delete_item", http.MethodDelete, path, nil, nil, "cannot delete the exemption line")
}

func (s *httpDossierStore) SubmitDossier(ctx context.Context, dossierID string) error {
	path := fmt.Sprintf("/dossiers/%s/submit", dossierID)
	return s.do(ctx, "submit_dossier", http.MethodPost, path, nil, nil, "the submission failed")
}

// do issues one backend request, decodes a 2xx body into out when out is non
// nil, and translates every failure into a typed error carrying the most
// specific message the backend offered.
func (s *httpDossierStore) do(ctx context.Context, operation, method, path string, body, out interface{}, fallback string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode backend request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build backend request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.observe(operation, 0, start)
		return appErrors.Wrap(err, appErrors.ErrBackendUnreachable.Code, appErrors.ErrBackendUnreachable.Status, appErrors.ErrBackendUnreachable.Message)
	}
	defer resp.Body.Close()
	s.observe(operation, resp.StatusCode, start)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrBackendUnreachable.Code, appErrors.ErrBackendUnreachable.Status, appErrors.ErrBackendUnreachable.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ExtractMessage(raw, fallback)
		if resp.StatusCode == http.StatusNotFound {
			return appErrors.Clone(appErrors.ErrNotFound, message)
		}
		return appErrors.Clone(appErrors.ErrBackendRejected, message)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrBackendRejected.Code, appErrors.ErrBackendRejected.Status, "decode backend response")
		}
	}
	return nil
}

func (s *httpDossierStore) observe(operation string, status int, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveUpstream(operation, status, time.Since(start))
	}
}

// ExtractMessage pulls the most useful human message out of an error body.
// Precedence: a plain or JSON string body verbatim, then a top-level
// "message" field, then the first value of a field-to-message map, then the
// caller's fallback.
func ExtractMessage(body []byte, fallback string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fallback
	}

	var asString string
	if err := json.Unmarshal(trimmed, &asString); err == nil {
		if asString != "" {
			return asString
		}
		return fallback
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &asObject); err != nil {
		// Not JSON at all, treat the raw body as the message.
		return string(trimmed)
	}

	if rawMsg, ok := asObject["message"]; ok {
		var msg string
		if err := json.Unmarshal(rawMsg, &msg); err == nil && msg != "" {
			return msg
		}
	}

	keys := make([]string, 0, len(asObject))
	for key := range asObject {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		var msg string
		if err := json.Unmarshal(asObject[key], &msg); err == nil && msg != "" {
			return msg
		}
	}
	return fallback
}

// dossierWire mirrors the backend payload before status normalisation.
type dossierWire struct {
	models.Dossier
	Status string `json:"status"`
}

func (w dossierWire) toModel() (*models.Dossier, error) {
	status, err := models.ParseStatus(w.Status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnknownStatus.Code, appErrors.ErrUnknownStatus.Status, appErrors.ErrUnknownStatus.Message)
	}
	d := w.Dossier
	d.Status = status
	if d.Courses == nil {
		d.Courses = []models.ExternalCourse{}
	}
	if d.Documents == nil {
		d.Documents = []models.SupportingDocument{}
	}
	if d.Items == nil {
		d.Items = []models.ExemptionItem{}
	}
	return &d, nil
}
