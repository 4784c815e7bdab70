package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/edubel/exemption-gateway/pkg/errors"
	"github.com/edubel/exemption-gateway/pkg/storage"
)

// UploadedFile describes a stored proof document ready to be registered on a
// dossier.
type UploadedFile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UploadService receives proof documents, stores them locally and hands back
// a signed URL that the add-document operations use.
type UploadService interface {
	Store(ctx context.Context, studentID string, header *multipart.FileHeader) (*UploadedFile, error)
	Open(token string) (io.ReadCloser, string, error)
	Cleanup(olderThan time.Duration) (int, error)
}

type uploadService struct {
	files         *storage.LocalStorage
	signer        *storage.SignedURLSigner
	publicBaseURL string
	maxSize       int64
	allowedMIMEs  map[string]bool
	logger        *zap.Logger
}

// NewUploadService builds the upload sink.
func NewUploadService(files *storage.LocalStorage, signer *storage.SignedURLSigner, publicBaseURL string, maxSize int64, allowedMIMEs []string, logger *zap.Logger) UploadService {
	allowed := make(map[string]bool, len(allowedMIMEs))
	for _, mime := range allowedMIMEs {
		allowed[strings.ToLower(strings.TrimSpace(mime))] = true
	}
	return &uploadService{
		files:         files,
		signer:        signer,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxSize:       maxSize,
		allowedMIMEs:  allowed,
		logger:        logger,
	}
}

func (s *uploadService) Store(ctx context.Context, studentID string, header *multipart.FileHeader) (*UploadedFile, error) {
	if header == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no file provided")
	}
	if s.maxSize > 0 && header.Size > s.maxSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}
	contentType := strings.ToLower(header.Header.Get("Content-Type"))
	if len(s.allowedMIMEs) > 0 && !s.allowedMIMEs[contentType] {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file type %s is not accepted", contentType))
	}

	src, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read uploaded file")
	}
	defer src.Close()

	docID := uuid.NewString()
	relPath := filepath.Join(studentID, fmt.Sprintf("%s%s", docID, filepath.Ext(header.Filename)))
	if _, err := s.files.SaveStream(relPath, src); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store uploaded file")
	}

	token, expiresAt, err := s.signer.Generate(docID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign download url")
	}

	s.logger.Sugar().Infow("document stored", "student_id", studentID, "doc_id", docID, "size", header.Size)
	return &UploadedFile{
		ID:          docID,
		Name:        header.Filename,
		URL:         fmt.Sprintf("%s/documents/%s", s.publicBaseURL, token),
		ContentType: contentType,
		SizeBytes:   header.Size,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *uploadService) Open(token string) (io.ReadCloser, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid download link")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "document no longer available")
	}
	return file, filepath.Base(relPath), nil
}

func (s *uploadService) Cleanup(olderThan time.Duration) (int, error) {
	deleted, err := s.files.CleanupOlderThan(olderThan)
	if err != nil {
		return 0, err
	}
	if len(deleted) > 0 {
		s.logger.Sugar().Infow("stale uploads removed", "count", len(deleted))
	}
	return len(deleted), nil
}
