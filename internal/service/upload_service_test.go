package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edubel/exemption-gateway/pkg/storage"
)

func multipartHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	partHeader.Set("Content-Type", contentType)
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func newTestUploadService(t *testing.T, maxSize int64, mimes []string) UploadService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewUploadService(files, signer, "http://localhost:8080/api/v1", maxSize, mimes, zap.NewNop())
}

func TestUploadStoreAndOpenRoundTrip(t *testing.T) {
	svc := newTestUploadService(t, 1<<20, []string{"application/pdf"})
	header := multipartHeader(t, "bulletin.pdf", "application/pdf", []byte("%PDF-1.4 test"))

	uploaded, err := svc.Store(context.Background(), "s-1", header)
	require.NoError(t, err)
	assert.NotEmpty(t, uploaded.ID)
	assert.Contains(t, uploaded.URL, "/documents/")

	token := uploaded.URL[len("http://localhost:8080/api/v1/documents/"):]
	file, name, err := svc.Open(token)
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(content))
	assert.Contains(t, name, uploaded.ID)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := newTestUploadService(t, 4, []string{"application/pdf"})
	header := multipartHeader(t, "big.pdf", "application/pdf", []byte("way too large"))

	_, err := svc.Store(context.Background(), "s-1", header)
	require.Error(t, err)
}

func TestUploadRejectsDisallowedMIME(t *testing.T) {
	svc := newTestUploadService(t, 1<<20, []string{"application/pdf"})
	header := multipartHeader(t, "notes.txt", "text/plain", []byte("plain text"))

	_, err := svc.Store(context.Background(), "s-1", header)
	require.Error(t, err)
}

func TestOpenRejectsForgedToken(t *testing.T) {
	svc := newTestUploadService(t, 1<<20, nil)
	_, _, err := svc.Open("doc-1.123.abc.deadbeef")
	require.Error(t, err)
}
