package cv

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpclient "candidate-sync/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newParser() *CVParser {
	return NewCVParser(httpclient.NewClient(time.Second), zap.NewNop())
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("https://files.example/CV.PDF?token=1"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ContentType("https://files.example/cv.docx"))
	assert.Equal(t, "application/msword", ContentType("https://files.example/cv.doc"))
	assert.Equal(t, "application/octet-stream", ContentType("https://files.example/cv"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "dana.pdf", FileName("https://files.example/cvs/dana.pdf?sig=abc"))
	assert.Equal(t, "cv", FileName("https://files.example/"))
	assert.Equal(t, "cv", FileName(""))
}

func TestOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.pdf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("%PDF-1.4 body"))
	}))
	defer srv.Close()

	f, err := newParser().Open(context.Background(), srv.URL+"/dana.pdf")
	require.NoError(t, err)
	defer f.Body.Close()
	assert.Equal(t, "dana.pdf", f.Filename)
	assert.Equal(t, "application/pdf", f.ContentType)
	body, err := io.ReadAll(f.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(body))

	_, err = newParser().Open(context.Background(), srv.URL+"/missing.pdf")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestParseURL_PlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("  דנה לוי\nמנהלת חשבונות  \n"))
	}))
	defer srv.Close()

	parsed, err := newParser().ParseURL(context.Background(), srv.URL+"/dana.txt")

	require.NoError(t, err)
	assert.Equal(t, ".txt", parsed.FileType)
	assert.Equal(t, "דנה לוי\nמנהלת חשבונות", parsed.FullText)
}

func TestParseURL_UnsupportedType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("binary"))
	}))
	defer srv.Close()

	_, err := newParser().ParseURL(context.Background(), srv.URL+"/photo.png")

	assert.ErrorIs(t, err, ErrUnsupportedType)
}
