package cv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	httpclient "candidate-sync/pkg/http"

	"code.sajari.com/docconv"
	"go.uber.org/zap"
)

var (
	// ErrFetchFailed means the CV host did not return the file.
	ErrFetchFailed = errors.New("failed to fetch file")
	// ErrUnsupportedType is returned for files text cannot be extracted from.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// maxTextBytes bounds how much of a plain text CV is read.
const maxTextBytes = 10 << 20

// File is an opened remote CV. The caller must close Body.
type File struct {
	Filename    string
	ContentType string
	Size        int64 // -1 when unknown
	Body        io.ReadCloser
}

type ParsedCV struct {
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
	FullText string `json:"text"`
}

// CVParser downloads CVs linked from candidates and extracts their text.
type CVParser struct {
	client *httpclient.Client
	logger *zap.Logger
}

func NewCVParser(client *httpclient.Client, logger *zap.Logger) *CVParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CVParser{client: client, logger: logger}
}

// Open streams the file behind cvURL.
func (p *CVParser) Open(ctx context.Context, cvURL string) (*File, error) {
	resp, err := p.client.GetStream(ctx, cvURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	body := resp.RawBody()
	if resp.StatusCode() != http.StatusOK {
		body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode())
	}
	return &File{
		Filename:    FileName(cvURL),
		ContentType: ContentType(cvURL),
		Size:        resp.RawResponse.ContentLength,
		Body:        body,
	}, nil
}

// ParseURL downloads the CV and extracts its text.
func (p *CVParser) ParseURL(ctx context.Context, cvURL string) (*ParsedCV, error) {
	f, err := p.Open(ctx, cvURL)
	if err != nil {
		return nil, err
	}
	defer f.Body.Close()

	fileType := strings.ToLower(path.Ext(f.Filename))
	var text string

	switch fileType {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.Convert(f.Body, docconv.MimeTypeByExtension(f.Filename), false)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	case ".txt":
		content, err := io.ReadAll(io.LimitReader(f.Body, maxTextBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, fileType)
	}

	p.logger.Debug("CV parsed", zap.String("file", f.Filename), zap.Int("text_bytes", len(text)))
	return &ParsedCV{
		Filename: f.Filename,
		FileType: fileType,
		FullText: strings.TrimSpace(text),
	}, nil
}

// ContentType guesses the media type from the link.
func ContentType(cvURL string) string {
	lower := strings.ToLower(cvURL)
	switch {
	case strings.Contains(lower, ".pdf"):
		return "application/pdf"
	case strings.Contains(lower, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.Contains(lower, ".doc"):
		return "application/msword"
	}
	return "application/octet-stream"
}

// FileName is the last path segment of the link, "cv" when there is none.
func FileName(cvURL string) string {
	p := cvURL
	if u, err := url.Parse(cvURL); err == nil {
		p = u.Path
	} else if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	name := path.Base(p)
	if name == "" || name == "." || name == "/" {
		return "cv"
	}
	return name
}
