package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/petalworks/storefront/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// HTTPUploader posts blobs as multipart form data to the storage endpoint.
// Calls run through a circuit breaker so a dead endpoint fails fast instead
// of tying up checkout.
type HTTPUploader struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[string]
}

// NewHTTPUploader creates an uploader for the configured endpoint.
func NewHTTPUploader(cfg config.UploadConfig) *HTTPUploader {
	settings := gobreaker.Settings{
		Name:    "proof-upload",
		Timeout: cfg.Breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > cfg.Breaker.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// Unauthorized and canceled are caller-side conditions,
			// not endpoint failures; they must not trip the breaker.
			return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrCanceled)
		},
	}
	return &HTTPUploader{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		breaker:  gobreaker.NewCircuitBreaker[string](settings),
	}
}

// Upload sends the blob and returns the retrievable URL reported by the
// endpoint. Errors are always one of the package's typed failures.
func (u *HTTPUploader) Upload(ctx context.Context, name string, blob io.Reader, size int64, opts ...Option) (string, error) {
	var call callOptions
	for _, opt := range opts {
		opt(&call)
	}

	url, err := u.breaker.Execute(func() (string, error) {
		return u.post(ctx, name, blob, size, call.progress)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: upload endpoint unavailable", ErrUploadFailed)
		}
		return "", err
	}
	return url, nil
}

func (u *HTTPUploader) post(ctx context.Context, name string, blob io.Reader, size int64, progress ProgressFunc) (string, error) {
	body, contentType := multipartBody(name, blob, size, progress)
	defer func() { _ = body.Close() }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
			return "", ErrCanceled
		}
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fmt.Errorf("%w: endpoint returned status %d", ErrUploadFailed, resp.StatusCode)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: malformed endpoint response: %v", ErrUploadFailed, err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("%w: endpoint response missing url", ErrUploadFailed)
	}
	return result.URL, nil
}

// multipartBody streams the blob as a multipart form through a pipe, so
// large proofs are never buffered whole in memory.
func multipartBody(name string, blob io.Reader, size int64, progress ProgressFunc) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", name)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		src := io.Reader(blob)
		if progress != nil {
			src = &progressReader{r: blob, total: size, fn: progress}
		}
		if _, err := io.Copy(part, src); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(writer.Close())
	}()

	return pr, writer.FormDataContentType()
}

// progressReader invokes the callback as bytes flow through it.
type progressReader struct {
	r     io.Reader
	sent  int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.sent += int64(n)
		p.fn(Progress{Sent: p.sent, Total: p.total})
	}
	return n, err
}
