// Package upload sends proof-of-payment files to the configured storage
// endpoint. Failures here never block order creation; the caller decides
// whether to retry, drop the proof, or abandon checkout.
package upload

import (
	"context"
	"errors"
	"io"
)

// Typed failures. Transport-level errors are classified into these before
// they reach the caller.
var ErrUnauthorized = errors.New("upload rejected: unauthorized")
var ErrCanceled = errors.New("upload canceled")
var ErrUploadFailed = errors.New("upload failed")

// Progress reports how much of the blob has been sent so far. Total is -1
// when the size is unknown.
type Progress struct {
	Sent  int64
	Total int64
}

// ProgressFunc receives progress updates during an upload. It is called on
// the uploading goroutine; keep it cheap.
type ProgressFunc func(Progress)

type callOptions struct {
	progress ProgressFunc
}

// Option configures a single upload call.
type Option func(*callOptions)

// WithProgress registers a progress callback for the call. Progress
// reporting is decoupled from the upload itself; omitting it changes nothing
// about the transfer.
func WithProgress(fn ProgressFunc) Option {
	return func(o *callOptions) {
		o.progress = fn
	}
}

// Uploader is the proof-of-payment collaborator contract. Upload returns the
// retrievable URL of the stored blob.
type Uploader interface {
	Upload(ctx context.Context, name string, blob io.Reader, size int64, opts ...Option) (string, error)
}
