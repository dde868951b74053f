// Package upload implements the upload flow: select a file, validate
// locally, submit, then hand off to the quote view after a fixed
// success delay.
package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/inada-mfg/quote-cli/internal/quotes"
	"github.com/inada-mfg/quote-cli/internal/validate"
	"github.com/inada-mfg/quote-cli/pkg/quoteapi"
)

// State is the upload flow's current phase.
type State string

const (
	StateIdle      State = "idle"
	StateUploading State = "uploading"
	StateSuccess   State = "success"
	StateError     State = "error"
)

// SuccessDelay is how long the flow lingers on the success state before
// navigating to the quote view.
const SuccessDelay = 2 * time.Second

// Navigator receives the destination quote id once the success delay
// has elapsed.
type Navigator interface {
	ShowQuote(ctx context.Context, quoteID string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, quoteID string) error

func (f NavigatorFunc) ShowQuote(ctx context.Context, quoteID string) error {
	return f(ctx, quoteID)
}

// File is a selected candidate upload.
type File struct {
	Path        string
	Name        string
	MIMEType    string
	Size        int64
	Description string
}

// Stat inspects a file on disk and detects its MIME type from content.
// A CLI has no browser-supplied type, so the type is sniffed.
func Stat(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, eris.Wrapf(err, "upload: stat %s", path)
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, eris.Wrapf(err, "upload: detect type of %s", path)
	}
	return File{
		Path:     path,
		Name:     filepath.Base(path),
		MIMEType: mt.String(),
		Size:     info.Size(),
	}, nil
}

// Flow is the upload state machine: idle -> uploading -> success|error.
// A Submit while uploading is a no-op, mirroring a disabled submit
// control; there is no harder reentrancy guard.
type Flow struct {
	svc       *quotes.Service
	navigator Navigator
	delay     time.Duration

	mu      sync.Mutex
	state   State
	file    *File
	message string
}

// NewFlow creates an idle Flow with the standard success delay.
func NewFlow(svc *quotes.Service, nav Navigator) *Flow {
	return &Flow{svc: svc, navigator: nav, delay: SuccessDelay, state: StateIdle}
}

// SetDelay overrides the success delay. Used by tests.
func (f *Flow) SetDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

// State returns the current phase.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the current error message, if any.
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Select attaches a file and resets the flow to idle, clearing any
// previous error. Both drag-drop and picker paths land here.
func (f *Flow) Select(file File) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.file = &file
	f.state = StateIdle
	f.message = ""
}

// ErrNoFile is returned when Submit runs without a selected file.
var ErrNoFile = errors.New("upload: no file selected")

// Submit validates the selected file and uploads it. Validation
// failures never reach the network. On success the flow waits the
// fixed delay, then navigates to the new quote. The returned quote id
// is empty when the flow ended in the error state.
func (f *Flow) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.state == StateUploading {
		f.mu.Unlock()
		return "", nil
	}
	if f.file == nil {
		f.message = "please select a file"
		f.state = StateError
		f.mu.Unlock()
		return "", ErrNoFile
	}
	file := *f.file

	res := validate.UploadFile(validate.FileInfo{
		Name:     file.Name,
		MIMEType: file.MIMEType,
		Size:     file.Size,
	})
	if !res.Valid {
		f.state = StateError
		f.message = res.Error
		f.mu.Unlock()
		return "", eris.New(res.Error)
	}

	f.state = StateUploading
	f.message = ""
	delay := f.delay
	f.mu.Unlock()

	data, err := os.Open(file.Path)
	if err != nil {
		f.fail("upload failed")
		return "", eris.Wrapf(err, "upload: open %s", file.Path)
	}
	defer data.Close()

	result, err := f.svc.Upload(ctx, quoteapi.Upload{
		FileName:    file.Name,
		ContentType: file.MIMEType,
		Data:        data,
		Description: file.Description,
	})
	if err != nil {
		f.fail(failureMessage(err))
		return "", err
	}

	f.mu.Lock()
	f.state = StateSuccess
	f.mu.Unlock()

	zap.L().Info("upload succeeded",
		zap.String("file", file.Name),
		zap.String("quote_id", result.QuoteID),
	)

	// Linger on the success state before navigating.
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return result.QuoteID, ctx.Err()
	case <-timer.C:
	}

	if f.navigator != nil {
		if err := f.navigator.ShowQuote(ctx, result.QuoteID); err != nil {
			return result.QuoteID, err
		}
	}
	return result.QuoteID, nil
}

func (f *Flow) fail(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateError
	f.message = message
}

// failureMessage surfaces the server-provided message verbatim when the
// response carried one, else a generic fallback.
func failureMessage(err error) string {
	var apiErr *quoteapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "upload failed"
}
