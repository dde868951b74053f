// Package validate holds the client-side input rules. Every check is
// pure and total: callers always get a Result back, never an error or
// a panic, so a failed validation can be rendered inline without a
// network round trip.
package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inada-mfg/quote-cli/internal/model"
)

// MaxFileSize is the per-file upload limit: 50 MiB.
const MaxFileSize = 50 * 1024 * 1024

// MaxBatchFiles is the upper bound on files in one batch upload.
const MaxBatchFiles = 10

// MaxListLimit caps the page size of list requests.
const MaxListLimit = 100

// AllowedMIMETypes are the upload formats the backend accepts.
var AllowedMIMETypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
}

// Result is the outcome of a validation. Error joins every failed rule
// message with ", " when Valid is false.
type Result struct {
	Valid bool
	Error string
}

func ok() Result { return Result{Valid: true} }

func fail(messages []string) Result {
	return Result{Valid: false, Error: strings.Join(messages, ", ")}
}

// FileInfo describes a candidate upload.
type FileInfo struct {
	Name     string
	MIMEType string
	Size     int64
}

func allowedType(mime string) bool {
	for _, t := range AllowedMIMETypes {
		if t == mime {
			return true
		}
	}
	return false
}

// UploadFile checks a single drawing against the type and size rules.
// Size is checked regardless of type so an oversized file always
// reports a size message.
func UploadFile(f FileInfo) Result {
	var msgs []string
	if f.Size > MaxFileSize {
		msgs = append(msgs, "file size must be less than 50mb")
	}
	if !allowedType(f.MIMEType) {
		msgs = append(msgs, "only jpeg, png, gif, webp, and pdf files allowed")
	}
	if len(msgs) > 0 {
		return fail(msgs)
	}
	return ok()
}

// Batch checks a batch upload: 1-10 files, each passing the per-file
// type and size rules.
func Batch(files []FileInfo) Result {
	var msgs []string
	if len(files) == 0 {
		msgs = append(msgs, "at least one file required")
	}
	if len(files) > MaxBatchFiles {
		msgs = append(msgs, "maximum 10 files allowed")
	}
	for _, f := range files {
		if !allowedType(f.MIMEType) {
			msgs = append(msgs, "all files must be jpeg, png, gif, webp, or pdf")
			break
		}
	}
	for _, f := range files {
		if f.Size > MaxFileSize {
			msgs = append(msgs, "all files must be less than 50mb")
			break
		}
	}
	if len(msgs) > 0 {
		return fail(msgs)
	}
	return ok()
}

// StatusUpdate accepts only the four statuses a user may move a quote
// to. "generated" is the server-assigned initial state and is not a
// valid target.
func StatusUpdate(status string) Result {
	switch model.QuoteStatus(status) {
	case model.QuoteStatusReviewed, model.QuoteStatusApproved,
		model.QuoteStatusRejected, model.QuoteStatusFinalized:
		return ok()
	}
	return fail([]string{"status must be one of reviewed, approved, rejected, finalized"})
}

// ListFilters are the query parameters of a quote list request.
type ListFilters struct {
	Page          int
	Limit         int
	Status        string
	StartDate     string // RFC 3339, optional
	EndDate       string // RFC 3339, optional
	MinPrice      *float64
	MaxPrice      *float64
	MinConfidence *float64
}

func quoteStatusKnown(s string) bool {
	switch model.QuoteStatus(s) {
	case model.QuoteStatusGenerated, model.QuoteStatusReviewed,
		model.QuoteStatusApproved, model.QuoteStatusRejected,
		model.QuoteStatusFinalized:
		return true
	}
	return false
}

// ListFilters validates pagination and the optional filter fields.
func (f ListFilters) Validate() Result {
	var msgs []string
	if f.Page < 1 {
		msgs = append(msgs, "page must be a positive integer")
	}
	if f.Limit < 1 {
		msgs = append(msgs, "limit must be a positive integer")
	} else if f.Limit > MaxListLimit {
		msgs = append(msgs, "limit must be at most 100")
	}
	if f.Status != "" && !quoteStatusKnown(f.Status) {
		msgs = append(msgs, "unknown status filter")
	}
	if f.StartDate != "" {
		if _, err := time.Parse(time.RFC3339, f.StartDate); err != nil {
			msgs = append(msgs, "invalid start date")
		}
	}
	if f.EndDate != "" {
		if _, err := time.Parse(time.RFC3339, f.EndDate); err != nil {
			msgs = append(msgs, "invalid end date")
		}
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		msgs = append(msgs, "min price must not be negative")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		msgs = append(msgs, "max price must not be negative")
	}
	if f.MinConfidence != nil && (*f.MinConfidence < 0 || *f.MinConfidence > 100) {
		msgs = append(msgs, "min confidence must be between 0 and 100")
	}
	if len(msgs) > 0 {
		return fail(msgs)
	}
	return ok()
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var phoneRe = regexp.MustCompile(`^[\d\s\-+()]+$`)

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// Profile is a user profile form payload.
type Profile struct {
	Name        string
	Email       string
	PhoneNumber string
	Company     string
	Position    string
}

// UserProfile validates a profile form.
func UserProfile(p Profile) Result {
	var msgs []string
	// Character counts, not bytes: a one-rune Japanese name must fail
	// the two-character minimum.
	if utf8.RuneCountInString(p.Name) < 2 {
		msgs = append(msgs, "name must be at least 2 characters")
	}
	if utf8.RuneCountInString(p.Name) > 100 {
		msgs = append(msgs, "name must be at most 100 characters")
	}
	if !emailRe.MatchString(p.Email) {
		msgs = append(msgs, "invalid email address")
	}
	if p.PhoneNumber != "" && (!phoneRe.MatchString(p.PhoneNumber) || digitCount(p.PhoneNumber) < 10) {
		msgs = append(msgs, "invalid phone number")
	}
	if len(msgs) > 0 {
		return fail(msgs)
	}
	return ok()
}

// Credentials is a login form payload.
type Credentials struct {
	Email    string
	Password string
}

// Login validates a login form.
func Login(c Credentials) Result {
	var msgs []string
	if !emailRe.MatchString(c.Email) {
		msgs = append(msgs, "invalid email address")
	}
	if utf8.RuneCountInString(c.Password) < 8 {
		msgs = append(msgs, "password must be at least 8 characters")
	}
	if len(msgs) > 0 {
		return fail(msgs)
	}
	return ok()
}
