package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pngFile(size int64) FileInfo {
	return FileInfo{Name: "drawing.png", MIMEType: "image/png", Size: size}
}

func TestUploadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    FileInfo
		valid   bool
		wantErr string
	}{
		{
			name:  "valid png",
			file:  pngFile(1024),
			valid: true,
		},
		{
			name:  "exactly at the size limit",
			file:  pngFile(MaxFileSize),
			valid: true,
		},
		{
			name:    "one byte over the limit",
			file:    pngFile(MaxFileSize + 1),
			valid:   false,
			wantErr: "file size must be less than 50mb",
		},
		{
			name:    "disallowed type",
			file:    FileInfo{Name: "drawing.txt", MIMEType: "text/plain", Size: 10},
			valid:   false,
			wantErr: "only jpeg, png, gif, webp, and pdf files allowed",
		},
		{
			name:    "oversized and wrong type reports both",
			file:    FileInfo{Name: "big.txt", MIMEType: "text/plain", Size: MaxFileSize + 1},
			valid:   false,
			wantErr: "file size must be less than 50mb, only jpeg, png, gif, webp, and pdf files allowed",
		},
		{
			name:  "pdf allowed",
			file:  FileInfo{Name: "drawing.pdf", MIMEType: "application/pdf", Size: 512},
			valid: true,
		},
		{
			name:  "nonstandard jpg alias allowed",
			file:  FileInfo{Name: "scan.jpg", MIMEType: "image/jpg", Size: 512},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := UploadFile(tt.file)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.wantErr, res.Error)
		})
	}
}

func TestBatch(t *testing.T) {
	many := make([]FileInfo, MaxBatchFiles+1)
	for i := range many {
		many[i] = pngFile(100)
	}
	full := make([]FileInfo, MaxBatchFiles)
	for i := range full {
		full[i] = pngFile(100)
	}

	tests := []struct {
		name    string
		files   []FileInfo
		valid   bool
		wantErr string
	}{
		{
			name:    "empty batch",
			files:   nil,
			valid:   false,
			wantErr: "at least one file required",
		},
		{
			name:  "single file",
			files: []FileInfo{pngFile(100)},
			valid: true,
		},
		{
			name:  "exactly ten files",
			files: full,
			valid: true,
		},
		{
			name:    "eleven files",
			files:   many,
			valid:   false,
			wantErr: "maximum 10 files allowed",
		},
		{
			name:    "one bad type fails the batch",
			files:   []FileInfo{pngFile(100), {Name: "notes.txt", MIMEType: "text/plain", Size: 100}},
			valid:   false,
			wantErr: "all files must be jpeg, png, gif, webp, or pdf",
		},
		{
			name:    "one oversized file fails the batch",
			files:   []FileInfo{pngFile(100), pngFile(MaxFileSize + 1)},
			valid:   false,
			wantErr: "all files must be less than 50mb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Batch(tt.files)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.wantErr, res.Error)
		})
	}
}

func TestStatusUpdate(t *testing.T) {
	for _, status := range []string{"reviewed", "approved", "rejected", "finalized"} {
		assert.True(t, StatusUpdate(status).Valid, status)
	}
	// generated is server-assigned, not a valid target
	assert.False(t, StatusUpdate("generated").Valid)
	assert.False(t, StatusUpdate("bogus").Valid)
	assert.False(t, StatusUpdate("").Valid)
}

func TestListFilters(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		filters ListFilters
		valid   bool
	}{
		{"defaults", ListFilters{Page: 1, Limit: 10}, true},
		{"max limit", ListFilters{Page: 1, Limit: 100}, true},
		{"limit over cap", ListFilters{Page: 1, Limit: 101}, false},
		{"zero page", ListFilters{Page: 0, Limit: 10}, false},
		{"zero limit", ListFilters{Page: 1, Limit: 0}, false},
		{"known status", ListFilters{Page: 1, Limit: 10, Status: "approved"}, true},
		{"unknown status", ListFilters{Page: 1, Limit: 10, Status: "draft"}, false},
		{"valid dates", ListFilters{Page: 1, Limit: 10, StartDate: "2026-01-01T00:00:00Z", EndDate: "2026-02-01T00:00:00Z"}, true},
		{"bad start date", ListFilters{Page: 1, Limit: 10, StartDate: "2026-01-01"}, false},
		{"negative min price", ListFilters{Page: 1, Limit: 10, MinPrice: price(-1)}, false},
		{"confidence out of range", ListFilters{Page: 1, Limit: 10, MinConfidence: price(101)}, false},
		{"confidence in range", ListFilters{Page: 1, Limit: 10, MinConfidence: price(80)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.filters.Validate().Valid)
		})
	}
}

func TestUserProfile(t *testing.T) {
	valid := Profile{Name: "Taro Inada", Email: "taro@example.com", PhoneNumber: "+81 3-1234-5678"}
	assert.True(t, UserProfile(valid).Valid)

	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr string
	}{
		{"short name", func(p *Profile) { p.Name = "T" }, "name must be at least 2 characters"},
		{"single multibyte character counts as one", func(p *Profile) { p.Name = "太" }, "name must be at least 2 characters"},
		{"bad email", func(p *Profile) { p.Email = "not-an-email" }, "invalid email address"},
		{"phone with letters", func(p *Profile) { p.PhoneNumber = "call me" }, "invalid phone number"},
		{"phone with too few digits", func(p *Profile) { p.PhoneNumber = "123-456" }, "invalid phone number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			res := UserProfile(p)
			assert.False(t, res.Valid)
			assert.Equal(t, tt.wantErr, res.Error)
		})
	}

	// phone is optional
	assert.True(t, UserProfile(Profile{Name: "Taro Inada", Email: "taro@example.com"}).Valid)

	// two multibyte characters satisfy the minimum
	assert.True(t, UserProfile(Profile{Name: "太郎", Email: "taro@example.com"}).Valid)
}

func TestLogin(t *testing.T) {
	assert.True(t, Login(Credentials{Email: "taro@example.com", Password: "longenough"}).Valid)

	res := Login(Credentials{Email: "nope", Password: "short"})
	assert.False(t, res.Valid)
	assert.Equal(t, "invalid email address, password must be at least 8 characters", res.Error)

	// Three multibyte characters are nine bytes but only three
	// characters; the minimum counts characters.
	res = Login(Credentials{Email: "taro@example.com", Password: "あいう"})
	assert.False(t, res.Valid)
	assert.Equal(t, "password must be at least 8 characters", res.Error)

	// Eight multibyte characters pass.
	assert.True(t, Login(Credentials{Email: "taro@example.com", Password: "あいうえおかきく"}).Valid)
}
