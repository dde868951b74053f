package quoteapi

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// TokenSource supplies the bearer credential attached to requests. An
// empty token with a nil error means no credential is available, which
// is tolerated: the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource always returns the same token.
type StaticTokenSource string

func (s StaticTokenSource) Token(_ context.Context) (string, error) {
	return string(s), nil
}

// EnvTokenSource reads the token from an environment variable.
type EnvTokenSource string

func (e EnvTokenSource) Token(_ context.Context) (string, error) {
	return strings.TrimSpace(os.Getenv(string(e))), nil
}

// FileTokenSource reads the token from a file, typically written by the
// login command. A missing file means no session, not an error.
type FileTokenSource string

func (f FileTokenSource) Token(_ context.Context) (string, error) {
	data, err := os.ReadFile(string(f))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrap(err, "quoteapi: read token file")
	}
	return strings.TrimSpace(string(data)), nil
}
