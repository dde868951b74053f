package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/inada-mfg/quote-cli/internal/cache"
	"github.com/inada-mfg/quote-cli/internal/history"
	"github.com/inada-mfg/quote-cli/internal/quotes"
	"github.com/inada-mfg/quote-cli/internal/render"
	"github.com/inada-mfg/quote-cli/pkg/quoteapi"
)

// tokenSource picks the credential source: an explicit token from
// config/env wins, otherwise the token file written by login.
func tokenSource() quoteapi.TokenSource {
	if cfg.Auth.Token != "" {
		return quoteapi.StaticTokenSource(cfg.Auth.Token)
	}
	return quoteapi.FileTokenSource(cfg.Auth.TokenFile)
}

func newAPIClient() quoteapi.Client {
	return quoteapi.NewClient(
		quoteapi.WithBaseURL(cfg.API.BaseURL),
		quoteapi.WithTokenSource(tokenSource()),
		quoteapi.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second,
		}),
	)
}

func newService() *quotes.Service {
	c := cache.New(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSecs)*time.Second)
	return quotes.New(newAPIClient(), c)
}

func renderOpts() render.Options {
	return render.Options{Locale: cfg.Display.Locale}
}

func openHistory(ctx context.Context) (*history.Store, error) {
	st, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate history")
	}
	return st, nil
}
