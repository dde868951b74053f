package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inada-mfg/quote-cli/internal/model"
	"github.com/inada-mfg/quote-cli/internal/quotes"
	"github.com/inada-mfg/quote-cli/internal/validate"
	"github.com/inada-mfg/quote-cli/pkg/quoteapi"
)

var servePort int

// serveCmd runs a local read-mostly proxy in front of the quotation
// backend. Responses are served through the same tag cache the CLI
// uses, so repeated reads skip the backend until a mutation
// invalidates them.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local caching proxy for the quotation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r := buildRouter(newService())

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter assembles the proxy routes around a quote service.
func buildRouter(svc *quotes.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/cache/stats", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, svc.CacheStats())
	})

	r.Get("/quotes", func(w http.ResponseWriter, req *http.Request) {
		params := quoteapi.ListParams{Page: 1, Limit: 10}
		if v := req.URL.Query().Get("page"); v != "" {
			params.Page, _ = strconv.Atoi(v)
		}
		if v := req.URL.Query().Get("limit"); v != "" {
			params.Limit, _ = strconv.Atoi(v)
		}
		params.Status = req.URL.Query().Get("status")

		filters := validate.ListFilters{Page: params.Page, Limit: params.Limit, Status: params.Status}
		if res := filters.Validate(); !res.Valid {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": res.Error})
			return
		}

		page, err := svc.List(req.Context(), params)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"data":       page.Quotes,
			"pagination": page.Pagination,
		})
	})

	r.Get("/quotes/{id}", func(w http.ResponseWriter, req *http.Request) {
		q, err := svc.Get(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": q})
	})

	r.Put("/quotes/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid request body"})
			return
		}
		if res := validate.StatusUpdate(body.Status); !res.Valid {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": res.Error})
			return
		}

		result, err := svc.UpdateStatus(req.Context(), chi.URLParam(req, "id"), model.QuoteStatus(body.Status))
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": result})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeUpstreamError relays a backend error, preserving the backend's
// status code and message when it reported one.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *quoteapi.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.StatusCode, map[string]any{"success": false, "message": apiErr.Message})
		return
	}
	zap.L().Error("upstream request failed", zap.Error(err))
	writeJSON(w, http.StatusBadGateway, map[string]any{"success": false, "message": "upstream request failed"})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
