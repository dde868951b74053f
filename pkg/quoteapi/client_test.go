package quoteapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inada-mfg/quote-cli/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(append([]Option{WithBaseURL(srv.URL + "/api")}, opts...)...)
}

func TestUploadDrawing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/quotes/upload", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Len(t, r.MultipartForm.File["drawing"], 1)
		fh := r.MultipartForm.File["drawing"][0]
		assert.Equal(t, "part.png", fh.Filename)
		assert.Equal(t, "image/png", fh.Header.Get("Content-Type"))
		f, err := fh.Open()
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
		assert.Equal(t, "bracket assembly", r.FormValue("description"))

		json.NewEncoder(w).Encode(UploadResponse{
			Success: true,
			Data:    model.UploadResult{QuoteID: "q-1", FinalPrice: 1200},
		})
	}, WithTokenSource(StaticTokenSource("tok-123")))

	resp, err := client.UploadDrawing(context.Background(), Upload{
		FileName:    "part.png",
		ContentType: "image/png",
		Data:        strings.NewReader("png-bytes"),
		Description: "bracket assembly",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "q-1", resp.Data.QuoteID)
}

func TestUploadBatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/quotes/batch", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["drawings"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.png", files[0].Filename)
		assert.Equal(t, "b.pdf", files[1].Filename)
		assert.Equal(t, "application/pdf", files[1].Header.Get("Content-Type"))

		json.NewEncoder(w).Encode(BatchResponse{
			Success: true,
			Data: []model.QuotationResult{
				{ID: "q-1"},
				{ID: "q-2"},
			},
		})
	})

	resp, err := client.UploadBatch(context.Background(), []Upload{
		{FileName: "a.png", ContentType: "image/png", Data: strings.NewReader("a")},
		{FileName: "b.pdf", ContentType: "application/pdf", Data: strings.NewReader("b")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "q-2", resp.Data[1].ID)
}

func TestGetQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/quotes/q-42", r.URL.Path)

		json.NewEncoder(w).Encode(QuoteResponse{
			Success: true,
			Data:    model.QuotationResult{ID: "q-42", Status: model.QuoteStatusGenerated},
		})
	})

	resp, err := client.GetQuote(context.Background(), "q-42")
	require.NoError(t, err)
	assert.Equal(t, "q-42", resp.Data.ID)
	assert.Equal(t, model.QuoteStatusGenerated, resp.Data.Status)
}

func TestListQuotes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quotes", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "approved", r.URL.Query().Get("status"))

		json.NewEncoder(w).Encode(ListResponse{
			Success:    true,
			Data:       []model.QuotationResult{{ID: "q-1"}},
			Pagination: model.Pagination{Page: 2, Limit: 25, Total: 51, Pages: 3},
		})
	})

	resp, err := client.ListQuotes(context.Background(), ListParams{Page: 2, Limit: 25, Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Pagination.Pages)
	require.Len(t, resp.Data, 1)
}

func TestUpdateStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/quotes/q-1/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "approved", body["status"])

		json.NewEncoder(w).Encode(StatusUpdateResponse{
			Success: true,
			Data:    StatusUpdateResult{Message: "status updated", Status: model.QuoteStatusApproved},
		})
	})

	resp, err := client.UpdateStatus(context.Background(), "q-1", model.QuoteStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.QuoteStatusApproved, resp.Data.Status)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "taro@example.com", body["email"])
		assert.Equal(t, "hunter22hunter22", body["password"])

		json.NewEncoder(w).Encode(LoginResponse{
			Success: true,
			Data:    LoginResult{Token: "tok-abc"},
		})
	})

	resp, err := client.Login(context.Background(), "taro@example.com", "hunter22hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", resp.Data.Token)
}

func TestAPIErrorSurfacesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "drawing could not be analyzed",
		})
	})

	_, err := client.GetQuote(context.Background(), "q-1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "drawing could not be analyzed", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "drawing could not be analyzed")
}

func TestAPIErrorFallsBackToBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("gateway timeout"))
	})

	_, err := client.GetQuote(context.Background(), "q-1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "gateway timeout", apiErr.Body)
}

type failingTokenSource struct{}

func (failingTokenSource) Token(context.Context) (string, error) {
	return "", assert.AnError
}

func TestTokenFailureDoesNotBlockRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Request proceeds unauthenticated.
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(QuoteResponse{Success: true, Data: model.QuotationResult{ID: "q-1"}})
	}, WithTokenSource(failingTokenSource{}))

	resp, err := client.GetQuote(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, "q-1", resp.Data.ID)
}

func TestEmptyTokenOmitsHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(QuoteResponse{Success: true})
	}, WithTokenSource(StaticTokenSource("")))

	_, err := client.GetQuote(context.Background(), "q-1")
	require.NoError(t, err)
}
