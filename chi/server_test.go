package chi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/menurag"
	menuchi "github.com/fwojciec/menurag/chi"
	"github.com/fwojciec/menurag/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(asker menurag.Asker, retriever menurag.Retriever) *menuchi.Server {
	return menuchi.NewServer(asker, retriever, nil)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestServer_Ask(t *testing.T) {
	t.Parallel()

	t.Run("returns answer", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{AskFn: func(_ context.Context, q string) (string, error) {
			return "Try the Chicken Curry. (" + q + ")", nil
		}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "spicy?"}`))

		newServer(asker, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "Try the Chicken Curry. (spicy?)", decode[menuchi.AskResponse](t, rec).Answer)
	})

	t.Run("maps invalid question to 400", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{AskFn: func(context.Context, string) (string, error) {
			return "", menurag.Errorf(menurag.EINVALID, "question required")
		}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": ""}`))

		newServer(asker, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, menuchi.ErrorResponse{Code: menurag.EINVALID, Message: "question required"}, decode[menuchi.ErrorResponse](t, rec))
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{`))

		newServer(nil, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("hides internal errors", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{AskFn: func(context.Context, string) (string, error) {
			return "", errors.New("secret connection string")
		}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "hi"}`))

		newServer(asker, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("recovers from panics", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{AskFn: func(context.Context, string) (string, error) {
			panic("boom")
		}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "hi"}`))

		newServer(asker, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, menurag.EINTERNAL, decode[menuchi.ErrorResponse](t, rec).Code)
	})

	t.Run("rejects GET", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		newServer(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ask", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	price := 249.0
	results := []menurag.Result{{
		Metadata:        menurag.Metadata{RestaurantName: "Green Leaf", ItemName: "Paneer Tikka", Price: &price},
		SimilarityScore: 0.91,
	}}

	t.Run("returns results with requested k", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		var gotK int
		retriever := &mock.Retriever{RetrieveFn: func(_ context.Context, q string, k int) []menurag.Result {
			gotQuery, gotK = q, k
			return results
		}}
		rec := httptest.NewRecorder()

		newServer(nil, retriever).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=paneer&k=3", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[menuchi.SearchResponse](t, rec)
		assert.Equal(t, "paneer", resp.Query)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "Paneer Tikka", resp.Results[0].ItemName)
		assert.InDelta(t, 0.91, resp.Results[0].SimilarityScore, 1e-6)
		assert.Equal(t, "paneer", gotQuery)
		assert.Equal(t, 3, gotK)
	})

	t.Run("defaults k", func(t *testing.T) {
		t.Parallel()

		var gotK int
		retriever := &mock.Retriever{RetrieveFn: func(_ context.Context, _ string, k int) []menurag.Result {
			gotK = k
			return []menurag.Result{}
		}}
		rec := httptest.NewRecorder()

		newServer(nil, retriever).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=tea", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, menuchi.DefaultSearchK, gotK)
		assert.Contains(t, rec.Body.String(), `"results":[]`)
	})

	t.Run("validates parameters", func(t *testing.T) {
		t.Parallel()

		for _, target := range []string{"/search", "/search?q=%20", "/search?q=tea&k=0", "/search?q=tea&k=abc", "/search?q=tea&k=1000"} {
			rec := httptest.NewRecorder()
			newServer(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
	})
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	s := newServer(nil, nil)
	s.BuildID = "b1"
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "ok", "build_id": "b1"}, decode[map[string]string](t, rec))
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newServer(nil, nil).Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
