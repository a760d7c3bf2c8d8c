package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{BaseURL: srv.URL + "/v1"}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Options{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)

	_, err = NewClient(Options{}, nil)
	assert.Error(t, err)
}

func TestClient_Search_Request(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	})

	_, err := client.Search(context.Background(), "daft punk", "secret-token")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/v1/search", got.URL.Path)
	assert.Equal(t, "q=daft%20punk&type=track,artist", got.URL.RawQuery)
	assert.Equal(t, "Bearer secret-token", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
}

func TestClient_Search_EncodeQuery(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{BaseURL: srv.URL, EncodeQuery: true}, zap.NewNop())
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "rock&roll", "t")
	require.NoError(t, err)
	assert.Equal(t, "q=rock%26roll&type=track,artist", rawQuery)
}

func TestClient_Search_RawQueryWithFragment(t *testing.T) {
	var rawQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	})

	_, err := client.Search(context.Background(), "rock#%zz", "t")
	require.NoError(t, err)
	assert.Equal(t, "q=rock", rawQuery)
}

func TestClient_Search_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(validBody))
	})

	tracks, err := client.Search(context.Background(), "weezer", "t")
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Buddy Holly", tracks[0].Name)
}

func TestClient_Search_ShapeMismatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tracks":{"items":[{"name":"n","href":"h","popularity":1,
			"album":{"name":"a","artists":[],"external_urls":{"spotify":"s"}}}]}}`))
	})

	_, err := client.Search(context.Background(), "weezer", "t")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestClient_Search_Unauthorized(t *testing.T) {
	bodies := []string{
		`{"error":{"status":401,"message":"The access token expired"}}`,
		`not json at all`,
		``,
	}

	for _, body := range bodies {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(body))
		})

		_, err := client.Search(context.Background(), "weezer", "expired")
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
}

func TestClient_Search_UnexpectedStatus(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"error":{"status":418,"message":"I'm a teapot"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{BaseURL: srv.URL}, zap.New(core))
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "weezer", "t")
	require.Error(t, err)

	var statusErr *UnexpectedStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTeapot, statusErr.StatusCode)
	assert.Equal(t, "I'm a teapot", statusErr.APIMessage)
	assert.Contains(t, err.Error(), "418")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(http.StatusTeapot), logs.All()[0].ContextMap()["status"])
}

func TestClient_Search_UnexpectedStatusWithoutAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "weezer", "t")

	var statusErr *UnexpectedStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Empty(t, statusErr.APIMessage)
	assert.Equal(t, "unexpected status 500 Internal Server Error", err.Error())
}

func TestClient_Search_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client, err := NewClient(Options{BaseURL: baseURL}, zap.NewNop())
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "weezer", "t")
	require.Error(t, err)

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.NotErrorIs(t, err, ErrShapeMismatch)
}

func TestClient_Search_Cancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(validBody))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "weezer", "t")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
