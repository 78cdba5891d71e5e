package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 2*time.Second, nil), srv
}

func TestHeroVideosBareArray(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/hero-videos", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]string{"https://v/1", "https://v/2"})
	}))
	defer srv.Close()

	list, err := c.HeroVideos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://v/1", "https://v/2"}, list)
}

func TestHeroVideosWrappedObject(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"videos": []string{"https://v/1"}})
	}))
	defer srv.Close()

	list, err := c.HeroVideos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://v/1"}, list)
}

func TestHeroVideosFailureStatus(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := c.HeroVideos(context.Background())
	require.Error(t, err)
}

func TestHeroVideosMalformedBody(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := c.HeroVideos(context.Background())
	require.Error(t, err)
}

func TestCreateCustomerSendsJSON(t *testing.T) {
	var got CustomerLead
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/customers", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := c.CreateCustomer(context.Background(), CustomerLead{Email: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.Email)
}

func TestCreateCustomerErrorFieldPreference(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "error preferred", body: `{"error":"duplicate","message":"secondary"}`, want: "duplicate"},
		{name: "message fallback", body: `{"message":"secondary"}`, want: "secondary"},
		{name: "generic fallback", body: `{}`, want: "Failed to save"},
		{name: "malformed body treated as empty", body: `not-json`, want: "Failed to save"},
		{name: "empty error string skipped", body: `{"error":"","message":"m"}`, want: "m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := c.CreateCustomer(context.Background(), CustomerLead{Email: "user@example.com"})
			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, http.StatusBadRequest, reqErr.Status)
			assert.Equal(t, tt.want, reqErr.Message)
		})
	}
}

func TestCreateVendorPrefersMessageField(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vendors", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"e","message":"GST already registered"}`))
	}))
	defer srv.Close()

	err := c.CreateVendor(context.Background(), VendorLead{Business: "b", Email: "user@example.com"})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "GST already registered", reqErr.Message)
}

func TestCreateFeedbackGenericFallback(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/feedback", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"ignored, feedback only consults error"}`))
	}))
	defer srv.Close()

	err := c.CreateFeedback(context.Background(), FeedbackEntry{Text: "hi"})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Failed to submit feedback", reqErr.Message)
}

func TestNetworkFailureMarked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections
	c := NewClient(srv.URL, time.Second, nil)

	err := c.CreateCustomer(context.Background(), CustomerLead{Email: "user@example.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))

	_, err = c.HeroVideos(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}
