package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) (*Verifier, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	return New(srv.URL, "test-key", "gmail.com", time.Second, nil), srv
}

func TestCheckPassesDeliverableProviderAddress(t *testing.T) {
	v, srv := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "owner@gmail.com", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"deliverability":"DELIVERABLE","is_free_email":{"value":true}}`))
	})
	defer srv.Close()

	require.NoError(t, v.Check(context.Background(), "owner@gmail.com"))
}

func TestCheckRateLimited(t *testing.T) {
	v, srv := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer srv.Close()

	err := v.Check(context.Background(), "owner@gmail.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, "Too many attempts. Please try again in a minute.", err.Error())
}

func TestCheckRejectsUndeliverable(t *testing.T) {
	v, srv := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"deliverability":"UNDELIVERABLE","is_free_email":{"value":true}}`))
	})
	defer srv.Close()

	err := v.Check(context.Background(), "owner@gmail.com")
	require.Error(t, err)
	assert.Equal(t, "Please use a valid gmail.com address.", err.Error())
}

func TestCheckRejectsOtherProvider(t *testing.T) {
	v, srv := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"deliverability":"DELIVERABLE","is_free_email":{"value":true}}`))
	})
	defer srv.Close()

	err := v.Check(context.Background(), "owner@yahoo.com")
	require.Error(t, err)
	assert.Equal(t, "Please use a valid gmail.com address.", err.Error())
}

func TestCheckRejectsNonFreeEmail(t *testing.T) {
	v, srv := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"deliverability":"DELIVERABLE","is_free_email":{"value":false}}`))
	})
	defer srv.Close()

	require.Error(t, v.Check(context.Background(), "owner@gmail.com"))
}

func TestCheckServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	v := New(srv.URL, "test-key", "gmail.com", time.Second, nil)

	err := v.Check(context.Background(), "owner@gmail.com")
	require.Error(t, err)
	assert.Equal(t, "Could not verify email. Please try again.", err.Error())
}
