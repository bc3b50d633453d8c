package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/user"
)

func TestGetReturnsBody(t *testing.T) {
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(WithToken("secret"))
	body, err := c.Get(context.Background(), srv.URL+"/api")
	require.NoError(t, err)

	assert.Equal(t, `{"results":[]}`, string(body))
	assert.Equal(t, "Bearer secret", gotHeaders.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.Equal(t, DefaultUserAgent, gotHeaders.Get("User-Agent"))
}

func TestGetWithoutTokenSendsNoAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient().Get(context.Background(), srv.URL)
	require.NoError(t, err)
}

func TestGetNon2xx(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"server error", http.StatusServiceUnavailable},
		{"not found", http.StatusNotFound},
		{"not modified", http.StatusNotModified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("  upstream unhappy \n"))
			}))
			defer srv.Close()

			_, err := NewHTTPClient().Get(context.Background(), srv.URL)

			var fe *user.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, user.KindStatus, fe.Kind)
			assert.Equal(t, tt.status, fe.StatusCode)
			if tt.status != http.StatusNotModified {
				assert.Equal(t, "upstream unhappy", fe.Body)
			}
		})
	}
}

func TestGetNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient().Get(context.Background(), url)

	var fe *user.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, user.KindNetwork, fe.Kind)
	assert.Equal(t, url, fe.URL)
}

func TestGetRespectsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPClient(WithTimeout(50*time.Millisecond)).Get(context.Background(), srv.URL)

	var fe *user.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, user.KindNetwork, fe.Kind)
}

func TestStoreLoadThroughHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"email":"a@x.com"},{"email":"b@x.com"}]}`))
	}))
	defer srv.Close()

	store := user.NewStore(NewHTTPClient())
	require.NoError(t, store.Run(context.Background(), user.Load(srv.URL)))

	users := store.State().Users()
	require.Len(t, users, 2)
	assert.Equal(t, user.Record(`{"email":"b@x.com"}`), users[1])
}
