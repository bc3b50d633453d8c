package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/client"
	"github.com/userdeck/userdeck/internal/mock"
	"github.com/userdeck/userdeck/internal/user"
)

// testConfig writes a config that keeps logs inside the test's temp dir.
func testConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "userdeck.yaml")
	body := fmt.Sprintf("log:\n  file: %q\n", filepath.Join(dir, "userdeck.log"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFetchCommandPrintsUsers(t *testing.T) {
	srv := httptest.NewServer(mock.NewServer(mock.NewGenerator("cli"), nil).Router())
	defer srv.Close()

	out, err := execute(t, "fetch", "--config", testConfig(t), "--endpoint", srv.URL+"/api", "--results", "3")
	require.NoError(t, err)

	var users []mock.User
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	assert.Equal(t, mock.NewGenerator("cli").Users("", 1, 3), users)
}

func TestFetchCommandReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out, err := execute(t, "fetch", "--config", testConfig(t), "--endpoint", srv.URL)

	var fe *user.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, user.KindStatus, fe.Kind)
	assert.Empty(t, out)
}

func TestRejectsInvalidEndpoint(t *testing.T) {
	_, err := execute(t, "fetch", "--config", testConfig(t), "--endpoint", "not a url")
	assert.Error(t, err)
}

func TestFetchPrintsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	store := user.NewStore(client.NewHTTPClient())
	require.NoError(t, fetch(context.Background(), store, srv.URL, &out))
	assert.Equal(t, "[]\n", out.String())
}
