package service

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/user-console/internal/api"
	"github.com/user-console/internal/config"
	"github.com/user-console/internal/model"
	"github.com/user-console/internal/session"
	"github.com/user-console/internal/storage"
)

// newServer starts a backend stub and returns its base URL.
func newServer(t *testing.T, handler http.Handler) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

// testBackend stands in for every routed service at once.
func testBackend(t *testing.T, handler http.Handler) (*api.Client, *session.Session, *storage.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	st, err := storage.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	sess := session.New(st)
	if err := sess.Establish("test-token", &model.User{ID: "u1"}); err != nil {
		t.Fatalf("failed to establish session: %v", err)
	}

	client := api.NewClient(config.ServicesConfig{
		UserServiceURL:         server.URL,
		NotificationServiceURL: server.URL,
	}, 0, sess)
	return client, sess, st
}
