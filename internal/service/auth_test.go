package service

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/user-console/internal/api"
	"github.com/user-console/internal/config"
	"github.com/user-console/internal/model"
	"github.com/user-console/internal/session"
	"github.com/user-console/internal/storage"
)

func TestLoginEstablishesSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry Authorization")
		}
		var req model.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode login body: %v", err)
		}
		if req.Email != "admin@example.com" || req.Password != "pw" {
			t.Errorf("unexpected credentials: %+v", req)
		}
		w.Write([]byte(`{"accessToken":"t","userId":"u1","email":"admin@example.com","role":"ADMIN","firstname":"grace","lastname":"hopper"}`))
	})

	// Unauthenticated storage: login is the first call of a fresh client.
	st, err := storage.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	sess := session.New(st)
	server := newServer(t, handler)
	client := api.NewClient(config.ServicesConfig{
		UserServiceURL:         server,
		NotificationServiceURL: server,
	}, 0, sess)
	auth := NewAuth(client, sess)

	user, err := auth.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != "u1" || user.FirstName != "grace" || user.LastName != "hopper" {
		t.Fatalf("login identity not mapped: %+v", user)
	}
	if !user.IsAdmin() {
		t.Error("ADMIN role lost in mapping")
	}

	if sess.Token() != "t" {
		t.Fatalf("session token not established: %q", sess.Token())
	}
	if v, _ := st.Get(storage.KeyToken); v != "t" {
		t.Fatalf("token not persisted: %q", v)
	}
	raw, ok := st.Get(storage.KeyUser)
	if !ok {
		t.Fatal("user not persisted")
	}
	var stored model.User
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("stored user unreadable: %v", err)
	}
	if stored.ID != "u1" || stored.Email != "admin@example.com" {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
}

func TestLoginRejectsMissingToken(t *testing.T) {
	client, sess, _ := testBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"userId":"u1"}`))
	}))
	if err := sess.Clear(); err != nil {
		t.Fatal(err)
	}
	auth := NewAuth(client, sess)

	if _, err := auth.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Fatal("expected error for response without accessToken")
	}
	if sess.Token() != "" {
		t.Fatal("session must not be established")
	}
}

func TestLogoutClearsSessionEvenOnBackendFailure(t *testing.T) {
	client, sess, st := testBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	auth := NewAuth(client, sess)

	err := auth.Logout(context.Background())
	if err == nil {
		t.Fatal("backend failure should surface")
	}
	if sess.Token() != "" || sess.User() != nil {
		t.Fatal("local session must be cleared regardless of backend failure")
	}
	if _, ok := st.Get(storage.KeyToken); ok {
		t.Fatal("durable token must be cleared")
	}
}
