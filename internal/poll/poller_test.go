package poll

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/user-console/internal/api"
	"github.com/user-console/internal/config"
	"github.com/user-console/internal/model"
	"github.com/user-console/internal/service"
	"github.com/user-console/internal/session"
	"github.com/user-console/internal/storage"
	"github.com/user-console/internal/store"
)

func newTestPoller(t *testing.T, handler http.Handler) (*Poller, *store.Store) {
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
	notifications := service.NewNotifications(client)

	s := store.New(sess, st)
	p := NewPoller(notifications, s, time.Second, 20)
	t.Cleanup(p.Stop)
	return p, s
}

func TestRefreshReplacesNotifications(t *testing.T) {
	p, s := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[
			{"id":"n1","read":true,"createdAt":"2026-03-01T10:00:00Z"},
			{"id":"n2","read":false,"createdAt":"2026-03-01T09:00:00Z"}
		],"totalPages":1,"totalElements":2,"size":20,"number":0}`))
	}))

	p.refresh(context.Background())

	ns := s.State().Notifications
	if len(ns) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(ns))
	}
	// Unread first after the merge sort.
	if ns[0].ID != "n2" || ns[1].ID != "n1" {
		t.Fatalf("unexpected order: %s %s", ns[0].ID, ns[1].ID)
	}
}

func TestRefreshSkipsWithoutUser(t *testing.T) {
	var hits atomic.Int32
	p, s := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	s.Dispatch(store.SetUser{User: nil})

	p.refresh(context.Background())
	if hits.Load() != 0 {
		t.Fatalf("refresh without user must not hit the backend, got %d", hits.Load())
	}
}

func TestRefreshFailureKeepsState(t *testing.T) {
	p, s := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	s.Dispatch(store.SetNotifications{Notifications: []model.Notification{{ID: "n1"}}})

	p.refresh(context.Background())

	if len(s.State().Notifications) != 1 {
		t.Fatal("failed refresh must leave the current list untouched")
	}
}

func TestOverlayKeepsLocalMarkRead(t *testing.T) {
	p := NewPoller(nil, nil, time.Second, 20)
	p.NoteRead("n1")

	// Server still reports n1 unread: the local mark-read wins.
	merged := p.applyOverlay([]model.Notification{
		{ID: "n1", Read: false},
		{ID: "n2", Read: false},
	})
	if !merged[0].Read {
		t.Fatal("overlay should keep n1 read")
	}
	if merged[1].Read {
		t.Fatal("n2 must be untouched")
	}

	// Once the server reflects the read, the overlay entry is dropped and the
	// server value passes through unchanged.
	merged = p.applyOverlay([]model.Notification{{ID: "n1", Read: true}})
	if !merged[0].Read {
		t.Fatal("server-read n1 should stay read")
	}
	if _, ok := p.readIDs["n1"]; ok {
		t.Fatal("absorbed read overlay should be dropped")
	}
}

func TestOverlayHidesLocalDelete(t *testing.T) {
	p := NewPoller(nil, nil, time.Second, 20)
	p.NoteDeleted("n1")

	// Server still returns the deleted row: it stays hidden.
	merged := p.applyOverlay([]model.Notification{
		{ID: "n1"},
		{ID: "n2"},
	})
	if len(merged) != 1 || merged[0].ID != "n2" {
		t.Fatalf("deleted row should be hidden, got %+v", merged)
	}
	if _, ok := p.deletedIDs["n1"]; !ok {
		t.Fatal("delete overlay must survive while the server returns the row")
	}

	// Server stopped returning it: the overlay entry is absorbed.
	merged = p.applyOverlay([]model.Notification{{ID: "n2"}})
	if len(merged) != 1 {
		t.Fatalf("expected 1 row, got %d", len(merged))
	}
	if _, ok := p.deletedIDs["n1"]; ok {
		t.Fatal("absorbed delete overlay should be dropped")
	}
}

func TestRestartDoesNotStackScheduleEntries(t *testing.T) {
	p, _ := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	// A login/logout/login sequence restarts the loop; each cycle must
	// leave exactly the one schedule entry it uses.
	for cycle := 0; cycle < 3; cycle++ {
		if err := p.Start(context.Background()); err != nil {
			t.Fatalf("cycle %d: Start returned error: %v", cycle, err)
		}
		if got := len(p.cron.Entries()); got != 1 {
			t.Fatalf("cycle %d: expected 1 schedule entry while running, got %d", cycle, got)
		}
		p.Stop()
		if got := len(p.cron.Entries()); got != 0 {
			t.Fatalf("cycle %d: expected 0 schedule entries after Stop, got %d", cycle, got)
		}
	}
}

func TestStartStopLifecycle(t *testing.T) {
	p, s := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"n1","createdAt":"2026-03-01T10:00:00Z"}]`))
	}))

	updated := make(chan struct{}, 1)
	unsub := s.Subscribe(func(state store.State) {
		if len(state.Notifications) > 0 {
			select {
			case updated <- struct{}{}:
			default:
			}
		}
	})
	defer unsub()

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if !p.Running() {
		t.Fatal("poller should report running")
	}
	// Starting twice is a no-op.
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("second Start returned error: %v", err)
	}

	select {
	case <-updated:
	case <-time.After(3 * time.Second):
		t.Fatal("immediate refresh never reached the store")
	}

	// Dropping the user stops the loop.
	s.Dispatch(store.SetUser{User: nil})
	deadline := time.Now().Add(3 * time.Second)
	for p.Running() {
		if time.Now().After(deadline) {
			t.Fatal("poller did not stop after user went nil")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Stop after stop is a no-op.
	p.Stop()
}
