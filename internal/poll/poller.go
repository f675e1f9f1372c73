// Package poll keeps the store's notification list in sync with the backend
// on a fixed interval while a user is signed in.
package poll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/user-console/internal/logger"
	"github.com/user-console/internal/model"
	"github.com/user-console/internal/service"
	"github.com/user-console/internal/store"
)

type Poller struct {
	cron          *cron.Cron
	notifications *service.Notifications
	store         *store.Store
	interval      time.Duration
	pageSize      int

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	unsub   func()
	entry   cron.EntryID

	// Overlay of local mutations not yet reflected by the server. A poll
	// response is merged against it so a refresh cannot visually revert a
	// mark-read or delete that raced with it. Guarded by its own lock:
	// Stop holds mu while waiting for an in-flight refresh, and that
	// refresh needs the overlay.
	overlayMu  sync.Mutex
	readIDs    map[string]struct{}
	deletedIDs map[string]struct{}
}

func NewPoller(notifications *service.Notifications, st *store.Store, interval time.Duration, pageSize int) *Poller {
	return &Poller{
		cron:          cron.New(),
		notifications: notifications,
		store:         st,
		interval:      interval,
		pageSize:      pageSize,
		readIDs:       make(map[string]struct{}),
		deletedIDs:    make(map[string]struct{}),
	}
}

// Start fetches once immediately, then on every interval. The loop tears
// itself down when the store's user slice becomes nil.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	p.ctx, p.cancel = context.WithCancel(ctx)

	// Capture the ctx: the closure outlives this Start and must not read
	// fields rewritten by a later one.
	runCtx := p.ctx
	entry, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), func() {
		p.refresh(runCtx)
	})
	if err != nil {
		p.cancel()
		return fmt.Errorf("failed to schedule notification poll: %w", err)
	}
	p.entry = entry

	p.unsub = p.store.Subscribe(func(s store.State) {
		if s.User == nil {
			go p.Stop()
		}
	})

	p.cron.Start()
	p.running = true

	go p.refresh(p.ctx)

	logger.Info("notification poller started", "interval", p.interval)
	return nil
}

// Stop cancels the loop and waits for an in-flight refresh to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.cancel()
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
	<-p.cron.Stop().Done()
	// Drop the schedule entry, or restarts would stack one job per cycle.
	p.cron.Remove(p.entry)

	p.running = false
	logger.Info("notification poller stopped")
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// NoteRead records a locally applied mark-read so the next poll keeps it.
func (p *Poller) NoteRead(id string) {
	p.overlayMu.Lock()
	defer p.overlayMu.Unlock()
	p.readIDs[id] = struct{}{}
}

// NoteDeleted records a locally applied delete so the next poll keeps it.
func (p *Poller) NoteDeleted(id string) {
	p.overlayMu.Lock()
	defer p.overlayMu.Unlock()
	p.deletedIDs[id] = struct{}{}
}

// refresh replaces the store's notification list with a freshly fetched
// page, merged against the local-mutation overlay.
func (p *Poller) refresh(ctx context.Context) {
	state := p.store.State()
	if state.User == nil {
		return
	}

	page, err := p.notifications.ListForUser(ctx, state.User.ID, 0, p.pageSize)
	if err != nil {
		logger.Warn("notification refresh failed", "user_id", state.User.ID, "error", err)
		return
	}

	merged := p.applyOverlay(page.Content)
	model.SortNotifications(merged)
	p.store.Dispatch(store.SetNotifications{Notifications: merged})
}

// applyOverlay unions the fetched list with known local mutations. Entries
// the server already reflects are dropped from the overlay.
func (p *Poller) applyOverlay(fetched []model.Notification) []model.Notification {
	p.overlayMu.Lock()
	defer p.overlayMu.Unlock()

	seen := make(map[string]struct{}, len(fetched))
	merged := make([]model.Notification, 0, len(fetched))
	for _, n := range fetched {
		seen[n.ID] = struct{}{}

		if _, deleted := p.deletedIDs[n.ID]; deleted {
			continue
		}
		if _, read := p.readIDs[n.ID]; read {
			if n.Read {
				delete(p.readIDs, n.ID)
			}
			n.Read = true
		}
		merged = append(merged, n)
	}

	// Deletes the server no longer returns have been absorbed.
	for id := range p.deletedIDs {
		if _, ok := seen[id]; !ok {
			delete(p.deletedIDs, id)
		}
	}
	return merged
}
