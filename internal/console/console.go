// Package console assembles the client core and exposes the operations the
// screens invoke: every operation goes service -> store dispatch, so views
// only ever read store snapshots.
package console

import (
	"context"
	"fmt"

	"github.com/user-console/internal/api"
	"github.com/user-console/internal/config"
	"github.com/user-console/internal/guard"
	"github.com/user-console/internal/logger"
	"github.com/user-console/internal/model"
	"github.com/user-console/internal/poll"
	"github.com/user-console/internal/report"
	"github.com/user-console/internal/service"
	"github.com/user-console/internal/session"
	"github.com/user-console/internal/storage"
	"github.com/user-console/internal/store"
)

type Console struct {
	Auth          *service.Auth
	Users         *service.Users
	Addresses     *service.Addresses
	Notifications *service.Notifications
	Push          *service.Push

	Store  *store.Store
	Guard  *guard.Guard
	Poller *poll.Poller

	UserPager         model.Pager
	NotificationPager model.Pager

	client   *api.Client
	session  *session.Session
	reporter *report.Reporter
	runCtx   context.Context
}

// New wires the whole client core from configuration.
func New(cfg *config.Config) (*Console, error) {
	c := &Console{
		UserPager:         model.NewPager(10),
		NotificationPager: model.NewPager(cfg.Sync.PageSize),
		runCtx:            context.Background(),
	}

	reporter, err := report.New(cfg.Sentry.DSN, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize error reporting: %w", err)
	}
	c.reporter = reporter

	st, err := storage.Open(cfg.Storage.StatePath)
	if err != nil {
		return nil, err
	}
	c.session = session.New(st)

	c.client = api.NewClient(cfg.Services, cfg.Client.RequestTimeout, c.session,
		api.WithReporter(reporter),
		api.WithRedirect(c.onAuthRedirect),
	)

	c.Auth = service.NewAuth(c.client, c.session)
	c.Users = service.NewUsers(c.client)
	c.Addresses = service.NewAddresses(c.client)
	c.Notifications = service.NewNotifications(c.client)
	c.Push = service.NewPush(c.client, cfg.Services.PushServiceURL)

	c.Store = store.New(c.session, st)
	c.Guard = guard.New(c.session)
	c.Poller = poll.NewPoller(c.Notifications, c.Store, cfg.Sync.PollInterval, cfg.Sync.PageSize)

	return c, nil
}

// Start begins background synchronization when a rehydrated session is
// already live.
func (c *Console) Start(ctx context.Context) error {
	c.runCtx = ctx
	if c.session.Authenticated() {
		return c.Poller.Start(ctx)
	}
	return nil
}

// Stop tears down background work and flushes error reporting.
func (c *Console) Stop() {
	c.Poller.Stop()
	c.reporter.Close()
}

// onAuthRedirect is fired by the access layer when a call hits a missing
// token or a 401. The session is already cleared; mirror that into the
// store so dependent views drop the stale identity.
func (c *Console) onAuthRedirect(path string) {
	logger.Info("auth redirect", "path", path)
	if c.Store != nil && c.Store.State().User != nil {
		c.Store.Dispatch(store.SetUser{User: nil})
	}
}

// Navigate evaluates the route guard for a path.
func (c *Console) Navigate(path string) guard.Decision {
	return c.Guard.Check(path)
}

// Login authenticates and brings up the notification loop.
func (c *Console) Login(ctx context.Context, email, password string) error {
	c.Store.Dispatch(store.SetLoading{Loading: true})
	c.Store.Dispatch(store.SetError{})

	user, err := c.Auth.Login(ctx, email, password)
	if err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		c.Store.Dispatch(store.SetLoading{Loading: false})
		return err
	}

	c.Store.Dispatch(store.SetUser{User: user})
	c.Store.Dispatch(store.SetLoading{Loading: false})
	return c.Poller.Start(c.runCtx)
}

// Logout tears the session down; the poller stops itself when the user
// slice goes nil.
func (c *Console) Logout(ctx context.Context) error {
	err := c.Auth.Logout(ctx)
	c.Store.Dispatch(store.SetUser{User: nil})
	return err
}

// LoadUsers fetches the user pager's current page into the store.
func (c *Console) LoadUsers(ctx context.Context) error {
	c.Store.Dispatch(store.SetLoading{Loading: true})
	defer c.Store.Dispatch(store.SetLoading{Loading: false})

	page, err := c.Users.List(ctx, c.UserPager.Page, c.UserPager.Size)
	if err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		return err
	}

	c.UserPager.Track(page.TotalPages, page.TotalElements)
	c.Store.Dispatch(store.SetUsers{Users: page.Content})
	return nil
}

func (c *Console) NextUsersPage(ctx context.Context) error {
	c.UserPager.Next()
	return c.LoadUsers(ctx)
}

func (c *Console) PrevUsersPage(ctx context.Context) error {
	c.UserPager.Prev()
	return c.LoadUsers(ctx)
}

// CreateUser creates then re-fetches: the backend list stays authoritative,
// the AddUser action only bridges until the fetch lands.
func (c *Console) CreateUser(ctx context.Context, req model.CreateUserRequest) error {
	created, err := c.Users.Create(ctx, req)
	if err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		return err
	}
	c.Store.Dispatch(store.AddUser{User: *created})
	return c.LoadUsers(ctx)
}

func (c *Console) UpdateUser(ctx context.Context, id string, req model.CreateUserRequest) error {
	updated, err := c.Users.Update(ctx, id, req)
	if err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		return err
	}
	c.Store.Dispatch(store.UpdateUser{User: *updated})
	return c.LoadUsers(ctx)
}

func (c *Console) DeleteUser(ctx context.Context, id string) error {
	if err := c.Users.Delete(ctx, id); err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		return err
	}
	c.Store.Dispatch(store.DeleteUser{ID: id})
	return c.LoadUsers(ctx)
}

func (c *Console) LoadAddresses(ctx context.Context) error {
	addresses, err := c.Addresses.List(ctx)
	if err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		return err
	}
	c.Store.Dispatch(store.SetAddresses{Addresses: addresses})
	return nil
}

func (c *Console) CreateAddress(ctx context.Context, address model.Address) error {
	created, err := c.Addresses.Create(ctx, address)
	if err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		return err
	}
	c.Store.Dispatch(store.AddAddress{Address: *created})
	return nil
}

func (c *Console) UpdateAddress(ctx context.Context, id string, address model.Address) error {
	updated, err := c.Addresses.Update(ctx, id, address)
	if err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		return err
	}
	c.Store.Dispatch(store.UpdateAddress{Address: *updated})
	return nil
}

func (c *Console) DeleteAddress(ctx context.Context, id string) error {
	if err := c.Addresses.Delete(ctx, id); err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		return err
	}
	c.Store.Dispatch(store.DeleteAddress{ID: id})
	return nil
}

// LoadNotifications fetches the notification pager's current page for the
// signed-in user.
func (c *Console) LoadNotifications(ctx context.Context) error {
	state := c.Store.State()
	if state.User == nil {
		return api.ErrUnauthorized
	}

	page, err := c.Notifications.ListForUser(ctx, state.User.ID,
		c.NotificationPager.Page, c.NotificationPager.Size)
	if err != nil {
		c.Store.Dispatch(store.SetError{Message: err.Error()})
		return err
	}

	c.NotificationPager.Track(page.TotalPages, page.TotalElements)
	c.Store.Dispatch(store.SetNotifications{Notifications: page.Content})
	return nil
}

// MarkNotificationRead forwards the mutation, mirrors it locally, and tells
// the poller so the next refresh cannot revert it.
func (c *Console) MarkNotificationRead(ctx context.Context, id string) error {
	if err := c.Notifications.MarkRead(ctx, id); err != nil {
		return err
	}
	c.Store.Dispatch(store.MarkNotificationRead{ID: id})
	c.Poller.NoteRead(id)
	return nil
}

// DeleteNotification forwards the delete, drops the row locally, and steps
// the pager back when the page emptied.
func (c *Console) DeleteNotification(ctx context.Context, id string) error {
	if err := c.Notifications.Delete(ctx, id); err != nil {
		return err
	}
	c.Poller.NoteDeleted(id)

	remaining := make([]model.Notification, 0)
	for _, n := range c.Store.State().Notifications {
		if n.ID != id {
			remaining = append(remaining, n)
		}
	}
	c.Store.Dispatch(store.SetNotifications{Notifications: remaining})

	c.NotificationPager.AfterDelete(len(remaining))
	return c.LoadNotifications(ctx)
}

// GenerateDraft is step one of the broadcast composer: draft from a prompt,
// then the author edits before sending.
func (c *Console) GenerateDraft(ctx context.Context, prompt string) (string, error) {
	return c.Notifications.GenerateDraft(ctx, prompt)
}

// BroadcastNotification is step two: fan the edited message out.
func (c *Console) BroadcastNotification(ctx context.Context, message, priority, channel string) error {
	return c.Notifications.Broadcast(ctx, message, priority, channel)
}

// UpdateProfile edits the signed-in user and refreshes the user slice.
func (c *Console) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) error {
	updated, err := c.Users.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	c.Store.Dispatch(store.SetUser{User: updated})
	return nil
}

// ChangePassword files a password-change request for the signed-in user.
func (c *Console) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	state := c.Store.State()
	if state.User == nil {
		return api.ErrUnauthorized
	}
	return c.Users.RequestPasswordChange(ctx, state.User.ID, oldPassword, newPassword)
}

// PendingPasswordRequests lists unresolved requests; admin only.
func (c *Console) PendingPasswordRequests(ctx context.Context) ([]model.PasswordChangeRequest, error) {
	if !c.Store.State().User.IsAdmin() {
		return nil, fmt.Errorf("permission denied: admin role required")
	}
	return c.Users.PendingPasswordChangeRequests(ctx)
}

// ResolvePasswordRequest approves or rejects a request as the signed-in
// admin.
func (c *Console) ResolvePasswordRequest(ctx context.Context, requestID string, approved bool) error {
	state := c.Store.State()
	if !state.User.IsAdmin() {
		return fmt.Errorf("permission denied: admin role required")
	}
	return c.Users.ResolvePasswordChange(ctx, requestID, state.User.ID, approved)
}

// RegisterPush forwards a push-provider device token.
func (c *Console) RegisterPush(ctx context.Context, token string) error {
	return c.Push.Register(ctx, token)
}

// SetTheme switches the visual mode; persistence rides the store's side
// channel.
func (c *Console) SetTheme(theme store.Theme) {
	c.Store.Dispatch(store.SetTheme{Theme: theme})
}

// ServiceStatuses probes backend reachability for the status widget.
func (c *Console) ServiceStatuses(ctx context.Context) map[api.Service]bool {
	return c.client.ServiceStatuses(ctx)
}
