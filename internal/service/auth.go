package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/user-console/internal/api"
	"github.com/user-console/internal/logger"
	"github.com/user-console/internal/model"
	"github.com/user-console/internal/session"
)

// Auth wraps the login/logout endpoints and owns establishing and tearing
// down the session.
type Auth struct {
	client  *api.Client
	session *session.Session
}

func NewAuth(client *api.Client, sess *session.Session) *Auth {
	return &Auth{client: client, session: sess}
}

// Login authenticates against the user service and establishes the session
// from the response.
func (a *Auth) Login(ctx context.Context, email, password string) (*model.User, error) {
	resp, err := api.Call[model.LoginResponse](ctx, a.client, "/auth/login", api.Options{
		Method: http.MethodPost,
		Body:   model.LoginRequest{Email: email, Password: password},
		Public: true,
	})
	if err != nil {
		logger.Error("login failed", "email", email, "error", err)
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("invalid login response: missing access token")
	}

	user := resp.User()
	if err := a.session.Establish(resp.AccessToken, user); err != nil {
		return nil, err
	}

	logger.Info("login succeeded", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Logout tells the backend and destroys the local session. The local
// teardown happens even when the backend call fails; the worst case must
// remain a redirect to login, not a stuck session.
func (a *Auth) Logout(ctx context.Context) error {
	_, err := api.Call[struct{}](ctx, a.client, "/auth/logout", api.Options{
		Method: http.MethodPost,
	})
	if err != nil {
		logger.Warn("logout request failed", "error", err)
	}

	if clearErr := a.session.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}
