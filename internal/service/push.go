package service

import (
	"context"
	"net/http"

	"github.com/user-console/internal/api"
	"github.com/user-console/internal/logger"
)

// Push registers device tokens for push delivery. The registration endpoint
// lives outside the service-routing table.
type Push struct {
	client *api.Client
	base   string
}

func NewPush(client *api.Client, baseURL string) *Push {
	return &Push{client: client, base: baseURL}
}

type registerRequest struct {
	Token string `json:"token"`
}

// Register forwards a device token obtained from the push provider.
func (p *Push) Register(ctx context.Context, token string) error {
	_, err := api.Call[struct{}](ctx, p.client, "/fcm/register", api.Options{
		Method:  http.MethodPost,
		Body:    registerRequest{Token: token},
		BaseURL: p.base,
	})
	if err != nil {
		logger.Error("push registration failed", "error", err)
	}
	return err
}
