package service

import (
	"context"
	"net/http"

	"github.com/user-console/internal/api"
	"github.com/user-console/internal/logger"
	"github.com/user-console/internal/model"
)

// Addresses wraps the address CRUD endpoints. Ownership by userId is not
// enforced here beyond what the backend does.
type Addresses struct {
	client *api.Client
}

func NewAddresses(client *api.Client) *Addresses {
	return &Addresses{client: client}
}

func (a *Addresses) List(ctx context.Context) ([]model.Address, error) {
	addresses, err := api.Call[[]model.Address](ctx, a.client, "/addresses", api.Options{})
	if err != nil {
		logger.Error("failed to fetch addresses", "error", err)
		return nil, err
	}
	return addresses, nil
}

func (a *Addresses) Get(ctx context.Context, id string) (*model.Address, error) {
	address, err := api.Call[model.Address](ctx, a.client, "/addresses/"+id, api.Options{})
	if err != nil {
		logger.Error("failed to fetch address", "address_id", id, "error", err)
		return nil, err
	}
	return &address, nil
}

func (a *Addresses) Create(ctx context.Context, address model.Address) (*model.Address, error) {
	created, err := api.Call[model.Address](ctx, a.client, "/addresses", api.Options{
		Method: http.MethodPost,
		Body:   address,
	})
	if err != nil {
		logger.Error("failed to create address", "user_id", address.UserID, "error", err)
		return nil, err
	}
	return &created, nil
}

func (a *Addresses) Update(ctx context.Context, id string, address model.Address) (*model.Address, error) {
	updated, err := api.Call[model.Address](ctx, a.client, "/addresses/"+id, api.Options{
		Method: http.MethodPut,
		Body:   address,
	})
	if err != nil {
		logger.Error("failed to update address", "address_id", id, "error", err)
		return nil, err
	}
	return &updated, nil
}

func (a *Addresses) Delete(ctx context.Context, id string) error {
	_, err := api.Call[struct{}](ctx, a.client, "/addresses/"+id, api.Options{
		Method: http.MethodDelete,
	})
	if err != nil {
		logger.Error("failed to delete address", "address_id", id, "error", err)
	}
	return err
}
