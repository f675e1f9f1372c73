package service

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user-console/internal/api"
	"github.com/user-console/internal/logger"
	"github.com/user-console/internal/model"
)

// Users wraps the user-management endpoints.
type Users struct {
	client   *api.Client
	validate *validator.Validate
}

func NewUsers(client *api.Client) *Users {
	v := validator.New()
	// Report json field names, not Go field names, in validation errors.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Users{client: client, validate: v}
}

// List fetches one page of users, normalizing a bare-array response into the
// pagination envelope.
func (u *Users) List(ctx context.Context, page, size int) (model.Page[model.User], error) {
	endpoint := fmt.Sprintf("/users?page=%d&size=%d", page, size)
	raw, err := u.client.Raw(ctx, endpoint, api.Options{})
	if err != nil {
		logger.Error("failed to fetch users", "page", page, "error", err)
		return model.Page[model.User]{}, err
	}
	return model.NormalizePage[model.User](raw, size)
}

func (u *Users) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := api.Call[model.User](ctx, u.client, "/users/"+id, api.Options{})
	if err != nil {
		logger.Error("failed to fetch user", "user_id", id, "error", err)
		return nil, err
	}
	return &user, nil
}

func (u *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := api.Call[model.User](ctx, u.client, "/users/email/"+email, api.Options{})
	if err != nil {
		logger.Error("failed to fetch user by email", "email", email, "error", err)
		return nil, err
	}
	return &user, nil
}

// Create validates the form locally first: a request with missing required
// fields never reaches the network. The backend stays the authority on
// everything else.
func (u *Users) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := u.checkRequired(req); err != nil {
		return nil, err
	}

	created, err := api.Call[model.User](ctx, u.client, "/users", api.Options{
		Method: http.MethodPost,
		Body:   userPayload(req),
	})
	if err != nil {
		logger.Error("failed to create user", "email", req.Email, "error", err)
		return nil, err
	}
	return &created, nil
}

func (u *Users) Update(ctx context.Context, id string, req model.CreateUserRequest) (*model.User, error) {
	updated, err := api.Call[model.User](ctx, u.client, "/users/"+id, api.Options{
		Method: http.MethodPut,
		Body:   userPayload(req),
	})
	if err != nil {
		logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, err
	}
	return &updated, nil
}

func (u *Users) Delete(ctx context.Context, id string) error {
	_, err := api.Call[struct{}](ctx, u.client, "/users/"+id, api.Options{
		Method: http.MethodDelete,
	})
	if err != nil {
		logger.Error("failed to delete user", "user_id", id, "error", err)
	}
	return err
}

// UpdateProfile edits the caller's own name and phone number.
func (u *Users) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (*model.User, error) {
	updated, err := api.Call[model.User](ctx, u.client, "/users/profile", api.Options{
		Method: http.MethodPut,
		Body:   req,
	})
	if err != nil {
		logger.Error("failed to update profile", "error", err)
		return nil, err
	}
	return &updated, nil
}

// RequestPasswordChange files a change request; for non-admin users the
// change only takes effect once an admin approves it.
func (u *Users) RequestPasswordChange(ctx context.Context, userID, oldPassword, newPassword string) error {
	_, err := api.Call[struct{}](ctx, u.client, "/users/"+userID+"/change-password", api.Options{
		Method: http.MethodPost,
		Body:   model.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword},
	})
	if err != nil {
		logger.Error("failed to request password change", "user_id", userID, "error", err)
	}
	return err
}

// PendingPasswordChangeRequests lists unresolved requests for admins.
func (u *Users) PendingPasswordChangeRequests(ctx context.Context) ([]model.PasswordChangeRequest, error) {
	requests, err := api.Call[[]model.PasswordChangeRequest](ctx, u.client,
		"/users/password-change-requests/pending", api.Options{})
	if err != nil {
		logger.Error("failed to fetch pending password requests", "error", err)
		return nil, err
	}
	return requests, nil
}

// ResolvePasswordChange approves or rejects a pending request.
func (u *Users) ResolvePasswordChange(ctx context.Context, requestID, adminID string, approved bool) error {
	_, err := api.Call[struct{}](ctx, u.client,
		"/users/password-change-requests/"+requestID+"/approve", api.Options{
			Method: http.MethodPut,
			Body:   model.ResolvePasswordChangeRequest{AdminID: adminID, Approved: approved},
		})
	if err != nil {
		logger.Error("failed to resolve password request",
			"request_id", requestID, "approved", approved, "error", err)
	}
	return err
}

// checkRequired raises a descriptive error naming every missing required
// field, saving a round trip for obviously incomplete input.
func (u *Users) checkRequired(req model.CreateUserRequest) error {
	err := u.validate.Struct(req)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var missing []string
	for _, fieldErr := range errs {
		if fieldErr.Tag() == "required" {
			missing = append(missing, fieldErr.Field())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return err
}

// createUserPayload is the wire shape of user create/update. The nested
// address is flattened; an absent phone number is sent as explicit null.
type createUserPayload struct {
	FirstName   string               `json:"firstName"`
	LastName    string               `json:"lastName"`
	Email       string               `json:"email"`
	Password    string               `json:"password"`
	DateOfBirth string               `json:"dateOfBirth"`
	Gender      string               `json:"gender"`
	Role        model.UserRole       `json:"role"`
	PhoneNumber *string              `json:"phoneNumber"`
	Address     *model.AddressPayload `json:"address"`
}

func userPayload(req model.CreateUserRequest) createUserPayload {
	var phone *string
	if req.PhoneNumber != "" {
		phone = &req.PhoneNumber
	}
	return createUserPayload{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Role:        req.Role,
		PhoneNumber: phone,
		Address:     req.Address.Flatten(),
	}
}
