package model

type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Role        UserRole `json:"role"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// CreateUserRequest is the console-side form for creating (or replacing) a
// user. The backend remains the authority on correctness; the required tags
// only guard against obviously incomplete input before a round trip.
type CreateUserRequest struct {
	FirstName   string       `json:"firstName" validate:"required"`
	LastName    string       `json:"lastName" validate:"required"`
	Email       string       `json:"email" validate:"required"`
	Password    string       `json:"password" validate:"required"`
	DateOfBirth string       `json:"dateOfBirth" validate:"required"`
	Gender      string       `json:"gender" validate:"required"`
	Role        UserRole     `json:"role" validate:"required"`
	PhoneNumber string       `json:"phoneNumber"`
	Address     *AddressForm `json:"address"`
}

type UpdateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}
