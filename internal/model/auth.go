package model

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the wire response of POST /auth/login. Some backend
// versions send firstname/lastname in lowercase; both spellings are decoded.
type LoginResponse struct {
	AccessToken     string   `json:"accessToken"`
	TokenType       string   `json:"tokenType,omitempty"`
	UserID          string   `json:"userId"`
	Email           string   `json:"email"`
	Role            UserRole `json:"role"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	FirstNameLegacy string   `json:"firstname"`
	LastNameLegacy  string   `json:"lastname"`
}

// User maps the login response onto the session identity.
func (r *LoginResponse) User() *User {
	first := r.FirstName
	if first == "" {
		first = r.FirstNameLegacy
	}
	last := r.LastName
	if last == "" {
		last = r.LastNameLegacy
	}
	return &User{
		ID:        r.UserID,
		Email:     r.Email,
		Role:      r.Role,
		FirstName: first,
		LastName:  last,
	}
}
