package model

import "time"

type PasswordChangeStatus string

const (
	PasswordChangePending  PasswordChangeStatus = "PENDING"
	PasswordChangeApproved PasswordChangeStatus = "APPROVED"
	PasswordChangeRejected PasswordChangeStatus = "REJECTED"
)

// PasswordChangeRequest is created by a non-admin user's change-password
// action and resolved by an admin. Requester name/email are denormalized for
// display on the pending-requests screen.
type PasswordChangeRequest struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId"`
	NewPassword string               `json:"newPassword,omitempty"`
	Status      PasswordChangeStatus `json:"status"`
	AdminID     string               `json:"adminId,omitempty"`
	UserName    string               `json:"userName,omitempty"`
	UserEmail   string               `json:"userEmail,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   *time.Time           `json:"updatedAt,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type ResolvePasswordChangeRequest struct {
	AdminID  string `json:"adminId"`
	Approved bool   `json:"approved"`
}
