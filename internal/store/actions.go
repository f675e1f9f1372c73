package store

import "github.com/user-console/internal/model"

// Action is the closed vocabulary of state transitions. Every concrete
// action lives in this file; the reducer handles all of them.
type Action interface {
	isAction()
}

type SetUser struct{ User *model.User }

type SetUsers struct{ Users []model.User }

type SetAddresses struct{ Addresses []model.Address }

type SetNotifications struct{ Notifications []model.Notification }

type SetLoading struct{ Loading bool }

type SetError struct{ Message string }

type AddUser struct{ User model.User }

type UpdateUser struct{ User model.User }

type DeleteUser struct{ ID string }

type AddAddress struct{ Address model.Address }

type UpdateAddress struct{ Address model.Address }

type DeleteAddress struct{ ID string }

type MarkNotificationRead struct{ ID string }

type SetTheme struct{ Theme Theme }

func (SetUser) isAction()              {}
func (SetUsers) isAction()             {}
func (SetAddresses) isAction()         {}
func (SetNotifications) isAction()     {}
func (SetLoading) isAction()           {}
func (SetError) isAction()             {}
func (AddUser) isAction()              {}
func (UpdateUser) isAction()           {}
func (DeleteUser) isAction()           {}
func (AddAddress) isAction()           {}
func (UpdateAddress) isAction()        {}
func (DeleteAddress) isAction()        {}
func (MarkNotificationRead) isAction() {}
func (SetTheme) isAction()             {}
