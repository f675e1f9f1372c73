package store

import "github.com/user-console/internal/model"

// reduce is a total, pure transition function. Slices are copied on write so
// a returned snapshot never aliases a previous one. Unknown actions cannot
// occur: the Action interface is closed to this package's types.
func reduce(s State, action Action) State {
	switch a := action.(type) {
	case SetUser:
		s.User = a.User
		s.IsAuthenticated = a.User != nil

	case SetUsers:
		s.Users = a.Users

	case SetAddresses:
		s.Addresses = a.Addresses

	case SetNotifications:
		s.Notifications = a.Notifications

	case SetLoading:
		s.Loading = a.Loading

	case SetError:
		s.Err = a.Message

	case AddUser:
		s.Users = append(copyUsers(s.Users), a.User)

	case UpdateUser:
		users := copyUsers(s.Users)
		for i := range users {
			if users[i].ID == a.User.ID {
				users[i] = a.User
			}
		}
		s.Users = users

	case DeleteUser:
		users := make([]model.User, 0, len(s.Users))
		for _, u := range s.Users {
			if u.ID != a.ID {
				users = append(users, u)
			}
		}
		s.Users = users

	case AddAddress:
		s.Addresses = append(copyAddresses(s.Addresses), a.Address)

	case UpdateAddress:
		addresses := copyAddresses(s.Addresses)
		for i := range addresses {
			if addresses[i].ID == a.Address.ID {
				addresses[i] = a.Address
			}
		}
		s.Addresses = addresses

	case DeleteAddress:
		addresses := make([]model.Address, 0, len(s.Addresses))
		for _, addr := range s.Addresses {
			if addr.ID != a.ID {
				addresses = append(addresses, addr)
			}
		}
		s.Addresses = addresses

	case MarkNotificationRead:
		notifications := make([]model.Notification, len(s.Notifications))
		copy(notifications, s.Notifications)
		for i := range notifications {
			if notifications[i].ID == a.ID {
				notifications[i].Read = true
			}
		}
		s.Notifications = notifications

	case SetTheme:
		s.Theme = a.Theme
	}

	return s
}

func copyUsers(users []model.User) []model.User {
	out := make([]model.User, len(users))
	copy(out, users)
	return out
}

func copyAddresses(addresses []model.Address) []model.Address {
	out := make([]model.Address, len(addresses))
	copy(out, addresses)
	return out
}
