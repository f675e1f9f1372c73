package model

import (
	"sort"
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// SortNotifications orders a list for display: unread before read, each
// group newest first. The sort is stable so equal timestamps keep their
// fetch order.
func SortNotifications(ns []Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].Read != ns[j].Read {
			return !ns[i].Read
		}
		return ns[i].CreatedAt.After(ns[j].CreatedAt)
	})
}

type BroadcastRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
	Channel  string `json:"channel"`
}

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

const (
	ChannelPush  = "push"
	ChannelEmail = "email"
)

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateResponse struct {
	GeneratedMessage string `json:"generatedMessage"`
}

// SplitBroadcast derives a title from the first line of an authored message,
// stripping markdown emphasis characters, and returns the remainder as the
// body. An empty first line falls back to "Broadcast".
func SplitBroadcast(message string) (title, body string) {
	trimmed := strings.TrimSpace(message)
	first, rest, _ := strings.Cut(trimmed, "\n")

	title = strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '#', '*', '_':
			return -1
		}
		return r
	}, first))
	if title == "" {
		title = "Broadcast"
	}

	return title, strings.TrimSpace(rest)
}
