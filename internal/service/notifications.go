package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/user-console/internal/api"
	"github.com/user-console/internal/logger"
	"github.com/user-console/internal/model"
)

// Notifications wraps the notification service endpoints, including the
// two-step AI-assisted broadcast composer.
type Notifications struct {
	client *api.Client
}

func NewNotifications(client *api.Client) *Notifications {
	return &Notifications{client: client}
}

// ListForUser fetches one page of a user's notifications, normalized and
// sorted for display (unread first, newest first within each group).
func (n *Notifications) ListForUser(ctx context.Context, userID string, page, size int) (model.Page[model.Notification], error) {
	endpoint := fmt.Sprintf("/notifications/user/%s?page=%d&size=%d", userID, page, size)
	raw, err := n.client.Raw(ctx, endpoint, api.Options{})
	if err != nil {
		logger.Error("failed to fetch notifications", "user_id", userID, "page", page, "error", err)
		return model.Page[model.Notification]{}, err
	}

	result, err := model.NormalizePage[model.Notification](raw, size)
	if err != nil {
		return result, err
	}
	model.SortNotifications(result.Content)
	return result, nil
}

func (n *Notifications) MarkRead(ctx context.Context, id string) error {
	_, err := api.Call[struct{}](ctx, n.client, "/notifications/"+id+"/read", api.Options{
		Method: http.MethodPatch,
	})
	if err != nil {
		logger.Error("failed to mark notification read", "notification_id", id, "error", err)
	}
	return err
}

func (n *Notifications) Delete(ctx context.Context, id string) error {
	_, err := api.Call[struct{}](ctx, n.client, "/notifications/"+id, api.Options{
		Method: http.MethodDelete,
	})
	if err != nil {
		logger.Error("failed to delete notification", "notification_id", id, "error", err)
	}
	return err
}

// GenerateDraft asks the backend to draft a broadcast message from a prompt.
// The caller edits the draft before sending; nothing is broadcast here.
func (n *Notifications) GenerateDraft(ctx context.Context, prompt string) (string, error) {
	resp, err := api.Call[model.GenerateResponse](ctx, n.client, "/notifications/ai-generate", api.Options{
		Method: http.MethodPost,
		Body:   model.GenerateRequest{Prompt: prompt},
	})
	if err != nil {
		logger.Error("failed to generate notification draft", "error", err)
		return "", err
	}
	return resp.GeneratedMessage, nil
}

// Broadcast fans a message out to all users. The title is the message's
// first line with markdown emphasis stripped.
func (n *Notifications) Broadcast(ctx context.Context, message, priority, channel string) error {
	title, body := model.SplitBroadcast(message)

	_, err := api.Call[struct{}](ctx, n.client, "/notifications/broadcast", api.Options{
		Method: http.MethodPost,
		Body: model.BroadcastRequest{
			Title:    title,
			Message:  body,
			Priority: priority,
			Channel:  channel,
		},
	})
	if err != nil {
		logger.Error("failed to broadcast notification", "title", title, "error", err)
	}
	return err
}
