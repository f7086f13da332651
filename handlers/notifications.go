// ABOUTME: Notification feed MCP tool handlers
// ABOUTME: Implements list_notifications, mark_notification_read, clear_notifications
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/bizdesk/models"
	"github.com/harperreed/bizdesk/store"
)

type NotificationHandlers struct {
	desk *store.Desk
}

func NewNotificationHandlers(desk *store.Desk) *NotificationHandlers {
	return &NotificationHandlers{desk: desk}
}

type ListNotificationsInput struct {
	UnreadOnly bool `json:"unread_only,omitempty" jsonschema:"Only return unread notifications"`
	Limit      int  `json:"limit,omitempty" jsonschema:"Max results (default 50)"`
}

type NotificationOutput struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	IsRead    bool   `json:"is_read"`
	Priority  string `json:"priority"`
}

type ListNotificationsOutput struct {
	Notifications []NotificationOutput `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

func (h *NotificationHandlers) ListNotifications(_ context.Context, _ *mcp.CallToolRequest, input ListNotificationsInput) (*mcp.CallToolResult, ListNotificationsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	out := ListNotificationsOutput{UnreadCount: h.desk.Notifications.UnreadCount()}
	for _, n := range h.desk.Notifications.All() {
		if input.UnreadOnly && n.IsRead {
			continue
		}
		out.Notifications = append(out.Notifications, notificationToOutput(n))
		if len(out.Notifications) >= limit {
			break
		}
	}

	return nil, out, nil
}

type MarkNotificationReadInput struct {
	ID  string `json:"id,omitempty" jsonschema:"Notification ID to mark read"`
	All bool   `json:"all,omitempty" jsonschema:"Mark every notification read instead of a single one"`
}

type MarkNotificationReadOutput struct {
	Marked      int `json:"marked"`
	UnreadCount int `json:"unread_count"`
}

func (h *NotificationHandlers) MarkNotificationRead(_ context.Context, _ *mcp.CallToolRequest, input MarkNotificationReadInput) (*mcp.CallToolResult, MarkNotificationReadOutput, error) {
	if !input.All && input.ID == "" {
		return nil, MarkNotificationReadOutput{}, fmt.Errorf("either id or all is required")
	}

	marked := 0
	if input.All {
		marked = h.desk.Notifications.MarkAllAsRead()
	} else if h.desk.Notifications.MarkAsRead(input.ID) {
		marked = 1
	} else {
		return nil, MarkNotificationReadOutput{}, fmt.Errorf("notification not found: %s", input.ID)
	}

	return nil, MarkNotificationReadOutput{
		Marked:      marked,
		UnreadCount: h.desk.Notifications.UnreadCount(),
	}, nil
}

type ClearNotificationsInput struct {
	ID string `json:"id,omitempty" jsonschema:"Delete a single notification by ID; omit to clear the whole feed"`
}

type ClearNotificationsOutput struct {
	Cleared int `json:"cleared"`
}

func (h *NotificationHandlers) ClearNotifications(_ context.Context, _ *mcp.CallToolRequest, input ClearNotificationsInput) (*mcp.CallToolResult, ClearNotificationsOutput, error) {
	if input.ID != "" {
		if !h.desk.Notifications.Delete(input.ID) {
			return nil, ClearNotificationsOutput{}, fmt.Errorf("notification not found: %s", input.ID)
		}
		return nil, ClearNotificationsOutput{Cleared: 1}, nil
	}

	return nil, ClearNotificationsOutput{Cleared: h.desk.Notifications.ClearAll()}, nil
}

func notificationToOutput(n models.Notification) NotificationOutput {
	return NotificationOutput{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Timestamp: n.Timestamp.Format(time.RFC3339),
		IsRead:    n.IsRead,
		Priority:  n.Priority,
	}
}
