// ABOUTME: Client MCP tool handlers
// ABOUTME: Implements add_client, find_clients, update_client, delete_client
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/bizdesk/models"
	"github.com/harperreed/bizdesk/store"
)

type ClientHandlers struct {
	desk *store.Desk
}

func NewClientHandlers(desk *store.Desk) *ClientHandlers {
	return &ClientHandlers{desk: desk}
}

type AddClientInput struct {
	Name    string `json:"name" jsonschema:"Client name (required)"`
	Email   string `json:"email,omitempty" jsonschema:"Email address"`
	Phone   string `json:"phone,omitempty" jsonschema:"Phone number"`
	Company string `json:"company,omitempty" jsonschema:"Company name"`
	Type    string `json:"type,omitempty" jsonschema:"Client type: prospect, client, partner (default prospect)"`
	Notes   string `json:"notes,omitempty" jsonschema:"Free-text notes"`
}

type ClientOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Company     string   `json:"company,omitempty"`
	Status      string   `json:"status"`
	Type        string   `json:"type"`
	LastContact *string  `json:"last_contact,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	DealIDs     []string `json:"deal_ids,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

func (h *ClientHandlers) AddClient(_ context.Context, _ *mcp.CallToolRequest, input AddClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	if input.Name == "" {
		return nil, ClientOutput{}, fmt.Errorf("name is required")
	}

	c := h.desk.Clients.Add(models.Client{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Type:    input.Type,
		Notes:   input.Notes,
	})

	return nil, clientToOutput(c), nil
}

type FindClientsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Substring match on name, email, or company"`
	Type  string `json:"type,omitempty" jsonschema:"Filter by client type"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 50)"`
}

type FindClientsOutput struct {
	Clients []ClientOutput `json:"clients"`
}

func (h *ClientHandlers) FindClients(_ context.Context, _ *mcp.CallToolRequest, input FindClientsInput) (*mcp.CallToolResult, FindClientsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	query := strings.ToLower(input.Query)
	var out FindClientsOutput
	for _, c := range h.desk.Clients.All() {
		if input.Type != "" && c.Type != input.Type {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(strings.ToLower(c.Email), query) &&
			!strings.Contains(strings.ToLower(c.Company), query) {
			continue
		}
		out.Clients = append(out.Clients, clientToOutput(c))
		if len(out.Clients) >= limit {
			break
		}
	}

	return nil, out, nil
}

type UpdateClientInput struct {
	ID      string  `json:"id" jsonschema:"Client ID (required)"`
	Name    *string `json:"name,omitempty" jsonschema:"Updated name"`
	Email   *string `json:"email,omitempty" jsonschema:"Updated email"`
	Phone   *string `json:"phone,omitempty" jsonschema:"Updated phone"`
	Company *string `json:"company,omitempty" jsonschema:"Updated company"`
	Status  *string `json:"status,omitempty" jsonschema:"Updated status: active, inactive"`
	Type    *string `json:"type,omitempty" jsonschema:"Updated type: prospect, client, partner"`
	Notes   *string `json:"notes,omitempty" jsonschema:"Updated notes"`
}

func (h *ClientHandlers) UpdateClient(_ context.Context, _ *mcp.CallToolRequest, input UpdateClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, ClientOutput{}, fmt.Errorf("invalid client ID: %w", err)
	}

	c, found := h.desk.Clients.Update(id, store.ClientPatch{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Status:  input.Status,
		Type:    input.Type,
		Notes:   input.Notes,
	})
	if !found {
		return nil, ClientOutput{}, fmt.Errorf("client not found: %s", input.ID)
	}

	return nil, clientToOutput(c), nil
}

type DeleteClientInput struct {
	ID string `json:"id" jsonschema:"Client ID (required)"`
}

type DeleteClientOutput struct {
	Deleted bool `json:"deleted"`
}

func (h *ClientHandlers) DeleteClient(_ context.Context, _ *mcp.CallToolRequest, input DeleteClientInput) (*mcp.CallToolResult, DeleteClientOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DeleteClientOutput{}, fmt.Errorf("invalid client ID: %w", err)
	}

	return nil, DeleteClientOutput{Deleted: h.desk.Clients.Delete(id)}, nil
}

func clientToOutput(c models.Client) ClientOutput {
	out := ClientOutput{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Status:    c.Status,
		Type:      c.Type,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if c.LastContact != nil {
		s := c.LastContact.Format(time.RFC3339)
		out.LastContact = &s
	}
	for _, id := range c.DealIDs {
		out.DealIDs = append(out.DealIDs, id.String())
	}
	return out
}
