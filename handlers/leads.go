// ABOUTME: Lead MCP tool handlers
// ABOUTME: Implements add_lead, move_lead, update_lead, delete_lead, list_leads, pipeline_summary
package handlers

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/bizdesk/models"
	"github.com/harperreed/bizdesk/store"
	"github.com/harperreed/bizdesk/viz"
)

type LeadHandlers struct {
	desk *store.Desk
}

func NewLeadHandlers(desk *store.Desk) *LeadHandlers {
	return &LeadHandlers{desk: desk}
}

type AddLeadInput struct {
	Title       string  `json:"title" jsonschema:"Deal title (required)"`
	ClientName  string  `json:"client_name,omitempty" jsonschema:"Display name of the client"`
	ClientID    string  `json:"client_id,omitempty" jsonschema:"ID of an existing client to link the deal to"`
	Value       float64 `json:"value,omitempty" jsonschema:"Deal value in dollars"`
	Stage       string  `json:"stage,omitempty" jsonschema:"Pipeline stage (default warm-lead)"`
	DueDate     string  `json:"due_date,omitempty" jsonschema:"Due date in YYYY-MM-DD format"`
	Email       string  `json:"email,omitempty" jsonschema:"Contact email"`
	Phone       string  `json:"phone,omitempty" jsonschema:"Contact phone"`
	Notes       string  `json:"notes,omitempty" jsonschema:"Free-text notes"`
	Probability int     `json:"probability,omitempty" jsonschema:"Win probability 0-100"`
}

type LeadOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ClientName  string   `json:"client_name,omitempty"`
	ClientID    string   `json:"client_id,omitempty"`
	Value       float64  `json:"value"`
	Stage       string   `json:"stage"`
	DueDate     string   `json:"due_date,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Probability int      `json:"probability,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

func (h *LeadHandlers) AddLead(_ context.Context, _ *mcp.CallToolRequest, input AddLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	if input.Title == "" {
		return nil, LeadOutput{}, fmt.Errorf("title is required")
	}
	if input.Stage != "" && !models.ValidStage(input.Stage) {
		return nil, LeadOutput{}, fmt.Errorf("invalid stage %q, valid stages: %s", input.Stage, strings.Join(models.Stages(), ", "))
	}

	lead := models.Lead{
		Title:       input.Title,
		ClientName:  input.ClientName,
		Value:       toCents(input.Value),
		Stage:       input.Stage,
		Email:       input.Email,
		Phone:       input.Phone,
		Notes:       input.Notes,
		Probability: input.Probability,
	}
	if input.DueDate != "" {
		due, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return nil, LeadOutput{}, fmt.Errorf("invalid due date (want YYYY-MM-DD): %w", err)
		}
		lead.DueDate = &due
	}
	if input.ClientID != "" {
		id, err := uuid.Parse(input.ClientID)
		if err != nil {
			return nil, LeadOutput{}, fmt.Errorf("invalid client ID: %w", err)
		}
		if _, found := h.desk.Clients.GetByID(id); !found {
			return nil, LeadOutput{}, fmt.Errorf("client not found: %s", input.ClientID)
		}
		lead.ClientID = id
	}

	return nil, leadToOutput(h.desk.Pipeline.Add(lead)), nil
}

type MoveLeadInput struct {
	ID    string `json:"id" jsonschema:"Lead ID (required)"`
	Stage string `json:"stage" jsonschema:"Target stage (required)"`
}

func (h *LeadHandlers) MoveLead(_ context.Context, _ *mcp.CallToolRequest, input MoveLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, LeadOutput{}, fmt.Errorf("invalid lead ID: %w", err)
	}
	if !models.ValidStage(input.Stage) {
		return nil, LeadOutput{}, fmt.Errorf("invalid stage %q, valid stages: %s", input.Stage, strings.Join(models.Stages(), ", "))
	}

	if !h.desk.Pipeline.Move(id, input.Stage) {
		return nil, LeadOutput{}, fmt.Errorf("lead not found: %s", input.ID)
	}

	lead, _ := h.desk.Pipeline.Get(id)
	return nil, leadToOutput(lead), nil
}

type UpdateLeadInput struct {
	ID          string   `json:"id" jsonschema:"Lead ID (required)"`
	Title       *string  `json:"title,omitempty" jsonschema:"Updated title"`
	ClientName  *string  `json:"client_name,omitempty" jsonschema:"Updated client display name"`
	Value       *float64 `json:"value,omitempty" jsonschema:"Updated value in dollars"`
	DueDate     *string  `json:"due_date,omitempty" jsonschema:"Updated due date"`
	Email       *string  `json:"email,omitempty" jsonschema:"Updated email"`
	Phone       *string  `json:"phone,omitempty" jsonschema:"Updated phone"`
	Notes       *string  `json:"notes,omitempty" jsonschema:"Updated notes"`
	Probability *int     `json:"probability,omitempty" jsonschema:"Updated probability 0-100"`
}

func (h *LeadHandlers) UpdateLead(_ context.Context, _ *mcp.CallToolRequest, input UpdateLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, LeadOutput{}, fmt.Errorf("invalid lead ID: %w", err)
	}

	patch := store.LeadPatch{
		Title:       input.Title,
		ClientName:  input.ClientName,
		Email:       input.Email,
		Phone:       input.Phone,
		Notes:       input.Notes,
		Probability: input.Probability,
	}
	if input.Value != nil {
		cents := toCents(*input.Value)
		patch.Value = &cents
	}
	if input.DueDate != nil {
		due, err := time.Parse("2006-01-02", *input.DueDate)
		if err != nil {
			return nil, LeadOutput{}, fmt.Errorf("invalid due date (want YYYY-MM-DD): %w", err)
		}
		patch.DueDate = &due
	}

	lead, found := h.desk.Pipeline.Update(id, patch)
	if !found {
		return nil, LeadOutput{}, fmt.Errorf("lead not found: %s", input.ID)
	}

	return nil, leadToOutput(lead), nil
}

type DeleteLeadInput struct {
	ID string `json:"id" jsonschema:"Lead ID (required)"`
}

type DeleteLeadOutput struct {
	Deleted bool `json:"deleted"`
}

func (h *LeadHandlers) DeleteLead(_ context.Context, _ *mcp.CallToolRequest, input DeleteLeadInput) (*mcp.CallToolResult, DeleteLeadOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DeleteLeadOutput{}, fmt.Errorf("invalid lead ID: %w", err)
	}

	return nil, DeleteLeadOutput{Deleted: h.desk.Pipeline.Delete(id)}, nil
}

type ListLeadsInput struct {
	Stage    string `json:"stage,omitempty" jsonschema:"Filter by pipeline stage"`
	ClientID string `json:"client_id,omitempty" jsonschema:"Filter by linked client ID"`
}

type ListLeadsOutput struct {
	Leads []LeadOutput `json:"leads"`
}

func (h *LeadHandlers) ListLeads(_ context.Context, _ *mcp.CallToolRequest, input ListLeadsInput) (*mcp.CallToolResult, ListLeadsOutput, error) {
	var leads []models.Lead
	switch {
	case input.ClientID != "":
		id, err := uuid.Parse(input.ClientID)
		if err != nil {
			return nil, ListLeadsOutput{}, fmt.Errorf("invalid client ID: %w", err)
		}
		leads = h.desk.Pipeline.ByClientID(id)
	case input.Stage != "":
		leads = h.desk.Pipeline.ByStage(input.Stage)
	default:
		leads = h.desk.Pipeline.All()
	}

	var out ListLeadsOutput
	for _, l := range leads {
		out.Leads = append(out.Leads, leadToOutput(l))
	}
	return nil, out, nil
}

type PipelineSummaryInput struct{}

type StageSummary struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type PipelineSummaryOutput struct {
	Stages     []StageSummary `json:"stages"`
	TotalValue float64        `json:"total_value"`
	Board      string         `json:"board"`
}

func (h *LeadHandlers) PipelineSummary(_ context.Context, _ *mcp.CallToolRequest, _ PipelineSummaryInput) (*mcp.CallToolResult, PipelineSummaryOutput, error) {
	leads := h.desk.Pipeline.All()

	var out PipelineSummaryOutput
	for _, s := range viz.Summarize(leads) {
		out.Stages = append(out.Stages, StageSummary{
			Stage: s.Stage,
			Count: s.Count,
			Value: float64(s.Value) / 100.0,
		})
	}
	out.TotalValue = float64(h.desk.Pipeline.TotalValue()) / 100.0
	out.Board = viz.RenderStageBars(leads)

	return nil, out, nil
}

// toCents rounds a dollar amount to whole cents. A plain cast truncates, so
// 19.99 would land a cent short.
func toCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

func leadToOutput(l models.Lead) LeadOutput {
	out := LeadOutput{
		ID:          l.ID.String(),
		Title:       l.Title,
		ClientName:  l.ClientName,
		Value:       float64(l.Value) / 100.0,
		Stage:       l.Stage,
		Email:       l.Email,
		Phone:       l.Phone,
		Notes:       l.Notes,
		Tags:        l.Tags,
		Probability: l.Probability,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
	if l.ClientID != uuid.Nil {
		out.ClientID = l.ClientID.String()
	}
	if l.DueDate != nil {
		out.DueDate = l.DueDate.Format("2006-01-02")
	}
	return out
}
