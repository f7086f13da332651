// ABOUTME: MCP server subcommand
// ABOUTME: Starts the business desk MCP server for Claude Desktop integration
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/bizdesk/handlers"
	"github.com/harperreed/bizdesk/store"
)

const serverVersion = "0.1.0"

// MCPCommand starts the MCP server on stdio.
func MCPCommand(desk *store.Desk, database *sql.DB) error {
	log.Println("Starting Business Desk MCP Server...")

	clientHandlers := handlers.NewClientHandlers(desk)
	leadHandlers := handlers.NewLeadHandlers(desk)
	notificationHandlers := handlers.NewNotificationHandlers(desk)
	dashboardHandlers := handlers.NewDashboardHandlers(database)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "bizdesk",
		Version: serverVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_client",
		Description: "Add a new client to the business desk",
	}, clientHandlers.AddClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_clients",
		Description: "Search for clients by name, email, or company",
	}, clientHandlers.FindClients)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_client",
		Description: "Update an existing client's information",
	}, clientHandlers.UpdateClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_client",
		Description: "Delete a client by ID",
	}, clientHandlers.DeleteClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_lead",
		Description: "Create a new lead in the sales pipeline, optionally linked to a client",
	}, leadHandlers.AddLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_lead",
		Description: "Move a lead to another pipeline stage",
	}, leadHandlers.MoveLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_lead",
		Description: "Update an existing lead's information",
	}, leadHandlers.UpdateLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_lead",
		Description: "Delete a lead by ID",
	}, leadHandlers.DeleteLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_leads",
		Description: "List leads, optionally filtered by stage or client",
	}, leadHandlers.ListLeads)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_summary",
		Description: "Summarize the sales pipeline by stage with counts and values",
	}, leadHandlers.PipelineSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_notifications",
		Description: "List notifications from the activity feed, newest first",
	}, notificationHandlers.ListNotifications)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_notification_read",
		Description: "Mark one or all notifications as read",
	}, notificationHandlers.MarkNotificationRead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_notifications",
		Description: "Delete one notification or clear the whole feed",
	}, notificationHandlers.ClearNotifications)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "financial_metrics",
		Description: "Compute dashboard metrics and period-over-period deltas from the latest financial snapshot",
	}, dashboardHandlers.FinancialMetrics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_financial_snapshot",
		Description: "Record a financial snapshot for the current or a named period",
	}, dashboardHandlers.RecordSnapshot)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
