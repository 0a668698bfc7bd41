// Package mcptools declares the dealership tools for reasoning loops
// that speak MCP over stdio. It is a thin shell: every invocation goes
// through the same dispatcher as the HTTP surface.
package mcptools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
	"github.com/BruksfildServices01/dealer-voicebot/internal/tools"
)

// Register declares the four tools on the MCP server.
func Register(s *mcpserver.MCPServer, d *tools.Dispatcher) {
	checkAvailabilityTool := mcp.NewTool(tools.ToolCheckAvailability,
		mcp.WithDescription("Check whether an agent (by name or role) is free at a given date and time; proposes the nearest alternative slot when the requested time is taken"),
		mcp.WithString("agentName",
			mcp.Description("Exact agent name, e.g. 'Sarah Johnson'. Omit to search by role."),
		),
		mcp.WithString("role",
			mcp.Description("Agent role to search when no name is given: 'sales' or 'service'"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format, or 'today', 'tomorrow', 'next monday'"),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Desired start time in HH:MM 24h format"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Appointment length in minutes (default: 60)"),
		),
	)
	s.AddTool(checkAvailabilityTool, handler(d, tools.ToolCheckAvailability))

	bookAppointmentTool := mcp.NewTool(tools.ToolBookAppointment,
		mcp.WithDescription("Book an appointment for a customer with a named agent, or with whichever agent of the given role is free at the requested time"),
		mcp.WithString("agentName",
			mcp.Description("Exact agent name. Omit to auto-select by role."),
		),
		mcp.WithString("role",
			mcp.Description("Agent role for auto-selection: 'sales' or 'service'"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format, or 'today', 'tomorrow', 'next monday'"),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Start time in HH:MM 24h format"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Appointment length in minutes (default: 60)"),
		),
		mcp.WithString("customerName",
			mcp.Required(),
			mcp.Description("Customer display name"),
		),
		mcp.WithString("contact",
			mcp.Required(),
			mcp.Description("Customer email address or phone number"),
		),
	)
	s.AddTool(bookAppointmentTool, handler(d, tools.ToolBookAppointment))

	retrieveInfoTool := mcp.NewTool(tools.ToolRetrieveInfo,
		mcp.WithDescription("Look up dealership knowledge-base snippets relevant to a free-text question"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question to ground"),
		),
		mcp.WithNumber("topK",
			mcp.Description("Number of snippets to return (default: 4)"),
		),
	)
	s.AddTool(retrieveInfoTool, handler(d, tools.ToolRetrieveInfo))

	listAgentsTool := mcp.NewTool(tools.ToolListAgents,
		mcp.WithDescription("List bookable sales and service agents"),
		mcp.WithString("role",
			mcp.Description("Restrict to one role: 'sales' or 'service'"),
		),
	)
	s.AddTool(listAgentsTool, handler(d, tools.ToolListAgents))
}

func handler(d *tools.Dispatcher, tool string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := d.Dispatch(ctx, tool, request.GetArguments())
		if err != nil {
			// structured failures stay in-band so the loop can recover
			return mcp.NewToolResultError(httperr.MessageOf(err)), nil
		}

		payload, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError("failed to encode tool result"), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
