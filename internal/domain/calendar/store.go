package calendar

import (
	"context"

	"github.com/BruksfildServices01/dealer-voicebot/internal/models"
)

// Store owns Agent and Appointment lifetimes. The resolver and the
// booking engine only read and write through it, never hold copies that
// can drift.
type Store interface {
	// ListAgents returns agents in insertion order, optionally filtered
	// by role (RoleAny returns all).
	ListAgents(ctx context.Context, role Role) ([]models.Agent, error)

	// GetAgent matches the name exactly, case-insensitively. Returns a
	// business error with CodeAgentNotFound when absent.
	GetAgent(ctx context.Context, name string) (*models.Agent, error)

	// AppointmentsFor returns the agent's appointments on a date,
	// ordered by start time.
	AppointmentsFor(ctx context.Context, agentName, date string) ([]models.Appointment, error)

	// InsertAppointment checks the overlap invariant and inserts as one
	// atomic unit, serialized per (agent, date). Returns a business
	// error with CodeConflict when the interval is taken.
	InsertAppointment(ctx context.Context, ap *models.Appointment) error
}
