package calendar

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/dealer-voicebot/internal/audit"
	domain "github.com/BruksfildServices01/dealer-voicebot/internal/domain/calendar"
	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
	"github.com/BruksfildServices01/dealer-voicebot/internal/models"
	"github.com/BruksfildServices01/dealer-voicebot/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type BookingInput struct {
	AgentName string
	Role      domain.Role

	Date        string // "2006-01-02"
	Time        string // "15:04"
	DurationMin int

	CustomerName string
	Contact      string
}

type BookingConfirmation struct {
	BookingID string      `json:"booking_id"`
	Slot      domain.Slot `json:"slot"`
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	store    domain.Store
	resolver *ResolveAvailability
	audit    *audit.Dispatcher
}

func NewBookAppointment(
	store domain.Store,
	resolver *ResolveAvailability,
	auditDispatcher *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		store:    store,
		resolver: resolver,
		audit:    auditDispatcher,
	}
}

// Execute books exactly the requested time. A slot previously returned
// by the resolver is advisory, so the overlap check runs again inside
// the store's atomic insert; losing that race is a conflict, never a
// silent rebook.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookingInput,
) (*BookingConfirmation, error) {

	// --------------------------------------------------
	// 1. Customer fields
	// --------------------------------------------------
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, httperr.ErrBusiness(
			httperr.CodeInvalidArguments,
			"Customer name is required.",
		)
	}
	if !validators.IsContact(in.Contact) {
		return nil, httperr.ErrBusiness(
			httperr.CodeInvalidArguments,
			"A customer email address or phone number is required.",
		)
	}

	if in.DurationMin <= 0 {
		in.DurationMin = domain.DefaultDurationMin
	}

	start, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness(
			httperr.CodeInvalidArguments,
			"Time must be in HH:MM format.",
		)
	}
	end := start + in.DurationMin

	// --------------------------------------------------
	// 2. Target agent
	// --------------------------------------------------
	agentName, err := uc.targetAgent(ctx, in, start)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Atomic check-and-insert
	// --------------------------------------------------
	ap := &models.Appointment{
		BookingID:       newBookingID(),
		AgentName:       agentName,
		Date:            in.Date,
		StartTime:       domain.FormatClock(start),
		EndTime:         domain.FormatClock(end),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerContact: strings.TrimSpace(in.Contact),
	}

	if err := uc.store.InsertAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit trail
	// --------------------------------------------------
	if uc.audit != nil {
		meta := map[string]string{
			"agent": ap.AgentName,
			"date":  ap.Date,
			"start": ap.StartTime,
			"end":   ap.EndTime,
		}
		if sid := audit.SessionFromContext(ctx); sid != "" {
			meta["session"] = sid
		}
		uc.audit.Dispatch(audit.Event{
			Action:   "appointment_booked",
			Entity:   "appointment",
			EntityID: ap.BookingID,
			Metadata: meta,
		})
	}

	return &BookingConfirmation{
		BookingID: ap.BookingID,
		Slot: domain.Slot{
			AgentName: ap.AgentName,
			Date:      ap.Date,
			Start:     ap.StartTime,
			End:       ap.EndTime,
			Exact:     true,
		},
	}, nil
}

// targetAgent picks the agent to book: the named one (must exist, be
// active, and have the slot inside working hours) or, given only a role,
// whichever active agent the resolver finds free at exactly the
// requested time.
func (uc *BookAppointment) targetAgent(
	ctx context.Context,
	in BookingInput,
	start int,
) (string, error) {

	if in.AgentName == "" {
		slot, err := uc.resolver.Execute(ctx, AvailabilityInput{
			Role:        in.Role,
			Date:        in.Date,
			Time:        in.Time,
			DurationMin: in.DurationMin,
		})
		if err != nil {
			return "", err
		}
		if !slot.Exact {
			return "", httperr.ErrBusiness(
				httperr.CodeConflict,
				fmt.Sprintf(
					"No %s agent is free at %s on %s; nearest opening is %s with %s.",
					in.Role, in.Time, in.Date, slot.Start, slot.AgentName,
				),
			)
		}
		return slot.AgentName, nil
	}

	agent, err := uc.store.GetAgent(ctx, in.AgentName)
	if err != nil {
		return "", err
	}
	if !agent.Active {
		return "", httperr.ErrBusiness(
			httperr.CodeAgentNotFound,
			agent.Name+" is not currently taking appointments.",
		)
	}

	ws, we, err := window(agent.WorkStart, agent.WorkEnd)
	if err != nil {
		return "", err
	}
	if !domain.WithinWindow(ws, we, start, start+in.DurationMin) {
		return "", httperr.ErrBusiness(
			httperr.CodeNoAvailability,
			fmt.Sprintf(
				"%s works %s-%s; %s does not fit.",
				agent.Name, agent.WorkStart, agent.WorkEnd, in.Time,
			),
		)
	}

	return agent.Name, nil
}

// newBookingID returns an opaque reference like "BK-3F9A01C2D4".
// Deliberately carries no agent or schedule data.
func newBookingID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "BK-" + strings.ToUpper(raw[:10])
}
