package tools

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/dealer-voicebot/internal/domain/calendar"
	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
	"github.com/BruksfildServices01/dealer-voicebot/internal/retrieval"
	"github.com/BruksfildServices01/dealer-voicebot/internal/timezone"
	ucCalendar "github.com/BruksfildServices01/dealer-voicebot/internal/usecase/calendar"
)

// Tool names, the contract with the reasoning loop.
const (
	ToolCheckAvailability = "check_availability"
	ToolBookAppointment   = "book_appointment"
	ToolRetrieveInfo      = "retrieve_info"
	ToolListAgents        = "list_agents"
)

// AgentsResult groups bookable agent names by role, the shape the
// reasoning loop reads back to the caller.
type AgentsResult struct {
	Sales   []string `json:"sales"`
	Service []string `json:"service"`
}

type RetrievalResult struct {
	Results []retrieval.Snippet `json:"results"`
}

// Dispatcher routes validated tool calls to the calendar use cases and
// the retrieval collaborator. It keeps no state across calls: every
// invocation carries all the arguments it needs.
type Dispatcher struct {
	store            domain.Store
	availability     *ucCalendar.ResolveAvailability
	booking          *ucCalendar.BookAppointment
	retriever        retrieval.Retriever
	retrievalTimeout time.Duration

	now func() time.Time
}

func NewDispatcher(
	store domain.Store,
	availability *ucCalendar.ResolveAvailability,
	booking *ucCalendar.BookAppointment,
	retriever retrieval.Retriever,
	retrievalTimeout time.Duration,
	tz string,
) *Dispatcher {
	loc := timezone.Location(tz)
	return &Dispatcher{
		store:            store,
		availability:     availability,
		booking:          booking,
		retriever:        retriever,
		retrievalTimeout: retrievalTimeout,
		now:              func() time.Time { return time.Now().In(loc) },
	}
}

func (d *Dispatcher) Dispatch(
	ctx context.Context,
	tool string,
	args map[string]any,
) (any, error) {

	switch tool {
	case ToolCheckAvailability:
		return d.checkAvailability(ctx, args)
	case ToolBookAppointment:
		return d.bookAppointment(ctx, args)
	case ToolRetrieveInfo:
		return d.retrieveInfo(ctx, args)
	case ToolListAgents:
		return d.listAgents(ctx, args)
	default:
		return nil, httperr.ErrBusiness(
			httperr.CodeUnknownTool,
			fmt.Sprintf("No tool named %q.", tool),
		)
	}
}

// --------------------------------------------------
// check_availability
// --------------------------------------------------

func (d *Dispatcher) checkAvailability(
	ctx context.Context,
	args map[string]any,
) (any, error) {

	in, err := d.slotArgs(args)
	if err != nil {
		return nil, err
	}

	return d.availability.Execute(ctx, *in)
}

// --------------------------------------------------
// book_appointment
// --------------------------------------------------

func (d *Dispatcher) bookAppointment(
	ctx context.Context,
	args map[string]any,
) (any, error) {

	in, err := d.slotArgs(args)
	if err != nil {
		return nil, err
	}

	customerName, err := requireString(args, "customerName")
	if err != nil {
		return nil, err
	}
	contact, err := requireString(args, "contact")
	if err != nil {
		return nil, err
	}

	return d.booking.Execute(ctx, ucCalendar.BookingInput{
		AgentName:    in.AgentName,
		Role:         in.Role,
		Date:         in.Date,
		Time:         in.Time,
		DurationMin:  in.DurationMin,
		CustomerName: customerName,
		Contact:      contact,
	})
}

// slotArgs decodes the arguments shared by availability and booking:
// a target (agentName or role), date, time, optional duration.
func (d *Dispatcher) slotArgs(args map[string]any) (*ucCalendar.AvailabilityInput, error) {
	agentName := stringArg(args, "agentName")

	role := domain.RoleAny
	if roleStr := stringArg(args, "role"); roleStr != "" {
		parsed, ok := domain.ParseRole(roleStr)
		if !ok {
			return nil, httperr.ErrBusiness(
				httperr.CodeInvalidArguments,
				"role must be \"sales\" or \"service\".",
			)
		}
		role = parsed
	}

	if agentName == "" && role == domain.RoleAny {
		return nil, httperr.ErrBusiness(
			httperr.CodeInvalidArguments,
			"Either agentName or role is required.",
		)
	}

	dateStr, err := requireString(args, "date")
	if err != nil {
		return nil, err
	}
	date, err := timezone.ResolveDate(dateStr, d.now())
	if err != nil {
		return nil, httperr.ErrBusiness(
			httperr.CodeInvalidArguments,
			"date must be YYYY-MM-DD or a relative day like \"tomorrow\".",
		)
	}

	timeStr, err := requireString(args, "time")
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParseClock(timeStr); err != nil {
		return nil, httperr.ErrBusiness(
			httperr.CodeInvalidArguments,
			"time must be in HH:MM format.",
		)
	}

	duration, err := intArg(args, "durationMinutes", domain.DefaultDurationMin)
	if err != nil {
		return nil, err
	}

	return &ucCalendar.AvailabilityInput{
		AgentName:   agentName,
		Role:        role,
		Date:        date,
		Time:        timeStr,
		DurationMin: duration,
	}, nil
}

// --------------------------------------------------
// retrieve_info
// --------------------------------------------------

func (d *Dispatcher) retrieveInfo(
	ctx context.Context,
	args map[string]any,
) (any, error) {

	query, err := requireString(args, "query")
	if err != nil {
		return nil, err
	}

	topK, err := intArg(args, "topK", retrieval.DefaultTopK)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, d.retrievalTimeout)
	defer cancel()

	snippets, err := d.retriever.Retrieve(ctx, query, topK)
	if err != nil {
		return nil, httperr.ErrBusiness(
			httperr.CodeRetrievalUnavailable,
			"The knowledge base is unavailable right now.",
		)
	}

	return &RetrievalResult{Results: snippets}, nil
}

// --------------------------------------------------
// list_agents
// --------------------------------------------------

func (d *Dispatcher) listAgents(
	ctx context.Context,
	args map[string]any,
) (any, error) {

	role := domain.RoleAny
	if roleStr := stringArg(args, "role"); roleStr != "" {
		parsed, ok := domain.ParseRole(roleStr)
		if !ok {
			return nil, httperr.ErrBusiness(
				httperr.CodeInvalidArguments,
				"role must be \"sales\" or \"service\".",
			)
		}
		role = parsed
	}

	agents, err := d.store.ListAgents(ctx, role)
	if err != nil {
		return nil, err
	}

	out := &AgentsResult{}
	for _, a := range agents {
		if !a.Active {
			continue
		}
		switch domain.Role(a.Role) {
		case domain.RoleSales:
			out.Sales = append(out.Sales, a.Name)
		case domain.RoleService:
			out.Service = append(out.Service, a.Name)
		}
	}
	return out, nil
}
