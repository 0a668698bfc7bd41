package calendar

import (
	"context"
	"fmt"
	"sort"

	domain "github.com/BruksfildServices01/dealer-voicebot/internal/domain/calendar"
	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type AvailabilityInput struct {
	// AgentName targets one agent; when empty, Role selects the pool.
	AgentName string
	Role      domain.Role

	Date        string // "2006-01-02"
	Time        string // "15:04"
	DurationMin int
}

// ======================================================
// USE CASE
// ======================================================

type ResolveAvailability struct {
	store domain.Store
}

func NewResolveAvailability(store domain.Store) *ResolveAvailability {
	return &ResolveAvailability{store: store}
}

// candidate is an agent plus everything needed to test a slot against it.
type candidate struct {
	name      string
	workStart int
	workEnd   int
	busy      [][2]int // minutes since midnight, sorted by start
}

func (c candidate) free(start, end int) bool {
	if !domain.WithinWindow(c.workStart, c.workEnd, start, end) {
		return false
	}
	for _, b := range c.busy {
		if domain.Overlaps(start, end, b[0], b[1]) {
			return false
		}
	}
	return true
}

// Execute turns a fuzzy request into a confirmed free slot or the
// nearest alternative.
//
// Candidate order is a contract: a named agent stands alone, a role
// resolves to its active agents sorted alphabetically. The exact slot is
// tried for every candidate first; failing that, a forward scan walks
// 30-minute increments from the earliest working start, trying
// candidates in order at each step, so the proposal is always the
// earliest free time and ties go to the first agent by name.
func (uc *ResolveAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*domain.Slot, error) {

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

	candidates, err := uc.candidates(ctx, in)
	if err != nil {
		return nil, err
	}

	// exact match, first candidate wins
	for _, c := range candidates {
		if c.free(start, end) {
			return &domain.Slot{
				AgentName: c.name,
				Date:      in.Date,
				Start:     domain.FormatClock(start),
				End:       domain.FormatClock(end),
				Exact:     true,
			}, nil
		}
	}

	// forward scan for the first free alternative
	scanStart := candidates[0].workStart
	scanEnd := candidates[0].workEnd
	for _, c := range candidates[1:] {
		if c.workStart < scanStart {
			scanStart = c.workStart
		}
		if c.workEnd > scanEnd {
			scanEnd = c.workEnd
		}
	}

	for t := scanStart; t+in.DurationMin <= scanEnd; t += domain.ScanGranularityMin {
		for _, c := range candidates {
			if c.free(t, t+in.DurationMin) {
				return &domain.Slot{
					AgentName: c.name,
					Date:      in.Date,
					Start:     domain.FormatClock(t),
					End:       domain.FormatClock(t + in.DurationMin),
					Exact:     false,
				}, nil
			}
		}
	}

	return nil, httperr.ErrBusiness(
		httperr.CodeNoAvailability,
		fmt.Sprintf("No availability on %s within working hours.", in.Date),
	)
}

func (uc *ResolveAvailability) candidates(
	ctx context.Context,
	in AvailabilityInput,
) ([]candidate, error) {

	var names []string
	windows := map[string][2]int{}

	if in.AgentName != "" {
		agent, err := uc.store.GetAgent(ctx, in.AgentName)
		if err != nil {
			return nil, err
		}
		if !agent.Active {
			return nil, httperr.ErrBusiness(
				httperr.CodeAgentNotFound,
				agent.Name+" is not currently taking appointments.",
			)
		}
		ws, we, err := window(agent.WorkStart, agent.WorkEnd)
		if err != nil {
			return nil, err
		}
		names = []string{agent.Name}
		windows[agent.Name] = [2]int{ws, we}
	} else {
		agents, err := uc.store.ListAgents(ctx, in.Role)
		if err != nil {
			return nil, err
		}
		for _, a := range agents {
			if !a.Active {
				continue
			}
			ws, we, err := window(a.WorkStart, a.WorkEnd)
			if err != nil {
				continue
			}
			names = append(names, a.Name)
			windows[a.Name] = [2]int{ws, we}
		}
		if len(names) == 0 {
			return nil, httperr.ErrBusiness(
				httperr.CodeAgentNotFound,
				fmt.Sprintf("No active %s agents available.", in.Role),
			)
		}
		sort.Strings(names)
	}

	out := make([]candidate, 0, len(names))
	for _, name := range names {
		busy, err := uc.busyFor(ctx, name, in.Date)
		if err != nil {
			return nil, err
		}
		w := windows[name]
		out = append(out, candidate{
			name:      name,
			workStart: w[0],
			workEnd:   w[1],
			busy:      busy,
		})
	}
	return out, nil
}

func (uc *ResolveAvailability) busyFor(
	ctx context.Context,
	agentName string,
	date string,
) ([][2]int, error) {

	apps, err := uc.store.AppointmentsFor(ctx, agentName, date)
	if err != nil {
		return nil, err
	}

	busy := make([][2]int, 0, len(apps))
	for _, ap := range apps {
		s, err := domain.ParseClock(ap.StartTime)
		if err != nil {
			continue
		}
		e, err := domain.ParseClock(ap.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, [2]int{s, e})
	}
	return busy, nil
}

func window(startHM, endHM string) (int, int, error) {
	ws, err := domain.ParseClock(startHM)
	if err != nil {
		return 0, 0, err
	}
	we, err := domain.ParseClock(endHM)
	if err != nil {
		return 0, 0, err
	}
	return ws, we, nil
}
