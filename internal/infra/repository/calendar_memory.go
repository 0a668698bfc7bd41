package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	domain "github.com/BruksfildServices01/dealer-voicebot/internal/domain/calendar"
	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
	"github.com/BruksfildServices01/dealer-voicebot/internal/models"
)

// CalendarMemoryStore keeps the whole calendar in process memory. It
// backs tests and DB-less development runs; the mutex gives it the same
// per-insert serialization the gorm store gets from its transaction.
type CalendarMemoryStore struct {
	mu     sync.Mutex
	agents []models.Agent

	// appointments keyed by lower(agent)+"|"+date, kept sorted by start.
	appointments map[string][]models.Appointment
	nextID       uint
}

func NewCalendarMemoryStore(agents ...models.Agent) *CalendarMemoryStore {
	s := &CalendarMemoryStore{
		appointments: make(map[string][]models.Appointment),
		nextID:       1,
	}
	for i, a := range agents {
		a.ID = uint(i + 1)
		s.agents = append(s.agents, a)
	}
	return s
}

func dayKey(agentName, date string) string {
	return strings.ToLower(agentName) + "|" + date
}

func (s *CalendarMemoryStore) ListAgents(
	_ context.Context,
	role domain.Role,
) ([]models.Agent, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Agent
	for _, a := range s.agents {
		if role == domain.RoleAny || a.Role == string(role) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *CalendarMemoryStore) GetAgent(
	_ context.Context,
	name string,
) (*models.Agent, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.agents {
		if strings.EqualFold(a.Name, name) {
			agent := a
			return &agent, nil
		}
	}
	return nil, httperr.ErrBusiness(
		httperr.CodeAgentNotFound,
		"No agent named "+name+".",
	)
}

func (s *CalendarMemoryStore) AppointmentsFor(
	_ context.Context,
	agentName string,
	date string,
) ([]models.Appointment, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.appointments[dayKey(agentName, date)]
	out := make([]models.Appointment, len(day))
	copy(out, day)
	return out, nil
}

func (s *CalendarMemoryStore) InsertAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(ap.AgentName, ap.Date)
	for _, existing := range s.appointments[key] {
		if existing.StartTime < ap.EndTime && existing.EndTime > ap.StartTime {
			return httperr.ErrBusiness(
				httperr.CodeConflict,
				"Time slot already booked.",
			)
		}
	}

	ap.ID = s.nextID
	s.nextID++

	day := append(s.appointments[key], *ap)
	sort.Slice(day, func(i, j int) bool {
		return day[i].StartTime < day[j].StartTime
	})
	s.appointments[key] = day

	return nil
}

// Compile-time check
var _ domain.Store = (*CalendarMemoryStore)(nil)
