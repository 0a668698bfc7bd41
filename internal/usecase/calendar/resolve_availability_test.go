package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/dealer-voicebot/internal/domain/calendar"
	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
	"github.com/BruksfildServices01/dealer-voicebot/internal/infra/repository"
	"github.com/BruksfildServices01/dealer-voicebot/internal/models"
)

const testDate = "2025-09-16"

func agent(name, role string) models.Agent {
	return models.Agent{
		Name:      name,
		Role:      role,
		WorkStart: "09:00",
		WorkEnd:   "17:00",
		Active:    true,
	}
}

func mustBook(t *testing.T, store domain.Store, agentName, date, start, end string) {
	t.Helper()
	err := store.InsertAppointment(context.Background(), &models.Appointment{
		BookingID:       "BK-" + agentName + start,
		AgentName:       agentName,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		CustomerName:    "Test Customer",
		CustomerContact: "test@example.com",
	})
	require.NoError(t, err)
}

func TestResolveAvailability_ExactSlotFree(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	mustBook(t, store, "Sarah Johnson", testDate, "09:00", "10:00")

	uc := NewResolveAvailability(store)
	slot, err := uc.Execute(context.Background(), AvailabilityInput{
		Role: domain.RoleSales,
		Date: testDate,
		Time: "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", slot.AgentName)
	assert.Equal(t, "10:00", slot.Start)
	assert.Equal(t, "11:00", slot.End)
	assert.True(t, slot.Exact)
}

func TestResolveAvailability_OccupiedSlotProposesAlternative(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	mustBook(t, store, "Sarah Johnson", testDate, "09:00", "10:00")

	uc := NewResolveAvailability(store)
	slot, err := uc.Execute(context.Background(), AvailabilityInput{
		Role: domain.RoleSales,
		Date: testDate,
		Time: "09:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "10:00", slot.Start)
	assert.Equal(t, "11:00", slot.End)
	assert.False(t, slot.Exact)
}

func TestResolveAvailability_ScanRespectsGranularity(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	mustBook(t, store, "Sarah Johnson", testDate, "09:30", "10:30")

	uc := NewResolveAvailability(store)
	slot, err := uc.Execute(context.Background(), AvailabilityInput{
		AgentName: "Sarah Johnson",
		Date:      testDate,
		Time:      "09:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "10:30", slot.Start)
	assert.False(t, slot.Exact)
}

func TestResolveAvailability_AlphabeticalTieBreak(t *testing.T) {
	// insertion order deliberately not alphabetical
	store := repository.NewCalendarMemoryStore(
		agent("Mike Rodriguez", "sales"),
		agent("Jennifer Chen", "sales"),
	)

	uc := NewResolveAvailability(store)
	slot, err := uc.Execute(context.Background(), AvailabilityInput{
		Role: domain.RoleSales,
		Date: testDate,
		Time: "11:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jennifer Chen", slot.AgentName)
	assert.True(t, slot.Exact)
}

func TestResolveAvailability_EarliestTimeBeatsAgentOrder(t *testing.T) {
	store := repository.NewCalendarMemoryStore(
		agent("Jennifer Chen", "sales"),
		agent("Mike Rodriguez", "sales"),
	)
	// Jennifer busy all morning, Mike only for the first half hour
	mustBook(t, store, "Jennifer Chen", testDate, "09:00", "12:00")
	mustBook(t, store, "Mike Rodriguez", testDate, "09:00", "09:30")

	uc := NewResolveAvailability(store)
	slot, err := uc.Execute(context.Background(), AvailabilityInput{
		Role: domain.RoleSales,
		Date: testDate,
		Time: "09:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "Mike Rodriguez", slot.AgentName)
	assert.Equal(t, "09:30", slot.Start)
	assert.False(t, slot.Exact)
}

func TestResolveAvailability_OutsideWorkingHoursProposesOpening(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Tom Wilson", "service"))

	uc := NewResolveAvailability(store)
	slot, err := uc.Execute(context.Background(), AvailabilityInput{
		AgentName: "Tom Wilson",
		Date:      testDate,
		Time:      "07:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00", slot.Start)
	assert.False(t, slot.Exact)
}

func TestResolveAvailability_NoAvailability(t *testing.T) {
	a := agent("Sarah Johnson", "sales")
	a.WorkStart = "09:00"
	a.WorkEnd = "10:00"
	store := repository.NewCalendarMemoryStore(a)
	mustBook(t, store, "Sarah Johnson", testDate, "09:00", "10:00")

	uc := NewResolveAvailability(store)
	_, err := uc.Execute(context.Background(), AvailabilityInput{
		AgentName: "Sarah Johnson",
		Date:      testDate,
		Time:      "09:00",
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoAvailability))
}

func TestResolveAvailability_AgentNotFound(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))

	uc := NewResolveAvailability(store)
	_, err := uc.Execute(context.Background(), AvailabilityInput{
		AgentName: "Nobody",
		Date:      testDate,
		Time:      "10:00",
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeAgentNotFound))
}

func TestResolveAvailability_InactiveAgentNotFound(t *testing.T) {
	a := agent("Sarah Johnson", "sales")
	a.Active = false
	store := repository.NewCalendarMemoryStore(a)

	uc := NewResolveAvailability(store)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		AgentName: "Sarah Johnson",
		Date:      testDate,
		Time:      "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAgentNotFound))

	// an inactive-only role pool is equally empty
	_, err = uc.Execute(context.Background(), AvailabilityInput{
		Role: domain.RoleSales,
		Date: testDate,
		Time: "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAgentNotFound))
}

func TestResolveAvailability_CaseInsensitiveName(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))

	uc := NewResolveAvailability(store)
	slot, err := uc.Execute(context.Background(), AvailabilityInput{
		AgentName: "sarah johnson",
		Date:      testDate,
		Time:      "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", slot.AgentName)
}

func TestResolveAvailability_Deterministic(t *testing.T) {
	store := repository.NewCalendarMemoryStore(
		agent("Jennifer Chen", "sales"),
		agent("Mike Rodriguez", "sales"),
		agent("Sarah Johnson", "sales"),
	)
	mustBook(t, store, "Jennifer Chen", testDate, "10:00", "11:00")

	uc := NewResolveAvailability(store)
	in := AvailabilityInput{
		Role: domain.RoleSales,
		Date: testDate,
		Time: "10:00",
	}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// no intervening booking: the answer must not move
	for i := 0; i < 5; i++ {
		again, err := uc.Execute(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveAvailability_CustomDuration(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	mustBook(t, store, "Sarah Johnson", testDate, "10:00", "10:30")

	uc := NewResolveAvailability(store)
	slot, err := uc.Execute(context.Background(), AvailabilityInput{
		AgentName:   "Sarah Johnson",
		Date:        testDate,
		Time:        "09:30",
		DurationMin: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, "09:30", slot.Start)
	assert.Equal(t, "10:00", slot.End)
	assert.True(t, slot.Exact)
}
