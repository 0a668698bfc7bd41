package calendar

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dealer-voicebot/internal/audit"
	domain "github.com/BruksfildServices01/dealer-voicebot/internal/domain/calendar"
	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
	"github.com/BruksfildServices01/dealer-voicebot/internal/infra/repository"
)

func newBookingUC(store domain.Store) *BookAppointment {
	return NewBookAppointment(store, NewResolveAvailability(store), nil)
}

func TestBookAppointment_NamedAgent(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	uc := newBookingUC(store)

	conf, err := uc.Execute(context.Background(), BookingInput{
		AgentName:    "Sarah Johnson",
		Date:         testDate,
		Time:         "10:00",
		CustomerName: "John Smith",
		Contact:      "john@example.com",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(conf.BookingID, "BK-"))
	assert.Len(t, conf.BookingID, 13)
	assert.NotContains(t, conf.BookingID, "Sarah")
	assert.Equal(t, "Sarah Johnson", conf.Slot.AgentName)
	assert.Equal(t, "10:00", conf.Slot.Start)
	assert.Equal(t, "11:00", conf.Slot.End)

	apps, err := store.AppointmentsFor(context.Background(), "Sarah Johnson", testDate)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, conf.BookingID, apps[0].BookingID)
	assert.Equal(t, "John Smith", apps[0].CustomerName)
}

func TestBookAppointment_CommitsWhatWasProposed(t *testing.T) {
	store := repository.NewCalendarMemoryStore(
		agent("Jennifer Chen", "sales"),
		agent("Sarah Johnson", "sales"),
	)
	mustBook(t, store, "Jennifer Chen", testDate, "10:00", "11:00")

	resolver := NewResolveAvailability(store)
	uc := NewBookAppointment(store, resolver, nil)

	proposed, err := resolver.Execute(context.Background(), AvailabilityInput{
		Role: domain.RoleSales,
		Date: testDate,
		Time: "10:00",
	})
	require.NoError(t, err)

	conf, err := uc.Execute(context.Background(), BookingInput{
		AgentName:    proposed.AgentName,
		Date:         proposed.Date,
		Time:         proposed.Start,
		CustomerName: "John Smith",
		Contact:      "408-555-0101",
	})
	require.NoError(t, err)

	assert.Equal(t, proposed.AgentName, conf.Slot.AgentName)
	assert.Equal(t, proposed.Date, conf.Slot.Date)
	assert.Equal(t, proposed.Start, conf.Slot.Start)
	assert.Equal(t, proposed.End, conf.Slot.End)
}

func TestBookAppointment_AutoSelectByRole(t *testing.T) {
	store := repository.NewCalendarMemoryStore(
		agent("Jennifer Chen", "sales"),
		agent("Sarah Johnson", "sales"),
	)
	mustBook(t, store, "Jennifer Chen", testDate, "10:00", "11:00")

	uc := newBookingUC(store)
	conf, err := uc.Execute(context.Background(), BookingInput{
		Role:         domain.RoleSales,
		Date:         testDate,
		Time:         "10:00",
		CustomerName: "John Smith",
		Contact:      "john@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", conf.Slot.AgentName)
	assert.Equal(t, "10:00", conf.Slot.Start)
}

func TestBookAppointment_RoleWithOnlyAlternativeConflicts(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	// 09:00-11:00 fully booked so the first opening is after the
	// requested time, not before it
	mustBook(t, store, "Sarah Johnson", testDate, "09:00", "10:00")
	mustBook(t, store, "Sarah Johnson", testDate, "10:00", "11:00")

	uc := newBookingUC(store)
	_, err := uc.Execute(context.Background(), BookingInput{
		Role:         domain.RoleSales,
		Date:         testDate,
		Time:         "10:00",
		CustomerName: "John Smith",
		Contact:      "john@example.com",
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeConflict))
	// the nearest opening is surfaced for the loop to re-offer
	assert.Contains(t, httperr.MessageOf(err), "11:00")
}

func TestBookAppointment_DoubleBookingConflicts(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	uc := newBookingUC(store)

	in := BookingInput{
		AgentName:    "Sarah Johnson",
		Date:         testDate,
		Time:         "10:00",
		CustomerName: "John Smith",
		Contact:      "john@example.com",
	}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeConflict))
}

func TestBookAppointment_OverlapNotJustEquality(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	uc := newBookingUC(store)

	_, err := uc.Execute(context.Background(), BookingInput{
		AgentName:    "Sarah Johnson",
		Date:         testDate,
		Time:         "10:00",
		CustomerName: "John Smith",
		Contact:      "john@example.com",
	})
	require.NoError(t, err)

	// straddles 10:00-11:00 without matching it
	_, err = uc.Execute(context.Background(), BookingInput{
		AgentName:    "Sarah Johnson",
		Date:         testDate,
		Time:         "10:30",
		CustomerName: "Jane Doe",
		Contact:      "jane@example.com",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeConflict))

	// back-to-back is fine: [10:00,11:00) then [11:00,12:00)
	_, err = uc.Execute(context.Background(), BookingInput{
		AgentName:    "Sarah Johnson",
		Date:         testDate,
		Time:         "11:00",
		CustomerName: "Jane Doe",
		Contact:      "jane@example.com",
	})
	assert.NoError(t, err)
}

func TestBookAppointment_ConcurrentBookingsOneWins(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	uc := newBookingUC(store)

	const racers = 10
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), BookingInput{
				AgentName:    "Sarah Johnson",
				Date:         testDate,
				Time:         "14:00",
				CustomerName: "John Smith",
				Contact:      "john@example.com",
			})
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case httperr.IsBusiness(err, httperr.CodeConflict):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, racers-1, lost)

	apps, err := store.AppointmentsFor(context.Background(), "Sarah Johnson", testDate)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestBookAppointment_OutsideWorkingHours(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	uc := newBookingUC(store)

	_, err := uc.Execute(context.Background(), BookingInput{
		AgentName:    "Sarah Johnson",
		Date:         testDate,
		Time:         "18:00",
		CustomerName: "John Smith",
		Contact:      "john@example.com",
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoAvailability))
}

func TestBookAppointment_InvalidInput(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	uc := newBookingUC(store)

	tests := []struct {
		name string
		in   BookingInput
	}{
		{
			name: "missing customer name",
			in: BookingInput{
				AgentName: "Sarah Johnson",
				Date:      testDate,
				Time:      "10:00",
				Contact:   "john@example.com",
			},
		},
		{
			name: "missing contact",
			in: BookingInput{
				AgentName:    "Sarah Johnson",
				Date:         testDate,
				Time:         "10:00",
				CustomerName: "John Smith",
			},
		},
		{
			name: "contact neither email nor phone",
			in: BookingInput{
				AgentName:    "Sarah Johnson",
				Date:         testDate,
				Time:         "10:00",
				CustomerName: "John Smith",
				Contact:      "ask for me at the front desk",
			},
		},
		{
			name: "malformed time",
			in: BookingInput{
				AgentName:    "Sarah Johnson",
				Date:         testDate,
				Time:         "ten o'clock",
				CustomerName: "John Smith",
				Contact:      "john@example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.in)
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidArguments))

			apps, _ := store.AppointmentsFor(context.Background(), "Sarah Johnson", testDate)
			assert.Empty(t, apps, "invalid input must never reach the store")
		})
	}
}

type captureSink struct {
	events chan audit.Event
}

func (s *captureSink) Log(action, entity, entityID string, metadata any) error {
	s.events <- audit.Event{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metadata,
	}
	return nil
}

func TestBookAppointment_AuditCarriesSession(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	sink := &captureSink{events: make(chan audit.Event, 1)}
	uc := NewBookAppointment(store, NewResolveAvailability(store), audit.NewDispatcher(sink))

	ctx := audit.WithSession(context.Background(), "sess-42")
	conf, err := uc.Execute(ctx, BookingInput{
		AgentName:    "Sarah Johnson",
		Date:         testDate,
		Time:         "10:00",
		CustomerName: "John Smith",
		Contact:      "john@example.com",
	})
	require.NoError(t, err)

	select {
	case ev := <-sink.events:
		assert.Equal(t, "appointment_booked", ev.Action)
		assert.Equal(t, conf.BookingID, ev.EntityID)
		meta, ok := ev.Metadata.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "sess-42", meta["session"])
		assert.Equal(t, "Sarah Johnson", meta["agent"])
	case <-time.After(time.Second):
		t.Fatal("audit event was not dispatched")
	}
}

func TestBookAppointment_BookingIDsUnique(t *testing.T) {
	store := repository.NewCalendarMemoryStore(agent("Sarah Johnson", "sales"))
	uc := newBookingUC(store)

	seen := map[string]bool{}
	for _, start := range []string{"09:00", "10:00", "11:00", "12:00"} {
		conf, err := uc.Execute(context.Background(), BookingInput{
			AgentName:    "Sarah Johnson",
			Date:         testDate,
			Time:         start,
			CustomerName: "John Smith",
			Contact:      "john@example.com",
		})
		require.NoError(t, err)
		assert.False(t, seen[conf.BookingID])
		seen[conf.BookingID] = true
	}
}
