package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/dealer-voicebot/internal/domain/calendar"
	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
	"github.com/BruksfildServices01/dealer-voicebot/internal/models"
)

type CalendarGormStore struct {
	db *gorm.DB
}

func NewCalendarGormStore(db *gorm.DB) *CalendarGormStore {
	return &CalendarGormStore{db: db}
}

// --------------------------------------------------
// Agents
// --------------------------------------------------

func (r *CalendarGormStore) ListAgents(
	ctx context.Context,
	role domain.Role,
) ([]models.Agent, error) {

	q := r.db.WithContext(ctx).Order("id ASC")
	if role != domain.RoleAny {
		q = q.Where("role = ?", string(role))
	}

	var agents []models.Agent
	if err := q.Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *CalendarGormStore) GetAgent(
	ctx context.Context,
	name string,
) (*models.Agent, error) {

	var agent models.Agent
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&agent).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(
			httperr.CodeAgentNotFound,
			"No agent named "+name+".",
		)
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *CalendarGormStore) AppointmentsFor(
	ctx context.Context,
	agentName string,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("LOWER(agent_name) = LOWER(?) AND date = ?", agentName, date).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// InsertAppointment runs the overlap check and the insert in one
// transaction, locking the agent's rows for the date so two concurrent
// bookings never both pass the check.
func (r *CalendarGormStore) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"LOWER(agent_name) = LOWER(?) AND date = ? AND start_time < ? AND end_time > ?",
				ap.AgentName,
				ap.Date,
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(
				httperr.CodeConflict,
				"Time slot already booked.",
			)
		}

		return tx.Create(ap).Error
	})
}

// Compile-time check
var _ domain.Store = (*CalendarGormStore)(nil)
