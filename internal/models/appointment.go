package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID string `gorm:"size:20;uniqueIndex;not null" json:"booking_id"`

	AgentName string `gorm:"size:100;index:idx_agent_date;not null" json:"agent_name"`

	// Calendar date "2006-01-02" and clock times "15:04". Zero-padded
	// strings compare correctly, which the overlap queries rely on.
	Date      string `gorm:"size:10;index:idx_agent_date;not null" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CustomerName    string `gorm:"size:100;not null" json:"customer_name"`
	CustomerContact string `gorm:"size:100;not null" json:"customer_contact"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
