package models

import "time"

type Agent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Role string `gorm:"size:20;not null" json:"role"`

	// Working window, local dealership time, "15:04".
	WorkStart string `gorm:"size:5;default:'09:00'" json:"work_start"`
	WorkEnd   string `gorm:"size:5;default:'17:00'" json:"work_end"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
