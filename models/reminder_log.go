// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records one delivery attempt on one channel for one
// client. Written by the reminder service after each dispatch.
type ReminderLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	Channel      string    `gorm:"type:varchar(20);not null" json:"channel"` // sms, whatsapp, email
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20);not null" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	SentAt       time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}
