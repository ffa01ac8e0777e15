package stores

import (
	"time"

	"salondesk-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLogStore records delivery attempts for the admin audit view.
type ReminderLogStore struct {
	db *gorm.DB
}

func NewReminderLogStore(db *gorm.DB) *ReminderLogStore {
	return &ReminderLogStore{db: db}
}

func (s *ReminderLogStore) Record(clientID uuid.UUID, channel, message string, sent bool, sendErr string) error {
	status := "sent"
	if !sent {
		status = "failed"
	}
	entry := models.ReminderLog{
		ID:           uuid.New(),
		ClientID:     clientID,
		Channel:      channel,
		Message:      message,
		Status:       status,
		ErrorMessage: sendErr,
		SentAt:       time.Now(),
	}
	return s.db.Create(&entry).Error
}

func (s *ReminderLogStore) FindByClient(clientID uuid.UUID) ([]models.ReminderLog, error) {
	var logs []models.ReminderLog
	err := s.db.Where("client_id = ?", clientID).Order("sent_at DESC").Find(&logs).Error
	return logs, err
}
