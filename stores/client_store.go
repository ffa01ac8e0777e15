package stores

import (
	"errors"
	"fmt"
	"time"

	"salondesk-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientStore owns client persistence. Validation and the due-date
// invariant are applied explicitly on the write path; the model types
// stay plain values with no persistence hooks.
type ClientStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewClientStore(db *gorm.DB) *ClientStore {
	return &ClientStore{db: db, now: time.Now}
}

func (s *ClientStore) Create(client *models.Client) error {
	if err := models.ValidateClient(client); err != nil {
		return err
	}
	models.ApplyDueDatePolicy(client, s.now())

	var existing models.Client
	err := s.db.Where("mobile = ?", client.Mobile).First(&existing).Error
	if err == nil {
		return ErrMobileExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking mobile uniqueness: %w", err)
	}

	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	return s.db.Create(client).Error
}

func (s *ClientStore) Update(client *models.Client) error {
	if err := models.ValidateClient(client); err != nil {
		return err
	}
	models.ApplyDueDatePolicy(client, s.now())

	var existing models.Client
	err := s.db.Where("mobile = ? AND id <> ?", client.Mobile, client.ID).First(&existing).Error
	if err == nil {
		return ErrMobileExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking mobile uniqueness: %w", err)
	}

	return s.db.Save(client).Error
}

// Delete removes a client permanently, history included. Irreversible.
func (s *ClientStore) Delete(id uuid.UUID) error {
	result := s.db.Unscoped().Where("id = ?", id).Delete(&models.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (s *ClientStore) FindByID(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := s.db.Preload("Appointments", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC")
	}).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *ClientStore) FindAll() ([]*models.Client, error) {
	var clients []*models.Client
	err := s.db.Preload("Appointments").Order("name ASC").Find(&clients).Error
	return clients, err
}

// FindByDueWindow returns clients whose next due date falls in
// [start, end], soonest first.
func (s *ClientStore) FindByDueWindow(start, end time.Time) ([]*models.Client, error) {
	var clients []*models.Client
	err := s.db.Where("next_due_date >= ? AND next_due_date <= ?", start, end).
		Order("next_due_date ASC").
		Find(&clients).Error
	return clients, err
}

// FindOverdue returns clients whose next due date is strictly before
// now, soonest first.
func (s *ClientStore) FindOverdue(now time.Time) ([]*models.Client, error) {
	var clients []*models.Client
	err := s.db.Where("next_due_date < ?", now).
		Order("next_due_date ASC").
		Find(&clients).Error
	return clients, err
}

// AddAppointment appends a history entry, moves LastVisit to the
// appointment date and recomputes the due date, all in one transaction.
func (s *ClientStore) AddAppointment(clientID uuid.UUID, appt *models.Appointment) (*models.Client, error) {
	if err := models.ValidateAppointment(appt); err != nil {
		return nil, err
	}

	var client models.Client
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&client, "id = ?", clientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		appt.ID = uuid.New()
		appt.ClientID = clientID
		if err := tx.Create(appt).Error; err != nil {
			return err
		}

		client.ServicesTaken = appendUnique(client.ServicesTaken, appt.Service)
		client.LastVisit = appt.Date
		models.ApplyDueDatePolicy(&client, s.now())
		return tx.Save(&client).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(clientID)
}

func appendUnique(list models.StringList, s string) models.StringList {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
