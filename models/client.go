package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DueDateInterval is the rebooking cadence: a client is due 30 days
// after their last recorded visit.
const DueDateInterval = 30 * 24 * time.Hour

const (
	maxNameLength  = 100
	maxNotesLength = 500
)

var (
	ErrClientValidation = errors.New("client validation failed")

	mobileRegex = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	emailRegex  = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
)

type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name   string `gorm:"not null" json:"name"`
	Mobile string `gorm:"not null;uniqueIndex" json:"mobile"`
	Email  string `gorm:"not null;index" json:"email"`

	ServicesTaken StringList `gorm:"type:jsonb" json:"servicesTaken"`

	LastVisit   time.Time `gorm:"not null;index" json:"lastVisit"`
	NextDueDate time.Time `gorm:"not null;index" json:"nextDueDate"`

	Appointments []Appointment `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"appointments"`

	Notes string `json:"notes"`

	gorm.Model `json:"-"`
}

type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	Date    time.Time `gorm:"not null" json:"date"`
	Service string    `gorm:"not null" json:"service"`
	Price   *float64  `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	Notes   string    `json:"notes,omitempty"`
	Status  string    `gorm:"type:varchar(20);not null;default:scheduled" json:"status"`

	gorm.Model `json:"-"`
}

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no-show"
)

// ValidAppointmentStatus reports whether s is one of the known statuses.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// ValidateMobile checks the international mobile format: an optional
// leading '+' followed by up to 16 digits, no separators.
func ValidateMobile(mobile string) bool {
	return mobileRegex.MatchString(strings.TrimSpace(mobile))
}

// ValidateEmail checks the basic local@domain.tld shape.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidateClient checks a client record before it is written. Records
// that fail here never reach the reminder pipeline.
func ValidateClient(c *Client) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrClientValidation)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrClientValidation, maxNameLength)
	}
	if !ValidateMobile(c.Mobile) {
		return fmt.Errorf("%w: invalid mobile number %q", ErrClientValidation, c.Mobile)
	}
	if !ValidateEmail(c.Email) {
		return fmt.Errorf("%w: invalid email address %q", ErrClientValidation, c.Email)
	}
	if len(c.Notes) > maxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrClientValidation, maxNotesLength)
	}
	return nil
}

// ValidateAppointment checks a history entry before it is appended.
func ValidateAppointment(a *Appointment) error {
	if strings.TrimSpace(a.Service) == "" {
		return fmt.Errorf("%w: appointment service is required", ErrClientValidation)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("%w: appointment date is required", ErrClientValidation)
	}
	if a.Price != nil && *a.Price < 0 {
		return fmt.Errorf("%w: appointment price cannot be negative", ErrClientValidation)
	}
	if a.Status == "" {
		a.Status = AppointmentScheduled
	} else if !ValidAppointmentStatus(a.Status) {
		return fmt.Errorf("%w: unknown appointment status %q", ErrClientValidation, a.Status)
	}
	return nil
}

// ApplyDueDatePolicy enforces the due-date invariant on the value:
// NextDueDate is always LastVisit + 30 days. The store calls this on
// every write that touches LastVisit; a zero LastVisit defaults to now.
func ApplyDueDatePolicy(c *Client, now time.Time) {
	if c.LastVisit.IsZero() {
		c.LastVisit = now
	}
	c.NextDueDate = c.LastVisit.Add(DueDateInterval)
}

// StringList stores a slice of strings as a JSON column, same shape the
// API serves it in.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, l)
}
