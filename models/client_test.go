package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validClient() *Client {
	return &Client{
		Name:   "Nisha Rao",
		Mobile: "+919812345678",
		Email:  "nisha@example.com",
	}
}

func TestApplyDueDatePolicy(t *testing.T) {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

	t.Run("next due date is always last visit plus 30 days", func(t *testing.T) {
		c := validClient()
		c.LastVisit = now.AddDate(0, 0, -12)
		ApplyDueDatePolicy(c, now)

		want := c.LastVisit.Add(DueDateInterval)
		if !c.NextDueDate.Equal(want) {
			t.Errorf("NextDueDate = %v, want %v", c.NextDueDate, want)
		}
	})

	t.Run("zero last visit defaults to now", func(t *testing.T) {
		c := validClient()
		ApplyDueDatePolicy(c, now)

		if !c.LastVisit.Equal(now) {
			t.Errorf("LastVisit = %v, want %v", c.LastVisit, now)
		}
		if !c.NextDueDate.Equal(now.Add(DueDateInterval)) {
			t.Errorf("NextDueDate = %v, want now + 30 days", c.NextDueDate)
		}
	})

	t.Run("reapplying after a visit change moves the due date", func(t *testing.T) {
		c := validClient()
		c.LastVisit = now.AddDate(0, 0, -40)
		ApplyDueDatePolicy(c, now)

		c.LastVisit = now
		ApplyDueDatePolicy(c, now)
		if !c.NextDueDate.Equal(now.Add(DueDateInterval)) {
			t.Errorf("NextDueDate = %v, want recomputed from new visit", c.NextDueDate)
		}
	})
}

func TestValidateMobile(t *testing.T) {
	tests := []struct {
		mobile string
		want   bool
	}{
		{"+919812345678", true},
		{"9812345678", true},
		{"+1", true},
		{"", false},
		{"+", false},
		{"0123456", false},    // leading zero
		{"98-123-456", false}, // separators not allowed
		{"+12345678901234567", false},
		{"abc", false},
	}

	for _, tt := range tests {
		if got := ValidateMobile(tt.mobile); got != tt.want {
			t.Errorf("ValidateMobile(%q) = %v, want %v", tt.mobile, got, tt.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"first.last@example.com", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidateClient(t *testing.T) {
	t.Run("valid record passes", func(t *testing.T) {
		if err := ValidateClient(validClient()); err != nil {
			t.Errorf("ValidateClient() = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Client)
	}{
		{"empty name", func(c *Client) { c.Name = "  " }},
		{"bad mobile", func(c *Client) { c.Mobile = "not-a-number" }},
		{"bad email", func(c *Client) { c.Email = "nope" }},
		{"notes too long", func(c *Client) { c.Notes = strings.Repeat("x", 501) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClient()
			tt.mutate(c)
			err := ValidateClient(c)
			if !errors.Is(err, ErrClientValidation) {
				t.Errorf("ValidateClient() = %v, want ErrClientValidation", err)
			}
		})
	}
}

func TestValidateAppointment(t *testing.T) {
	date := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	t.Run("defaults status to scheduled", func(t *testing.T) {
		a := &Appointment{Date: date, Service: "Haircut"}
		if err := ValidateAppointment(a); err != nil {
			t.Fatalf("ValidateAppointment() = %v", err)
		}
		if a.Status != AppointmentScheduled {
			t.Errorf("Status = %q, want %q", a.Status, AppointmentScheduled)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		price := -1.0
		a := &Appointment{Date: date, Service: "Haircut", Price: &price}
		if err := ValidateAppointment(a); !errors.Is(err, ErrClientValidation) {
			t.Errorf("ValidateAppointment() = %v, want ErrClientValidation", err)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		a := &Appointment{Date: date, Service: "Haircut", Status: "postponed"}
		if err := ValidateAppointment(a); !errors.Is(err, ErrClientValidation) {
			t.Errorf("ValidateAppointment() = %v, want ErrClientValidation", err)
		}
	})
}
