package services

import "fmt"

// ReminderMessage builds the reminder text for a client by name. Total
// over its inputs: every branch yields non-empty text.
func ReminderMessage(name string, daysUntil int) string {
	switch {
	case daysUntil < 0:
		return fmt.Sprintf("Hi %s! Your salon appointment was due %s ago. Please call us to schedule your next visit. We miss you!", name, pluralDays(-daysUntil))
	case daysUntil == 0:
		return fmt.Sprintf("Hi %s! Your salon appointment is due today! Time to pamper yourself. Book your appointment now!", name)
	default:
		return fmt.Sprintf("Hi %s! Your salon appointment is due in %s. Book your appointment to keep looking fabulous!", name, pluralDays(daysUntil))
	}
}

// EmailSubject picks the subject line for the email channel.
func EmailSubject(daysUntil int) string {
	if daysUntil < 0 {
		return "Overdue Salon Appointment Reminder"
	}
	return "Upcoming Salon Appointment Reminder"
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
