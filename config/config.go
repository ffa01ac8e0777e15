package config

import (
	"os"
	"strings"
	"time"
)

// Getenv returns the variable's value or fallback when unset.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ReminderSendDelay is the pause between successive client dispatches
// during a bulk run. A rate-limit courtesy toward the messaging
// providers, not load-bearing logic.
func ReminderSendDelay() time.Duration {
	if v := os.Getenv("REMINDER_SEND_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return time.Second
}

// ReminderChannels returns the default channel order for scheduled
// bulk runs, e.g. "sms,whatsapp,email".
func ReminderChannels() []string {
	raw := Getenv("REMINDER_CHANNELS", "sms")
	parts := strings.Split(raw, ",")
	channels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			channels = append(channels, p)
		}
	}
	return channels
}
