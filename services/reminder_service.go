// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"salondesk-backend/models"
	"salondesk-backend/stores"

	"github.com/rs/zerolog/log"
)

var (
	ErrNilClient      = errors.New("nil client record")
	ErrUnknownChannel = errors.New("unknown reminder channel")
)

// DispatchResult is the outcome of one client's reminder across the
// requested channels. Success is true iff at least one channel
// delivered; partial delivery counts.
type DispatchResult struct {
	Success  bool            `json:"success"`
	Channels map[string]bool `json:"channels"`
}

// DispatchDetail is one row of a bulk report, in input order.
type DispatchDetail struct {
	ClientID string          `json:"clientId"`
	Success  bool            `json:"success"`
	Channels map[string]bool `json:"channels"`
}

// BulkReport summarizes one bulk run. Every input client contributes
// exactly one detail entry, so Sent+Failed always equals the input
// length.
type BulkReport struct {
	Sent    int              `json:"sent"`
	Failed  int              `json:"failed"`
	Details []DispatchDetail `json:"details"`
}

// ReminderService classifies clients against their due dates, builds
// reminder text and delivers it over the configured channels. Sends
// are sequential: one client at a time, one channel at a time, with a
// fixed pause between clients to stay under provider rate limits.
type ReminderService struct {
	channels map[string]Channel
	delay    time.Duration
	now      func() time.Time
	logs     *stores.ReminderLogStore

	warnOnce map[string]*sync.Once
}

// NewReminderService builds a service over the given channels. logs
// may be nil when no delivery audit trail is wanted.
func NewReminderService(delay time.Duration, logs *stores.ReminderLogStore, channels ...Channel) *ReminderService {
	byName := make(map[string]Channel, len(channels))
	warnOnce := make(map[string]*sync.Once, len(channels))
	for _, ch := range channels {
		byName[ch.Name()] = ch
		warnOnce[ch.Name()] = &sync.Once{}
	}
	return &ReminderService{
		channels: byName,
		delay:    delay,
		now:      time.Now,
		logs:     logs,
		warnOnce: warnOnce,
	}
}

// DefaultReminderService wires Twilio SMS, Twilio WhatsApp and Resend
// email from the environment.
func DefaultReminderService(delay time.Duration, logs *stores.ReminderLogStore) *ReminderService {
	return NewReminderService(delay, logs, NewSMSChannel(), NewWhatsAppChannel(), NewEmailChannel())
}

// Dispatch sends one client's reminder across the requested channels,
// in the order given. Per-channel failures (unconfigured channel,
// provider error) are recorded as false results and never abort the
// remaining channels. The returned error is reserved for hard
// failures: a nil client or an unknown channel name.
func (s *ReminderService) Dispatch(ctx context.Context, client *models.Client, channels []string) (DispatchResult, error) {
	result := DispatchResult{Channels: make(map[string]bool, len(channels))}

	if client == nil {
		return result, ErrNilClient
	}
	for _, name := range channels {
		if _, ok := s.channels[name]; !ok {
			return result, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
		}
	}

	daysUntil := DaysUntil(client.NextDueDate, s.now())
	message := ReminderMessage(client.Name, daysUntil)

	for _, name := range channels {
		ch := s.channels[name]

		if !ch.Configured() {
			s.warnOnce[name].Do(func() {
				log.Warn().Str("channel", name).Msg("Channel not configured, reminders will be skipped")
			})
			result.Channels[name] = false
			s.record(client, name, message, false, "channel not configured")
			continue
		}

		err := ch.Send(ctx, client, daysUntil, message)
		if err != nil {
			log.Error().Err(err).
				Str("channel", name).
				Str("client_id", client.ID.String()).
				Msg("Reminder send failed")
		}

		sent := err == nil
		result.Channels[name] = sent
		if sent {
			result.Success = true
		}
		errMsg := ""
		if err != nil {
			errMsg = err.Error()
		}
		s.record(client, name, message, sent, errMsg)
	}

	return result, nil
}

// RunBulk dispatches reminders for each client in sequence and
// accumulates a report. Details preserve input order. A hard dispatch
// error for one client marks that client failed, with an empty channel
// map, and processing continues; one bad record never stops the batch.
// Cancellation is honored between clients and returns the partial
// report.
func (s *ReminderService) RunBulk(ctx context.Context, clients []*models.Client, channels []string) BulkReport {
	report := BulkReport{Details: make([]DispatchDetail, 0, len(clients))}

	for i, client := range clients {
		if i > 0 {
			// Rate-limit courtesy pause between clients.
			select {
			case <-ctx.Done():
				log.Warn().Int("processed", i).Msg("Bulk reminder run cancelled")
				return report
			case <-time.After(s.delay):
			}
		} else if ctx.Err() != nil {
			return report
		}

		clientID := ""
		if client != nil {
			clientID = client.ID.String()
		}

		result, err := s.Dispatch(ctx, client, channels)
		if err != nil {
			log.Error().Err(err).Str("client_id", clientID).Msg("Reminder dispatch failed")
			report.Failed++
			report.Details = append(report.Details, DispatchDetail{
				ClientID: clientID,
				Success:  false,
				Channels: map[string]bool{},
			})
			continue
		}

		if result.Success {
			report.Sent++
		} else {
			report.Failed++
		}
		report.Details = append(report.Details, DispatchDetail{
			ClientID: clientID,
			Success:  result.Success,
			Channels: result.Channels,
		})
	}

	log.Info().
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Str("channels", strings.Join(channels, ",")).
		Msg("Bulk reminder run completed")
	return report
}

func (s *ReminderService) record(client *models.Client, channel, message string, sent bool, errMsg string) {
	if s.logs == nil {
		return
	}
	if err := s.logs.Record(client.ID, channel, message, sent, errMsg); err != nil {
		log.Error().Err(err).Str("client_id", client.ID.String()).Msg("Failed to log reminder")
	}
}
