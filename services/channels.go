package services

import (
	"context"
	"fmt"
	"os"

	"salondesk-backend/models"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Channel names, in the order clients usually request them.
const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// Channel is one reminder delivery mechanism. A channel may be
// unconfigured (credentials absent at startup); Configured reports
// that, and the dispatcher treats it as a recorded non-delivery rather
// than an error. Send must not panic; failures come back as errors and
// are isolated per channel by the dispatcher.
type Channel interface {
	Name() string
	Configured() bool
	Send(ctx context.Context, client *models.Client, daysUntil int, message string) error
}

// --- Twilio (SMS + WhatsApp) ---

type twilioChannel struct {
	name   string
	client *twilio.RestClient
	from   string
}

// NewSMSChannel wires the Twilio SMS sender from the environment.
// Missing credentials yield an unconfigured channel, not an error.
func NewSMSChannel() Channel {
	return newTwilioChannel(ChannelSMS, os.Getenv("TWILIO_PHONE_NUMBER"))
}

// NewWhatsAppChannel wires the Twilio WhatsApp sender. Twilio routes
// WhatsApp through the same messaging API with a "whatsapp:" address
// prefix.
func NewWhatsAppChannel() Channel {
	return newTwilioChannel(ChannelWhatsApp, os.Getenv("TWILIO_WHATSAPP_NUMBER"))
}

func newTwilioChannel(name, from string) Channel {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if accountSid == "" || authToken == "" || from == "" {
		return &twilioChannel{name: name}
	}
	return &twilioChannel{
		name: name,
		from: from,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (t *twilioChannel) Name() string     { return t.name }
func (t *twilioChannel) Configured() bool { return t.client != nil }

func (t *twilioChannel) Send(_ context.Context, client *models.Client, _ int, message string) error {
	to, from := client.Mobile, t.from
	if t.name == ChannelWhatsApp {
		to = "whatsapp:" + to
		from = "whatsapp:" + from
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio %s send: %w", t.name, err)
	}
	if resp.Sid != nil {
		log.Debug().Str("channel", t.name).Str("to", client.Mobile).Str("sid", *resp.Sid).Msg("Message sent")
	}
	return nil
}

// --- Resend (email) ---

type emailChannel struct {
	client *resend.Client
	from   string
}

// NewEmailChannel wires the Resend sender from the environment.
func NewEmailChannel() Channel {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return &emailChannel{}
	}
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "Salon Appointment <appointments@yoursalon.com>"
	}
	return &emailChannel{client: resend.NewClient(apiKey), from: from}
}

func (e *emailChannel) Name() string     { return ChannelEmail }
func (e *emailChannel) Configured() bool { return e.client != nil }

func (e *emailChannel) Send(ctx context.Context, client *models.Client, daysUntil int, message string) error {
	params := &resend.SendEmailRequest{
		From:    e.from,
		To:      []string{client.Email},
		Subject: EmailSubject(daysUntil),
		Html:    emailBody(client.Name, message),
	}

	sent, err := e.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend email send: %w", err)
	}
	log.Debug().Str("channel", ChannelEmail).Str("to", client.Email).Str("id", sent.Id).Msg("Message sent")
	return nil
}

func emailBody(name, message string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #ec4899;">Salon Appointment Reminder</h2>
  <p>Dear %s,</p>
  <div style="background-color: #fdf2f8; padding: 20px; border-radius: 8px; margin: 20px 0;">%s</div>
  <p>Thank you for choosing our salon!</p>
  <hr>
  <p style="font-size: 12px; color: #666;">This is an automated message. Please do not reply to this email.</p>
</div>`, name, message)
}
