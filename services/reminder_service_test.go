package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"salondesk-backend/models"

	"github.com/google/uuid"
)

type fakeChannel struct {
	name         string
	unconfigured bool
	err          error
	sent         []string // last messages, in call order
}

func (f *fakeChannel) Name() string     { return f.name }
func (f *fakeChannel) Configured() bool { return !f.unconfigured }

func (f *fakeChannel) Send(_ context.Context, _ *models.Client, _ int, message string) error {
	f.sent = append(f.sent, message)
	return f.err
}

func newTestService(channels ...Channel) *ReminderService {
	s := NewReminderService(0, nil, channels...)
	s.now = func() time.Time { return testNow }
	return s
}

func testClient(name string, nextDue time.Time) *models.Client {
	return &models.Client{
		ID:          uuid.New(),
		Name:        name,
		Mobile:      "+14155550123",
		Email:       "client@example.com",
		NextDueDate: nextDue,
	}
}

func TestDispatchOverallSuccessIsOr(t *testing.T) {
	sms := &fakeChannel{name: ChannelSMS, err: errors.New("carrier rejected")}
	email := &fakeChannel{name: ChannelEmail}
	s := newTestService(sms, email)

	result, err := s.Dispatch(context.Background(), testClient("Asha", testNow.AddDate(0, 0, 3)), []string{ChannelSMS, ChannelEmail})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if !result.Success {
		t.Error("Success = false, want true when at least one channel delivers")
	}
	if result.Channels[ChannelSMS] {
		t.Error("sms result = true, want false")
	}
	if !result.Channels[ChannelEmail] {
		t.Error("email result = false, want true")
	}
}

func TestDispatchIsolatesChannelFailures(t *testing.T) {
	sms := &fakeChannel{name: ChannelSMS, err: errors.New("boom")}
	whatsapp := &fakeChannel{name: ChannelWhatsApp}
	s := newTestService(sms, whatsapp)

	result, err := s.Dispatch(context.Background(), testClient("Asha", testNow.AddDate(0, 0, 1)), []string{ChannelSMS, ChannelWhatsApp})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(whatsapp.sent) != 1 {
		t.Errorf("whatsapp attempts = %d, want 1 despite sms failure", len(whatsapp.sent))
	}
	if len(result.Channels) != 2 {
		t.Errorf("recorded channels = %d, want 2", len(result.Channels))
	}
}

func TestDispatchUnconfiguredChannelIsFalseNotError(t *testing.T) {
	sms := &fakeChannel{name: ChannelSMS, unconfigured: true}
	s := newTestService(sms)

	result, err := s.Dispatch(context.Background(), testClient("Asha", testNow), []string{ChannelSMS})
	if err != nil {
		t.Fatalf("Dispatch() error = %v, want nil for configuration gap", err)
	}
	if result.Success {
		t.Error("Success = true, want false")
	}
	if got, ok := result.Channels[ChannelSMS]; !ok || got {
		t.Errorf("sms result = %v (present=%v), want recorded false", got, ok)
	}
	if len(sms.sent) != 0 {
		t.Errorf("unconfigured channel received %d sends, want 0", len(sms.sent))
	}
}

func TestDispatchUnknownChannelIsHardError(t *testing.T) {
	s := newTestService(&fakeChannel{name: ChannelSMS})

	_, err := s.Dispatch(context.Background(), testClient("Asha", testNow), []string{"pigeon"})
	if !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("Dispatch() error = %v, want ErrUnknownChannel", err)
	}
}

func TestDispatchNilClientIsHardError(t *testing.T) {
	s := newTestService(&fakeChannel{name: ChannelSMS})

	_, err := s.Dispatch(context.Background(), nil, []string{ChannelSMS})
	if !errors.Is(err, ErrNilClient) {
		t.Errorf("Dispatch() error = %v, want ErrNilClient", err)
	}
}

func TestDispatchMessageReflectsDueState(t *testing.T) {
	sms := &fakeChannel{name: ChannelSMS}
	s := newTestService(sms)

	// Last visit 35 days back puts the due date 5 days in the past.
	client := testClient("Meera", testNow.AddDate(0, 0, -35).Add(models.DueDateInterval))

	status, days := Classify(client.NextDueDate, testNow)
	if status != StatusOverdue || days != -5 {
		t.Fatalf("Classify() = (%q, %d), want (Overdue, -5)", status, days)
	}

	if _, err := s.Dispatch(context.Background(), client, []string{ChannelSMS}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(sms.sent) != 1 {
		t.Fatalf("sms attempts = %d, want 1", len(sms.sent))
	}
	msg := sms.sent[0]
	if !strings.Contains(msg, "5 days") || !strings.Contains(msg, "ago") {
		t.Errorf("message %q should carry the overdue framing with the day count", msg)
	}
}

func TestRunBulkOrderingAndHardFailureIsolation(t *testing.T) {
	sms := &fakeChannel{name: ChannelSMS}
	s := newTestService(sms)

	a := testClient("A", testNow)
	c := testClient("C", testNow)
	clients := []*models.Client{a, nil, c} // nil record fails dispatch hard

	report := s.RunBulk(context.Background(), clients, []string{ChannelSMS})

	if len(report.Details) != 3 {
		t.Fatalf("details length = %d, want 3", len(report.Details))
	}
	if report.Sent+report.Failed != len(clients) {
		t.Errorf("sent+failed = %d, want %d", report.Sent+report.Failed, len(clients))
	}
	if report.Sent != 2 || report.Failed != 1 {
		t.Errorf("report = {sent:%d failed:%d}, want {sent:2 failed:1}", report.Sent, report.Failed)
	}

	if report.Details[0].ClientID != a.ID.String() {
		t.Errorf("details[0] = %q, want client A", report.Details[0].ClientID)
	}
	if report.Details[2].ClientID != c.ID.String() {
		t.Errorf("details[2] = %q, want client C", report.Details[2].ClientID)
	}

	bad := report.Details[1]
	if bad.Success {
		t.Error("hard-failed client marked successful")
	}
	if len(bad.Channels) != 0 {
		t.Errorf("hard-failed client has %d channel results, want empty map", len(bad.Channels))
	}
	if bad.Channels == nil {
		t.Error("hard-failed client should carry an empty map, not nil")
	}
}

func TestRunBulkSingleDueTodayClient(t *testing.T) {
	sms := &fakeChannel{name: ChannelSMS}
	s := newTestService(sms)

	client := testClient("Today", testNow)
	report := s.RunBulk(context.Background(), []*models.Client{client}, []string{ChannelSMS})

	if report.Sent != 1 || report.Failed != 0 {
		t.Fatalf("report = {sent:%d failed:%d}, want {sent:1 failed:0}", report.Sent, report.Failed)
	}
	detail := report.Details[0]
	if detail.ClientID != client.ID.String() || !detail.Success {
		t.Errorf("detail = %+v, want success for %s", detail, client.ID)
	}
	if !detail.Channels[ChannelSMS] {
		t.Error("sms channel result = false, want true")
	}
	if !strings.Contains(sms.sent[0], "due today") {
		t.Errorf("message %q should read as due today", sms.sent[0])
	}
}

func TestRunBulkCancellationReturnsPartialReport(t *testing.T) {
	sms := &fakeChannel{name: ChannelSMS}
	s := NewReminderService(time.Hour, nil, sms) // delay long enough to never elapse
	s.now = func() time.Time { return testNow }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clients := []*models.Client{testClient("A", testNow), testClient("B", testNow)}
	report := s.RunBulk(ctx, clients, []string{ChannelSMS})

	if len(report.Details) >= len(clients) {
		t.Errorf("details length = %d, want partial report under cancellation", len(report.Details))
	}
}
