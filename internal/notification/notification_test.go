package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"homeshield_backend/internal/email"
	"homeshield_backend/internal/events"
	"homeshield_backend/platform/logger"
)

type captureSender struct {
	to   string
	lead email.LeadNotification
}

func (c *captureSender) SendLeadNotification(_ context.Context, toEmail string, lead email.LeadNotification) error {
	c.to = toEmail
	c.lead = lead
	return nil
}

type stubEmailConfig struct{}

func (stubEmailConfig) GetEmailEnabled() bool        { return true }
func (stubEmailConfig) GetSMTPHost() string          { return "localhost" }
func (stubEmailConfig) GetSMTPPort() int             { return 587 }
func (stubEmailConfig) GetSMTPUsername() string      { return "" }
func (stubEmailConfig) GetSMTPPassword() string      { return "" }
func (stubEmailConfig) GetEmailFromName() string     { return "HomeShield" }
func (stubEmailConfig) GetEmailFromAddress() string  { return "noreply@example.com" }
func (stubEmailConfig) GetLeadNotifyAddress() string { return "sales@example.com" }

func TestLeadCreatedTriggersNotification(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &captureSender{}

	New(sender, stubEmailConfig{}, log).Register(bus)

	leadID := uuid.New()
	err := bus.PublishSync(context.Background(), events.LeadCreated{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         leadID,
		Name:           "Jane Homeowner",
		Email:          "jane@example.com",
		Phone:          "+15551234567",
		BestTimeToCall: "morning",
		TotalDevices:   6,
		EstimatedCost:  50,
		HasHomeProfile: true,
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	if sender.to != "sales@example.com" {
		t.Errorf("expected notification to sales inbox, got %q", sender.to)
	}
	if sender.lead.LeadID != leadID.String() {
		t.Errorf("expected lead id %s, got %s", leadID, sender.lead.LeadID)
	}
	if sender.lead.TotalDevices != 6 || sender.lead.EstimatedCost != 50 {
		t.Errorf("unexpected summary fields: %+v", sender.lead)
	}
}

func TestOtherEventsIgnored(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &captureSender{}

	New(sender, stubEmailConfig{}, log).Register(bus)

	err := bus.PublishSync(context.Background(), events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		OldStatus: "new",
		NewStatus: "contacted",
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}
	if sender.to != "" {
		t.Error("status change must not trigger a notification")
	}
}
