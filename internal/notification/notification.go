// Package notification listens for lead events and alerts the sales team.
package notification

import (
	"context"
	"fmt"

	"homeshield_backend/internal/email"
	"homeshield_backend/internal/events"
	"homeshield_backend/platform/config"
	"homeshield_backend/platform/logger"
)

// Notifier emails the sales inbox when a new lead arrives. Delivery failures
// are logged and never surface to the submitting visitor.
type Notifier struct {
	sender email.Sender
	config config.EmailConfig
	log    *logger.Logger
}

// New creates a lead notifier.
func New(sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, config: cfg, log: log}
}

// Register subscribes the notifier to the event bus.
func (n *Notifier) Register(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(n.handleLeadCreated))
}

func (n *Notifier) handleLeadCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(events.LeadCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	notification := email.LeadNotification{
		LeadID:         created.LeadID.String(),
		Name:           created.Name,
		Email:          created.Email,
		Phone:          created.Phone,
		BestTimeToCall: created.BestTimeToCall,
		HasHomeProfile: created.HasHomeProfile,
		TotalDevices:   created.TotalDevices,
		EstimatedCost:  created.EstimatedCost,
	}

	if err := n.sender.SendLeadNotification(ctx, n.config.GetLeadNotifyAddress(), notification); err != nil {
		n.log.Error("lead notification failed", "lead_id", notification.LeadID, "error", err)
		return err
	}

	n.log.Info("lead notification sent", "lead_id", notification.LeadID)
	return nil
}
