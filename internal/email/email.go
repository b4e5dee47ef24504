// Package email delivers transactional mail for the backend.
package email

import (
	"context"

	"homeshield_backend/platform/config"
)

// LeadNotification carries the fields rendered into the new-lead email.
type LeadNotification struct {
	LeadID         string
	Name           string
	Email          string
	Phone          string
	BestTimeToCall string
	HasHomeProfile bool
	TotalDevices   int
	EstimatedCost  int
}

type Sender interface {
	SendLeadNotification(ctx context.Context, toEmail string, lead LeadNotification) error
}

// NoopSender is used when email is disabled.
type NoopSender struct{}

func (NoopSender) SendLeadNotification(ctx context.Context, toEmail string, lead LeadNotification) error {
	return nil
}

// NewSender returns the SMTP sender when email is enabled, otherwise a noop.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
