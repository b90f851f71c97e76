package process

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"ewintr.nl/learnpath/mail"
	"ewintr.nl/learnpath/model"
	"golang.org/x/exp/slog"
)

type MailSender interface {
	Send(ctx context.Context, d mail.Delivery) error
}

type Deliverer struct {
	sender  MailSender
	missing []string
	logger  *slog.Logger
}

// NewDeliverer takes the SMTP settings that are missing, if any. When some are
// missing, or sender is nil, plans are finished without sending.
func NewDeliverer(sender MailSender, missing []string, logger *slog.Logger) *Deliverer {
	return &Deliverer{
		sender:  sender,
		missing: missing,
		logger:  logger,
	}
}

func (d *Deliverer) Name() string {
	return "deliverer"
}

func (d *Deliverer) Do(ctx context.Context, plan *model.Plan) error {
	if plan.Profile.Email == "" {
		plan.Status = model.PlanStatusDone
		return nil
	}
	if d.sender == nil || len(d.missing) > 0 {
		msg := "Email cannot be sent, SMTP is not configured."
		if len(d.missing) > 0 {
			msg = fmt.Sprintf("Email cannot be sent, missing SMTP settings: %s", strings.Join(d.missing, ", "))
		}
		plan.Warn(msg)
		plan.Status = model.PlanStatusDone
		return nil
	}
	if _, err := os.Stat(plan.DocumentPath); err != nil {
		return fmt.Errorf("document is not on disk: %w", err)
	}

	delivery, err := mail.PlanDelivery(plan, time.Now())
	if err != nil {
		return err
	}
	if err := d.sender.Send(ctx, delivery); err != nil {
		return err
	}

	d.logger.Info("plan delivered", slog.String("plan", plan.ID.String()), slog.String("to", plan.Profile.Email))
	plan.Status = model.PlanStatusDelivered

	return nil
}
