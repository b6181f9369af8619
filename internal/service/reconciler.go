package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/giftpool/internal/gateway"
	"github.com/mmynk/giftpool/internal/models"
	"github.com/mmynk/giftpool/internal/notifier"
	"github.com/mmynk/giftpool/internal/storage"
)

// Outcome is the result of applying a confirmation signal to a payment
// record.
type Outcome int

const (
	// OutcomeNotFound means no matching record exists, or a gateway
	// capture did not complete. Webhook deliveries with this outcome are
	// acknowledged and ignored.
	OutcomeNotFound Outcome = iota

	// OutcomeConfirmed means this call performed the false-to-true
	// transition and the group was notified.
	OutcomeConfirmed

	// OutcomeAlreadyConfirmed means the record was paid before this call.
	// Duplicate deliveries land here; no notification is re-sent.
	OutcomeAlreadyConfirmed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeAlreadyConfirmed:
		return "already_confirmed"
	default:
		return "not_found"
	}
}

// Reconciler applies payment events to payment records: exactly one record,
// exactly once, then notify.
//
// Confirmation must be idempotent because the upstream webhook delivery has
// no at-most-once guarantee. The same approved event may arrive twice, or
// race a manual confirmation; only the first caller to win the store's
// MarkPaid guard notifies the group.
type Reconciler struct {
	store    storage.Store
	gateway  gateway.PaymentGateway
	notifier notifier.Notifier
}

// NewReconciler creates a Reconciler.
func NewReconciler(store storage.Store, gw gateway.PaymentGateway, n notifier.Notifier) *Reconciler {
	return &Reconciler{store: store, gateway: gw, notifier: n}
}

// ConfirmOrder applies a gateway-driven confirmation for an order ID, as
// delivered by the provider webhook. The order is captured before the local
// transition; a capture that does not complete leaves the record untouched.
func (r *Reconciler) ConfirmOrder(ctx context.Context, orderID string) (Outcome, error) {
	outcome, err := r.confirmOrder(ctx, orderID)
	confirmations.WithLabelValues("webhook", outcome.String()).Inc()
	return outcome, err
}

func (r *Reconciler) confirmOrder(ctx context.Context, orderID string) (Outcome, error) {
	groupID, email, err := r.store.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return OutcomeNotFound, nil
		}
		return OutcomeNotFound, fmt.Errorf("failed to resolve order %s: %w", orderID, err)
	}

	group, err := r.store.GetGroup(ctx, groupID)
	if err != nil {
		return OutcomeNotFound, fmt.Errorf("failed to load group %s: %w", groupID, err)
	}
	rec := group.Payments[email]
	if rec == nil {
		return OutcomeNotFound, nil
	}
	if rec.Paid {
		return OutcomeAlreadyConfirmed, nil
	}

	// Capture before the local transition. Anything but a completed
	// capture means "not yet confirmed", never a local error.
	if !r.gateway.CaptureOrder(ctx, orderID) {
		return OutcomeNotFound, nil
	}

	return r.transition(ctx, group, email, rec.Name, false)
}

// ConfirmManual applies a manual or simulated confirmation for a
// (group, email) pair, skipping the gateway capture entirely.
func (r *Reconciler) ConfirmManual(ctx context.Context, groupID, email string) (Outcome, error) {
	outcome, err := r.confirmManual(ctx, groupID, email)
	confirmations.WithLabelValues("manual", outcome.String()).Inc()
	return outcome, err
}

func (r *Reconciler) confirmManual(ctx context.Context, groupID, email string) (Outcome, error) {
	group, err := r.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return OutcomeNotFound, nil
		}
		return OutcomeNotFound, fmt.Errorf("failed to load group %s: %w", groupID, err)
	}
	rec := group.Payments[email]
	if rec == nil {
		return OutcomeNotFound, nil
	}
	if rec.Paid {
		return OutcomeAlreadyConfirmed, nil
	}

	return r.transition(ctx, group, email, rec.Name, true)
}

// transition performs the paid flip and, when this call won it, notifies the
// whole group. The state change always happens first; notifications are
// best-effort afterwards.
func (r *Reconciler) transition(ctx context.Context, group *models.Group, email, name string, simulated bool) (Outcome, error) {
	changed, err := r.store.MarkPaid(ctx, group.ID, email)
	if err != nil {
		return OutcomeNotFound, fmt.Errorf("failed to mark %s/%s paid: %w", group.ID, email, err)
	}
	if !changed {
		// Lost the race against a duplicate delivery.
		return OutcomeAlreadyConfirmed, nil
	}

	slog.Info("Payment confirmed",
		"group_id", group.ID,
		"email", email,
		"simulated", simulated,
	)

	subject := "Payment confirmed!"
	body := fmt.Sprintf("<strong>%s</strong> paid %s!", name, group.FormattedBudget())
	if simulated {
		subject = "Payment simulated!"
		body = fmt.Sprintf("<strong>%s</strong> paid %s (demo).", name, group.FormattedBudget())
	}
	for _, participant := range group.Participants {
		if err := r.notifier.Notify(ctx, participant, subject, body); err != nil {
			slog.Warn("Confirmation mail failed", "group_id", group.ID, "email", participant, "error", err)
		}
	}

	return OutcomeConfirmed, nil
}
