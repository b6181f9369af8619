package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/giftpool/internal/gateway"
	"github.com/mmynk/giftpool/internal/models"
	"github.com/mmynk/giftpool/internal/notifier"
	"github.com/mmynk/giftpool/internal/storage"
)

// GroupService creates and reads gift groups.
type GroupService struct {
	store    storage.Store
	gateway  gateway.PaymentGateway
	notifier notifier.Notifier
	baseURL  string
}

// NewGroupService creates a GroupService. baseURL is this server's external
// URL, used to build shareable dashboard links.
func NewGroupService(store storage.Store, gw gateway.PaymentGateway, n notifier.Notifier, baseURL string) *GroupService {
	return &GroupService{store: store, gateway: gw, notifier: n, baseURL: baseURL}
}

// Create validates the input, creates one gateway order per participant,
// persists the group atomically, and mails each participant an invitation
// with their approval link.
//
// A failed order creation degrades that one record to a placeholder link;
// it never aborts the group. Invitation mail failures are logged only.
func (s *GroupService) Create(ctx context.Context, mode models.Mode, recipient string, budget int64, emails []string) (*models.Group, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrValidation, mode)
	}
	if budget <= 0 {
		return nil, fmt.Errorf("%w: budget must be positive", ErrValidation)
	}
	participants := normalizeEmails(emails)
	if len(participants) < 2 {
		return nil, fmt.Errorf("%w: at least 2 participants required", ErrValidation)
	}

	group := &models.Group{
		ID:           fmt.Sprintf("%s_%d", mode, time.Now().Unix()),
		Mode:         mode,
		Recipient:    strings.TrimSpace(recipient),
		Budget:       budget,
		Participants: participants,
		Payments:     make(map[string]*models.PaymentRecord, len(participants)),
	}

	slog.Info("Creating group",
		"group_id", group.ID,
		"mode", mode,
		"participants_count", len(participants),
		"budget", budget,
	)

	for _, email := range participants {
		name := displayName(email)
		order := s.gateway.CreateOrder(ctx, budget, name, group.ID, email)
		if order.OrderID == "" {
			orderCreationFailures.Inc()
			slog.Warn("Order creation failed, participant gets placeholder link",
				"group_id", group.ID, "email", email)
		}
		group.Payments[email] = &models.PaymentRecord{
			Name:         name,
			OrderID:      order.OrderID,
			ApprovalLink: order.ApprovalLink,
		}
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	groupsCreated.Inc()

	for _, email := range participants {
		rec := group.Payments[email]
		subject := fmt.Sprintf("Gift for %s - Pay %s", group.Recipient, group.FormattedBudget())
		if err := s.notifier.Notify(ctx, email, subject, s.invitationBody(group, rec)); err != nil {
			slog.Warn("Invitation mail failed", "group_id", group.ID, "email", email, "error", err)
		}
	}

	slog.Info("Group created", "group_id", group.ID)
	return group, nil
}

// Get retrieves a group for the dashboard. Pure projection, no mutation.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// DashboardURL builds the shareable URL of a group's dashboard.
func (s *GroupService) DashboardURL(groupID string) string {
	return s.baseURL + "/group/" + groupID
}

func (s *GroupService) invitationBody(group *models.Group, rec *models.PaymentRecord) string {
	return fmt.Sprintf(`<h2>Gift for <strong>%s</strong></h2>
<p>Your share: <strong>%s</strong></p>
<p><a href="%s">Pay %s with PayPal</a></p>
<p><small>Payment will be confirmed <strong>automatically</strong>.</small></p>
<hr>
<p>Live dashboard: <a href="%s">View</a></p>`,
		group.Recipient, group.FormattedBudget(), rec.ApprovalLink, group.FormattedBudget(), s.DashboardURL(group.ID))
}

// normalizeEmails trims whitespace, drops empties, and removes duplicates
// while preserving first-seen order.
func normalizeEmails(emails []string) []string {
	seen := make(map[string]bool, len(emails))
	var out []string
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// displayName derives a display name from the email local-part, e.g.
// "a@x.com" becomes "A".
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return strings.ToUpper(local[:1]) + strings.ToLower(local[1:])
}
