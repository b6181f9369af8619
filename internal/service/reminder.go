package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/giftpool/internal/notifier"
	"github.com/mmynk/giftpool/internal/storage"
)

// ReminderService nudges unpaid participants of groups whose mode applies
// reminders.
type ReminderService struct {
	store    storage.Store
	notifier notifier.Notifier
}

// NewReminderService creates a ReminderService.
func NewReminderService(store storage.Store, n notifier.Notifier) *ReminderService {
	return &ReminderService{store: store, notifier: n}
}

// Sweep sends one reminder per unpaid record and returns the number sent.
// It works from a point-in-time read: a record paid mid-sweep may still
// receive one last reminder, which is accepted.
func (s *ReminderService) Sweep(ctx context.Context) (int, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list groups: %w", err)
	}

	sent := 0
	for _, group := range groups {
		if !group.Mode.RemindersApply() {
			continue
		}
		for _, email := range group.Participants {
			rec := group.Payments[email]
			if rec == nil || rec.Paid {
				continue
			}
			body := fmt.Sprintf("Please pay %s for %s.", group.FormattedBudget(), group.Recipient)
			if err := s.notifier.Notify(ctx, email, "Reminder", body); err != nil {
				slog.Warn("Reminder mail failed", "group_id", group.ID, "email", email, "error", err)
				continue
			}
			remindersSent.Inc()
			sent++
		}
	}

	slog.Info("Reminder sweep complete", "sent", sent, "groups", len(groups))
	return sent, nil
}
