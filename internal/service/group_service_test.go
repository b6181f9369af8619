package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mmynk/giftpool/internal/gateway"
	"github.com/mmynk/giftpool/internal/models"
)

const testBaseURL = "http://localhost:8080"

func TestCreateGroup(t *testing.T) {
	store := newTestStore(t)
	gw := newFakeGateway()
	mail := newFakeNotifier()
	svc := NewGroupService(store, gw, mail, testBaseURL)
	ctx := context.Background()

	group, err := svc.Create(ctx, models.ModeGiftPool, "Maria", 30, []string{"a@x.com", "b@x.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if !strings.HasPrefix(group.ID, "giftpool_") {
		t.Errorf("expected mode-prefixed ID, got %s", group.ID)
	}
	if len(group.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(group.Participants))
	}

	recA := group.Payments["a@x.com"]
	recB := group.Payments["b@x.com"]
	if recA == nil || recB == nil {
		t.Fatal("expected payment records for both participants")
	}
	if recA.Name != "A" || recB.Name != "B" {
		t.Errorf("names: got %q, %q, want A, B", recA.Name, recB.Name)
	}
	if recA.Paid || recB.Paid {
		t.Error("new records must be unpaid")
	}
	if recA.OrderID == "" || recA.ApprovalLink == gateway.PlaceholderLink {
		t.Errorf("expected a working order for a@x.com, got %+v", recA)
	}

	// The group is persisted and readable.
	stored, err := svc.Get(ctx, group.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Budget != 30 || stored.Recipient != "Maria" {
		t.Errorf("stored group mismatch: %+v", stored)
	}

	// Each participant got exactly one invitation with the share amount.
	msgs := mail.sent()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 invitations, got %d", len(msgs))
	}
	for _, m := range msgs {
		if !strings.Contains(m.subject, "30€") {
			t.Errorf("subject missing share amount: %s", m.subject)
		}
		if !strings.Contains(m.body, "/group/"+group.ID) {
			t.Errorf("body missing dashboard link: %s", m.body)
		}
	}
}

func TestCreateGroup_Validation(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store, newFakeGateway(), newFakeNotifier(), testBaseURL)
	ctx := context.Background()

	tests := []struct {
		name   string
		mode   models.Mode
		budget int64
		emails []string
	}{
		{"no participants", models.ModeGiftPool, 30, nil},
		{"one participant", models.ModeGiftPool, 30, []string{"a@x.com"}},
		{"duplicates collapse below minimum", models.ModeGiftPool, 30, []string{"a@x.com", "a@x.com"}},
		{"blank emails ignored", models.ModeGiftPool, 30, []string{" ", "a@x.com", ""}},
		{"zero budget", models.ModeGiftPool, 0, []string{"a@x.com", "b@x.com"}},
		{"negative budget", models.ModeGiftPool, -5, []string{"a@x.com", "b@x.com"}},
		{"unknown mode", models.Mode("raffle"), 30, []string{"a@x.com", "b@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.mode, "Maria", tt.budget, tt.emails)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	// No partial group was created.
	groups, err := store.ListGroups(ctx)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups after failed creations, got %d", len(groups))
	}
}

func TestCreateGroup_OrderFailureDegrades(t *testing.T) {
	store := newTestStore(t)
	gw := newFakeGateway()
	gw.failFor["b@x.com"] = true
	svc := NewGroupService(store, gw, newFakeNotifier(), testBaseURL)

	group, err := svc.Create(context.Background(), models.ModeGiftPool, "Maria", 30, []string{"a@x.com", "b@x.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	recA := group.Payments["a@x.com"]
	if recA.OrderID == "" || recA.ApprovalLink == gateway.PlaceholderLink {
		t.Errorf("a@x.com must keep a working order, got %+v", recA)
	}

	recB := group.Payments["b@x.com"]
	if recB.OrderID != "" {
		t.Errorf("b@x.com must have no order ID, got %s", recB.OrderID)
	}
	if recB.ApprovalLink != gateway.PlaceholderLink {
		t.Errorf("b@x.com must have the placeholder link, got %s", recB.ApprovalLink)
	}
}

func TestCreateGroup_DedupesPreservingOrder(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store, newFakeGateway(), newFakeNotifier(), testBaseURL)

	group, err := svc.Create(context.Background(), models.ModeSecretSanta, "", 20,
		[]string{"c@x.com", " a@x.com ", "c@x.com", "b@x.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	want := []string{"c@x.com", "a@x.com", "b@x.com"}
	if len(group.Participants) != len(want) {
		t.Fatalf("expected %d participants, got %d", len(want), len(group.Participants))
	}
	for i, email := range want {
		if group.Participants[i] != email {
			t.Errorf("participant %d: got %s, want %s", i, group.Participants[i], email)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"a@x.com", "A"},
		{"maria@example.org", "Maria"},
		{"JOHN.DOE@example.org", "John.doe"},
		{"@x.com", "@x.com"},
	}
	for _, tt := range tests {
		if got := displayName(tt.email); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
