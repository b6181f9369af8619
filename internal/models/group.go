package models

import "fmt"

// Mode distinguishes the kinds of gift groups.
type Mode string

const (
	// ModeGiftPool is a shared pool for one recipient. Unpaid participants
	// receive daily reminders.
	ModeGiftPool Mode = "giftpool"

	// ModeSecretSanta has no single recipient and no reminders.
	ModeSecretSanta Mode = "secretsanta"
)

// Valid reports whether m is a known group mode.
func (m Mode) Valid() bool {
	return m == ModeGiftPool || m == ModeSecretSanta
}

// RemindersApply reports whether unpaid participants of this mode should
// receive reminder messages.
func (m Mode) RemindersApply() bool {
	return m == ModeGiftPool
}

// Group represents one gift collection.
// It is immutable after creation except for the Paid flag of its records.
type Group struct {
	// ID is the opaque group identifier, generated at creation time.
	ID string

	// Mode is the group kind (giftpool, secretsanta).
	Mode Mode

	// Recipient is the free-text name of the gift recipient.
	// May be empty for secret-santa groups.
	Recipient string

	// Budget is the share each participant must pay, in whole euros.
	Budget int64

	// Participants is the ordered list of participant emails,
	// unique within the group. At least 2 are required at creation.
	Participants []string

	// Payments maps participant email to its payment record.
	// Exactly one entry exists per participant, created with the group.
	Payments map[string]*PaymentRecord

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// FormattedBudget renders the per-head share for messages, e.g. "30€".
func (g *Group) FormattedBudget() string {
	return fmt.Sprintf("%d€", g.Budget)
}

// PaymentRecord tracks one participant's share of a group.
type PaymentRecord struct {
	// Name is the display name derived from the email local-part.
	Name string

	// OrderID is the identifier assigned by the payment gateway.
	// Empty when order creation failed; immutable once set.
	OrderID string

	// ApprovalLink is the URL the participant visits to authorize
	// payment. "#" when order creation failed.
	ApprovalLink string

	// Paid reports whether the share has been collected.
	// Transitions false to true exactly once, never back.
	Paid bool
}
