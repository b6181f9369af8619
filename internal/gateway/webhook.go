package gateway

// EventOrderApproved is the only webhook event kind acted upon. Everything
// else is acknowledged and ignored.
const EventOrderApproved = "CHECKOUT.ORDER.APPROVED"

// WebhookEvent is the subset of the provider's webhook payload this system
// reads.
type WebhookEvent struct {
	EventType string          `json:"event_type"`
	Resource  WebhookResource `json:"resource"`
}

// WebhookResource carries the provider's order ID.
type WebhookResource struct {
	ID string `json:"id"`
}
