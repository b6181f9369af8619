// Package gateway wraps the external payment provider.
//
// Every provider failure (token acquisition, order creation, capture) is
// absorbed at this boundary and converted to a placeholder result or a false
// confirmation. No error crosses into the rest of the system: there is no
// retry queue, so a failed order creation simply leaves that one participant
// with a non-functional link.
package gateway

import (
	"context"
	"fmt"
	"strings"
)

// PlaceholderLink is the approval link of a record whose order creation
// failed.
const PlaceholderLink = "#"

// OrderResult is the outcome of creating a provider order. A failed creation
// yields the zero OrderID and the placeholder link.
type OrderResult struct {
	OrderID      string
	ApprovalLink string
}

// PaymentGateway creates and captures orders against the payment provider.
type PaymentGateway interface {
	// CreateOrder creates an order of amount whole euros for one
	// participant. The group ID and email are attached to the remote
	// order as a correlation token so an asynchronous event can be
	// mapped back to the exact payment record.
	CreateOrder(ctx context.Context, amount int64, name, groupID, email string) OrderResult

	// CaptureOrder captures an approved order. It returns true only when
	// the provider reports the capture as fully completed; pending,
	// denied, and transport failures all mean "not yet confirmed".
	CaptureOrder(ctx context.Context, orderID string) bool
}

// Correlation encodes a (groupID, email) pair into the opaque token attached
// to remote orders.
func Correlation(groupID, email string) string {
	return groupID + "|" + email
}

// ParseCorrelation splits a correlation token back into (groupID, email).
func ParseCorrelation(token string) (groupID, email string, err error) {
	groupID, email, ok := strings.Cut(token, "|")
	if !ok || groupID == "" || email == "" {
		return "", "", fmt.Errorf("malformed correlation token %q", token)
	}
	return groupID, email, nil
}

// Disabled is a PaymentGateway used when no provider credentials are
// configured. Every order degrades to the placeholder and nothing is ever
// captured, which keeps the manual confirmation flow usable for demos.
type Disabled struct{}

func (Disabled) CreateOrder(context.Context, int64, string, string, string) OrderResult {
	return OrderResult{ApprovalLink: PlaceholderLink}
}

func (Disabled) CaptureOrder(context.Context, string) bool { return false }
