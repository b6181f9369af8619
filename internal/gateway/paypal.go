package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
)

const (
	currency       = "EUR"
	brandName      = "GiftPool"
	requestTimeout = 10 * time.Second
)

// PayPal implements PaymentGateway against the PayPal Orders v2 API.
type PayPal struct {
	client  *paypal.Client
	baseURL string
}

// NewPayPal creates a PayPal gateway. apiBase selects sandbox or live
// (paypal.APIBaseSandBox / paypal.APIBaseLive). baseURL is this server's
// external URL, used for the return and cancel redirects.
func NewPayPal(clientID, secret, apiBase, baseURL string) (*PayPal, error) {
	if apiBase == "" {
		apiBase = paypal.APIBaseSandBox
	}
	client, err := paypal.NewClient(clientID, secret, apiBase)
	if err != nil {
		return nil, fmt.Errorf("failed to create paypal client: %w", err)
	}
	client.Client = &http.Client{Timeout: requestTimeout}
	return &PayPal{client: client, baseURL: baseURL}, nil
}

// CreateOrder creates a CAPTURE-intent order for one participant's share.
// Any failure degrades to the placeholder result.
func (p *PayPal) CreateOrder(ctx context.Context, amount int64, name, groupID, email string) OrderResult {
	failed := OrderResult{ApprovalLink: PlaceholderLink}

	if _, err := p.client.GetAccessToken(ctx); err != nil {
		slog.Warn("PayPal token acquisition failed", "error", err)
		return failed
	}

	units := []paypal.PurchaseUnitRequest{
		{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: currency,
				Value:    decimal.NewFromInt(amount).StringFixed(2),
			},
			Description: fmt.Sprintf("Gift - %s", name),
			CustomID:    Correlation(groupID, email),
		},
	}
	appContext := &paypal.ApplicationContext{
		BrandName:  brandName,
		UserAction: paypal.UserActionPayNow,
		ReturnURL:  p.baseURL + "/paypal-return",
		CancelURL:  p.baseURL + "/paypal-cancel",
	}

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appContext)
	if err != nil {
		slog.Warn("PayPal order creation failed", "group_id", groupID, "email", email, "error", err)
		return failed
	}

	approvalURL := approvalLink(order)
	if approvalURL == "" {
		slog.Warn("PayPal order has no approval link", "order_id", order.ID)
		return failed
	}

	return OrderResult{OrderID: order.ID, ApprovalLink: approvalURL}
}

// CaptureOrder captures an approved order and reports whether the provider
// confirmed the capture as COMPLETED.
func (p *PayPal) CaptureOrder(ctx context.Context, orderID string) bool {
	if _, err := p.client.GetAccessToken(ctx); err != nil {
		slog.Warn("PayPal token acquisition failed", "error", err)
		return false
	}

	capture, err := p.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		slog.Warn("PayPal capture failed", "order_id", orderID, "error", err)
		return false
	}
	if capture.Status != "COMPLETED" {
		slog.Info("PayPal capture not completed", "order_id", orderID, "status", capture.Status)
		return false
	}
	return true
}

// approvalLink scans the order links for the one the payer must visit.
func approvalLink(order *paypal.Order) string {
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}
