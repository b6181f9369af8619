package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mmynk/giftpool/internal/gateway"
	"github.com/mmynk/giftpool/internal/storage/sqlite"
)

// fakeGateway hands out sequential order IDs and records capture calls.
type fakeGateway struct {
	mu          sync.Mutex
	nextOrder   int
	failFor     map[string]bool // emails whose order creation fails
	failCapture map[string]bool // order IDs whose capture does not complete
	captured    []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		failFor:     make(map[string]bool),
		failCapture: make(map[string]bool),
	}
}

func (g *fakeGateway) CreateOrder(_ context.Context, _ int64, _, groupID, email string) gateway.OrderResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failFor[email] {
		return gateway.OrderResult{ApprovalLink: gateway.PlaceholderLink}
	}
	g.nextOrder++
	id := fmt.Sprintf("ORDER-%d", g.nextOrder)
	return gateway.OrderResult{
		OrderID:      id,
		ApprovalLink: "https://paypal.test/approve/" + id,
	}
}

func (g *fakeGateway) CaptureOrder(_ context.Context, orderID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.captured = append(g.captured, orderID)
	return !g.failCapture[orderID]
}

func (g *fakeGateway) captureCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.captured)
}

type sentMessage struct {
	to      string
	subject string
	body    string
}

// fakeNotifier records every message; failTo simulates transport failures.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []sentMessage
	failTo   map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failTo: make(map[string]bool)}
}

func (n *fakeNotifier) Notify(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failTo[to] {
		return fmt.Errorf("smtp down for %s", to)
	}
	n.messages = append(n.messages, sentMessage{to: to, subject: subject, body: body})
	return nil
}

func (n *fakeNotifier) sent() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentMessage, len(n.messages))
	copy(out, n.messages)
	return out
}

func (n *fakeNotifier) sentTo(to string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, m := range n.messages {
		if m.to == to {
			count++
		}
	}
	return count
}

func (n *fakeNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = nil
}

// newTestStore creates a temp-file SQLite store, cleaned up with the test.
func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "giftpool-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}
