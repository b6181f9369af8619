package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mmynk/giftpool/internal/gateway"
	"github.com/mmynk/giftpool/internal/models"
	"github.com/mmynk/giftpool/internal/service"
	"github.com/mmynk/giftpool/internal/storage"
)

// defaultBudget applies when the creation form omits the amount.
const defaultBudget = 30

type paymentView struct {
	Name         string `json:"name"`
	OrderID      string `json:"order_id,omitempty"`
	ApprovalLink string `json:"approval_link"`
	Paid         bool   `json:"paid"`
}

type groupView struct {
	ID              string                 `json:"id"`
	Mode            string                 `json:"mode"`
	Recipient       string                 `json:"recipient"`
	Budget          int64                  `json:"budget"`
	BudgetFormatted string                 `json:"budget_formatted"`
	CreatedAt       int64                  `json:"created_at"`
	Participants    []string               `json:"participants"`
	Payments        map[string]paymentView `json:"payments"`
	DashboardURL    string                 `json:"dashboard_url"`
}

func (s *Server) groupView(group *models.Group) groupView {
	payments := make(map[string]paymentView, len(group.Payments))
	for email, rec := range group.Payments {
		payments[email] = paymentView{
			Name:         rec.Name,
			OrderID:      rec.OrderID,
			ApprovalLink: rec.ApprovalLink,
			Paid:         rec.Paid,
		}
	}
	return groupView{
		ID:              group.ID,
		Mode:            string(group.Mode),
		Recipient:       group.Recipient,
		Budget:          group.Budget,
		BudgetFormatted: group.FormattedBudget(),
		CreatedAt:       group.CreatedAt,
		Participants:    group.Participants,
		Payments:        payments,
		DashboardURL:    s.groups.DashboardURL(group.ID),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// handleCreateGroupForm handles the browser form submission and redirects to
// the new group's dashboard.
func (s *Server) handleCreateGroupForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	budget := int64(defaultBudget)
	if v := r.FormValue("budget"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "budget must be a whole number", http.StatusBadRequest)
			return
		}
		budget = parsed
	}

	group, err := s.groups.Create(r.Context(),
		models.Mode(r.FormValue("mode")),
		r.FormValue("recipient"),
		budget,
		strings.Split(r.FormValue("emails"), ","),
	)
	if err != nil {
		s.createError(w, err)
		return
	}

	http.Redirect(w, r, "/group/"+group.ID, http.StatusSeeOther)
}

// handleCreateGroupJSON is the API variant of group creation.
func (s *Server) handleCreateGroupJSON(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode      string   `json:"mode"`
		Recipient string   `json:"recipient"`
		Budget    int64    `json:"budget"`
		Emails    []string `json:"emails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	group, err := s.groups.Create(r.Context(), models.Mode(req.Mode), req.Recipient, req.Budget, req.Emails)
	if err != nil {
		s.createError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.groupView(group))
}

func (s *Server) createError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	slog.Error("Group creation failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// handleGetGroup renders the dashboard projection. Read-only.
func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Group not found."})
			return
		}
		slog.Error("Failed to load group", "group_id", r.PathValue("id"), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, s.groupView(group))
}

// handleWebhook processes provider events. It always acknowledges with 200:
// a non-2xx only makes the provider redeliver, which is pointless for an
// event we already decided to ignore.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var event gateway.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		slog.Warn("Webhook payload not decodable", "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if event.EventType != gateway.EventOrderApproved || event.Resource.ID == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	outcome, err := s.reconciler.ConfirmOrder(r.Context(), event.Resource.ID)
	if err != nil {
		slog.Error("Webhook reconciliation failed", "order_id", event.Resource.ID, "error", err)
	}

	status := "ignored"
	if outcome == service.OutcomeConfirmed || outcome == service.OutcomeAlreadyConfirmed {
		status = "success"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// handleSimulatePayment confirms a payment without the provider, for demos.
func (s *Server) handleSimulatePayment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	groupID := r.FormValue("group_id")
	email := r.FormValue("email")

	outcome, err := s.reconciler.ConfirmManual(r.Context(), groupID, email)
	if err != nil {
		slog.Error("Simulated confirmation failed", "group_id", groupID, "email", email, "error", err)
	} else {
		slog.Info("Simulated confirmation", "group_id", groupID, "email", email, "outcome", outcome.String())
	}

	if groupID == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/group/"+groupID, http.StatusSeeOther)
}

// handlePayPalReturn is informational only. The authoritative confirmation
// always comes from the webhook or the manual path, never from a browser
// redirect.
func (s *Server) handlePayPalReturn(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePayPalCancel(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
