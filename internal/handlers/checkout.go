package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"event-registrations/internal/middleware"
	"event-registrations/internal/models"
	"event-registrations/internal/services"

	"github.com/go-chi/chi/v5"
)

// RegistrationCheckout is the checkout flow used by the handlers
type RegistrationCheckout interface {
	AttendeeSection(ctx context.Context, cartID string, values models.SubmittedValues) (*services.AttendeeSection, error)
	SubmitCheckout(ctx context.Context, req *services.CheckoutRequest, notices services.NoticeReporter) (*services.CheckoutResult, error)
	AttendeesForOrder(orderID int) ([]services.AttendeeGroupView, error)
}

// OrderReader loads orders for display
type OrderReader interface {
	GetByID(id int) (*models.Order, error)
}

// CheckoutHandler handles the attendee checkout pages and the admin view
type CheckoutHandler struct {
	checkout RegistrationCheckout
	orders   OrderReader
	carts    services.CartWriter
	tmpl     *template.Template
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout RegistrationCheckout, orders OrderReader, carts services.CartWriter, tmpl *template.Template) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		orders:   orders,
		carts:    carts,
		tmpl:     tmpl,
	}
}

// Routes registers the shopper facing routes
func (h *CheckoutHandler) Routes(r chi.Router) {
	r.Get("/checkout", h.ShowCheckout)
	r.Post("/checkout", h.SubmitCheckout)
	r.Get("/checkout/attendees", h.AttendeeFields)
	r.Put("/cart/lines", h.ReplaceCartLines)
	r.Get("/orders/{id}/confirmation", h.Confirmation)
}

// AdminRoutes registers the administrator routes
func (h *CheckoutHandler) AdminRoutes(r chi.Router) {
	r.Get("/orders/{id}/attendees", h.OrderAttendees)
}

type checkoutPage struct {
	BillingName  string
	BillingEmail string
	Notices      []string
	Section      *services.AttendeeSection
}

// ShowCheckout renders the checkout form
func (h *CheckoutHandler) ShowCheckout(w http.ResponseWriter, r *http.Request) {
	section, err := h.checkout.AttendeeSection(r.Context(), middleware.GetCartID(r.Context()), nil)
	if err != nil {
		h.serverError(w, r, "Failed to load cart", err)
		return
	}

	h.render(w, r, http.StatusOK, "checkout", checkoutPage{Section: section})
}

// AttendeeFields renders only the attendee section of the session cart
func (h *CheckoutHandler) AttendeeFields(w http.ResponseWriter, r *http.Request) {
	section, err := h.checkout.AttendeeSection(r.Context(), middleware.GetCartID(r.Context()), nil)
	if err != nil {
		h.serverError(w, r, "Failed to load cart", err)
		return
	}

	h.render(w, r, http.StatusOK, "attendee_section", section)
}

// SubmitCheckout validates the checkout form and places the order. Invalid
// submissions are answered with 422 and the form is shown again with one
// notice per problem.
func (h *CheckoutHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	cartID := middleware.GetCartID(r.Context())
	req := &services.CheckoutRequest{
		CartID:       cartID,
		BillingEmail: r.PostForm.Get("billing_email"),
		BillingName:  r.PostForm.Get("billing_name"),
		Values:       services.ParseSubmittedValues(r.PostForm),
	}

	var notices services.NoticeList
	result, err := h.checkout.SubmitCheckout(r.Context(), req, &notices)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			http.Error(w, "Your cart is empty", http.StatusBadRequest)
			return
		}
		h.serverError(w, r, "Failed to place order", err)
		return
	}

	if !result.Accepted() {
		section, err := h.checkout.AttendeeSection(r.Context(), cartID, req.Values)
		if err != nil {
			h.serverError(w, r, "Failed to load cart", err)
			return
		}
		h.render(w, r, http.StatusUnprocessableEntity, "checkout", checkoutPage{
			BillingName:  req.BillingName,
			BillingEmail: req.BillingEmail,
			Notices:      notices,
			Section:      section,
		})
		return
	}

	if err := h.carts.ClearCart(r.Context(), cartID); err != nil {
		log.Printf("[%s] Failed to clear cart %s after order %d: %v", middleware.GetRequestID(r.Context()), cartID, result.Order.ID, err)
	}

	http.Redirect(w, r, fmt.Sprintf("/orders/%d/confirmation", result.Order.ID), http.StatusSeeOther)
}

// Confirmation renders the order received page
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		h.serverError(w, r, "Failed to load order", err)
		return
	}

	h.render(w, r, http.StatusOK, "confirmation", order)
}

type cartLinesRequest struct {
	Lines []models.CartLine `json:"lines"`
}

type cartLinesResponse struct {
	CartID      string `json:"cart_id"`
	Lines       int    `json:"lines"`
	TicketCount int    `json:"ticket_count"`
}

// ReplaceCartLines stores the posted lines as the session cart
func (h *CheckoutHandler) ReplaceCartLines(w http.ResponseWriter, r *http.Request) {
	var body cartLinesRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		middleware.WriteError(w, r, http.StatusBadRequest, "Invalid cart payload", err.Error())
		return
	}

	var problems []string
	for i, line := range body.Lines {
		if line.Quantity < 0 {
			problems = append(problems, fmt.Sprintf("line %d: quantity must not be negative", i+1))
		}
		if line.IsRegistrationTicket() && strings.TrimSpace(line.ParentProductTitle) == "" {
			problems = append(problems, fmt.Sprintf("line %d: registration tickets need a product title", i+1))
		}
	}
	if len(problems) > 0 {
		middleware.WriteError(w, r, http.StatusUnprocessableEntity, "Invalid cart lines", problems...)
		return
	}

	cart := &models.Cart{ID: middleware.GetCartID(r.Context()), Lines: body.Lines}
	if err := h.carts.SaveCart(r.Context(), cart); err != nil {
		h.serverError(w, r, "Failed to save cart", err)
		return
	}

	writeJSON(w, http.StatusOK, cartLinesResponse{
		CartID:      cart.ID,
		Lines:       len(cart.Lines),
		TicketCount: cart.TicketCount(),
	})
}

type orderAttendeesPage struct {
	Order  *models.Order
	Groups []services.AttendeeGroupView
}

type attendeeGroupJSON struct {
	Heading   string                `json:"heading"`
	Title     string                `json:"title"`
	DateLabel string                `json:"date_label,omitempty"`
	Malformed bool                  `json:"malformed"`
	Attendees []models.AttendeePair `json:"attendees"`
}

// OrderAttendees shows the attendees stored with an order, per line item
func (h *CheckoutHandler) OrderAttendees(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			middleware.WriteError(w, r, http.StatusNotFound, "Order not found")
			return
		}
		h.serverError(w, r, "Failed to load order", err)
		return
	}

	groups, err := h.checkout.AttendeesForOrder(orderID)
	if err != nil {
		h.serverError(w, r, "Failed to load attendees", err)
		return
	}

	if middleware.WantsJSON(r) {
		out := make([]attendeeGroupJSON, 0, len(groups))
		for _, g := range groups {
			attendees := g.Attendees
			if attendees == nil {
				attendees = []models.AttendeePair{}
			}
			out = append(out, attendeeGroupJSON{
				Heading:   g.Heading(),
				Title:     g.Title,
				DateLabel: g.DateLabel,
				Malformed: g.Malformed,
				Attendees: attendees,
			})
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"order_number": order.OrderNumber,
			"groups":       out,
		})
		return
	}

	h.render(w, r, http.StatusOK, "admin_attendees", orderAttendeesPage{Order: order, Groups: groups})
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || orderID <= 0 {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return 0, false
	}
	return orderID, true
}

func (h *CheckoutHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf strings.Builder
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.serverError(w, r, "Failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(buf.String()))
}

func (h *CheckoutHandler) serverError(w http.ResponseWriter, r *http.Request, message string, err error) {
	log.Printf("[%s] %s: %v", middleware.GetRequestID(r.Context()), message, err)
	middleware.WriteError(w, r, http.StatusInternalServerError, message)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
