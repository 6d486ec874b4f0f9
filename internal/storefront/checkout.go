package storefront

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/services"
	"github.com/adyen/shopsuite/internal/site"
)

type checkoutPage struct {
	Lines     []models.OrderLine
	Total     int64
	Countries []string
	Shipping  models.ShippingAddress
	Billing   models.ShippingAddress
	Errors    []string
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	page := checkoutPage{Countries: site.Countries, Shipping: models.ShippingAddress{Country: site.Countries[0]}}
	s.sessions.update(func() {
		page.Lines = append(page.Lines, sess.Cart...)
		page.Total = sess.CartTotal()
		page.Shipping.Email = sess.Email
	})
	if len(page.Lines) == 0 {
		http.Redirect(w, r, site.Cart, http.StatusSeeOther)
		return
	}
	page.Billing = page.Shipping
	s.render(w, r, sess, http.StatusOK, "checkout.html", "Checkout", page)
}

// addressFieldset feeds the address template: inputs are named
// Prefix_field
type addressFieldset struct {
	Prefix    string
	Address   models.ShippingAddress
	Countries []string
}

// address reads one address fieldset; its inputs are named prefix_field
func address(r *http.Request, prefix string) models.ShippingAddress {
	v := func(field string) string {
		return strings.TrimSpace(r.PostFormValue(prefix + "_" + field))
	}
	return models.ShippingAddress{
		FirstName: v("firstName"),
		LastName:  v("lastName"),
		Email:     v("email"),
		Phone:     v("phone"),
		Address:   v("address"),
		City:      v("city"),
		Postcode:  v("postcode"),
		Country:   v("country"),
	}
}

// handlePlaceOrder validates the posted forms and places the order. A
// declined card leads to the failure page, like a refused payment would.
func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	page := checkoutPage{
		Countries: site.Countries,
		Shipping:  address(r, "shipping"),
		Billing:   address(r, "billing"),
	}
	s.sessions.update(func() {
		page.Lines = append(page.Lines, sess.Cart...)
		page.Total = sess.CartTotal()
	})
	if len(page.Lines) == 0 {
		http.Redirect(w, r, site.Cart, http.StatusSeeOther)
		return
	}

	for _, field := range models.MissingAddressFields(page.Shipping) {
		page.Errors = append(page.Errors, "Shipping "+field+" is required")
	}
	if len(page.Errors) > 0 {
		s.render(w, r, sess, http.StatusUnprocessableEntity, "checkout.html", "Checkout", page)
		return
	}

	order, err := s.orders.PlaceOrder(r.Context(), page.Lines, page.Shipping, r.PostFormValue("payment_cardNumber"))
	switch {
	case errors.Is(err, services.ErrCardDeclined):
		s.log.Info("card declined", zap.String("reference", order.Reference))
		redirectToFailure(w, r, order.Reference, "Refused")
		return
	case errors.Is(err, services.ErrInvalidCard):
		page.Errors = append(page.Errors, "Please enter a valid card number")
		s.render(w, r, sess, http.StatusUnprocessableEntity, "checkout.html", "Checkout", page)
		return
	case err != nil:
		s.log.Error("failed to place order", zap.Error(err))
		redirectToFailure(w, r, "", "Error")
		return
	}

	s.sessions.update(func() {
		sess.Cart = nil
	})
	s.log.Info("order placed",
		zap.String("reference", order.Reference),
		zap.Int64("total", order.Total()),
	)
	http.Redirect(w, r, site.Confirmation+"?"+url.Values{"reference": {order.Reference}}.Encode(), http.StatusSeeOther)
}

func redirectToFailure(w http.ResponseWriter, r *http.Request, reference, reason string) {
	q := url.Values{"reason": {reason}}
	if reference != "" {
		q.Set("reference", reference)
	}
	http.Redirect(w, r, "/checkout/failed?"+q.Encode(), http.StatusSeeOther)
}

type confirmationPage struct {
	Order *models.Order
}

func (s *Server) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		http.Error(w, "Missing order reference", http.StatusBadRequest)
		return
	}

	order, err := s.orders.GetOrderByReference(r.Context(), reference)
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "get order", err)
		return
	}

	if !order.IsPlaced() {
		redirectToFailure(w, r, order.Reference, "Cancelled")
		return
	}
	s.render(w, r, sess, http.StatusOK, "confirmation.html", "Order confirmed", confirmationPage{Order: order})
}

type failurePage struct {
	OrderReference string
	Reason         string
	Message        string
}

func (s *Server) handleFailure(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	reason := r.URL.Query().Get("reason")

	s.render(w, r, sess, http.StatusOK, "failure.html", "Order failed", failurePage{
		OrderReference: r.URL.Query().Get("reference"),
		Reason:         reason,
		Message:        failureMessage(reason),
	})
}

// failureMessage returns a user-friendly message based on the failure reason
func failureMessage(reason string) string {
	switch reason {
	case "Refused":
		return "Your payment was declined. Please check your payment details and try again."
	case "Cancelled":
		return "The order was cancelled. You can try again when you're ready."
	case "Error":
		return "An error occurred while processing your order. Please try again."
	default:
		return "We couldn't process your order. Please try again or contact support."
	}
}
