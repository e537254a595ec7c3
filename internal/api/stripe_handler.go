package api

import (
	"ecomove/internal/metrics"
	"ecomove/internal/service"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookHandler procesa los eventos que empuja Stripe. Es el camino
// alternativo al callback del dashboard: si el usuario cierra la pestaña
// después de pagar, el webhook resuelve la sesión igual.
type StripeWebhookHandler struct {
	StripeSecret   string
	paymentService *service.PaymentService
	stripeService  *service.StripeService
}

func NewStripeWebhookHandler(stripeSecret string, paymentService *service.PaymentService, stripeService *service.StripeService) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		StripeSecret:   stripeSecret,
		paymentService: paymentService,
		stripeService:  stripeService,
	}
}

func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, h.StripeSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("Error parsing checkout.session: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if sess.ID == "" {
			log.Printf("No session ID in %s", event.Type)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		resp, err := h.paymentService.ResolveSession(sess.ID, string(sess.PaymentStatus))
		if err != nil {
			log.Printf("Error resolving session %s: %v", sess.ID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		metrics.PagosConfirmados.WithLabelValues(resp.Status).Inc()

	case "charge.refunded":
		var charge stripe.Charge
		json.Unmarshal(event.Data.Raw, &charge)
		if charge.PaymentIntent != nil && charge.PaymentIntent.ID != "" {
			sessionID, err := h.stripeService.SessionIDByPaymentIntent(charge.PaymentIntent.ID)
			if err != nil {
				log.Printf("No session found for PaymentIntent %s: %v", charge.PaymentIntent.ID, err)
				return
			}
			if err := h.paymentService.MarkRefunded(sessionID); err != nil {
				log.Printf("DB error: %v", err)
				return
			}
		}
	default:
		log.Printf("Unhandled event type: %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}
