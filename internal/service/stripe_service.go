package service

import (
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/refund"
)

type StripeService struct{}

func NewStripeService() *StripeService {
	return &StripeService{}
}

const defaultCallbackURL = "http://localhost:3000/pagos/callback?session_id={CHECKOUT_SESSION_ID}"

// CreateCheckoutSession crea una sesión de Stripe Checkout y devuelve su URL
// y su id. El dashboard redirige al usuario a la URL y vuelve por el callback.
func (s *StripeService) CreateCheckoutSession(amount int64, currency, description, customerEmail, clientReferenceID string) (string, string, error) {
	successURL := os.Getenv("CHECKOUT_SUCCESS_URL")
	if successURL == "" {
		successURL = defaultCallbackURL
	}
	cancelURL := os.Getenv("CHECKOUT_CANCEL_URL")
	if cancelURL == "" {
		cancelURL = defaultCallbackURL
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		CustomerEmail:     stripe.String(customerEmail),
		ClientReferenceID: stripe.String(clientReferenceID),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", "", err
	}
	return sess.URL, sess.ID, nil
}

// SessionPaymentStatus devuelve el payment_status crudo de la sesión
// ("paid", "unpaid", "no_payment_required").
func (s *StripeService) SessionPaymentStatus(sessionID string) (string, error) {
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return "", err
	}
	return string(sess.PaymentStatus), nil
}

// SessionIDByPaymentIntent busca la sesión de checkout que originó un
// PaymentIntent. Lo usa el webhook de reembolsos, que solo recibe el intent.
func (s *StripeService) SessionIDByPaymentIntent(paymentIntentID string) (string, error) {
	params := &stripe.CheckoutSessionListParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Limit = stripe.Int64(1)
	iter := session.List(params)
	for iter.Next() {
		return iter.CheckoutSession().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no session found for PaymentIntent %s", paymentIntentID)
}

func (s *StripeService) RefundPaymentBySessionID(sessionID string) error {
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return err
	}
	if sess.PaymentIntent == nil || sess.PaymentIntent.ID == "" {
		return fmt.Errorf("No PaymentIntent found for session %s", sessionID)
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(sess.PaymentIntent.ID),
	}
	_, err = refund.New(params)
	return err
}
