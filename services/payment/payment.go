package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"consultly/config"
	"consultly/models"
	"consultly/utils"
)

// Service creates payment intents for bookings. Payment never gates a status
// transition; an unpaid pending booking is reaped by the sweeper instead.
type Service interface {
	CreateIntent(booking models.Booking) (clientSecret string, err error)
}

type stripeService struct{}

func NewStripeService() Service {
	stripe.Key = config.AppConfig.StripeSecretKey
	return &stripeService{}
}

func (s *stripeService) CreateIntent(booking models.Booking) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(booking.Price * 100)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("booking_id", booking.ID)
	params.AddMetadata("consultant_id", booking.ConsultantID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	utils.GetLogger().Info("payment intent created",
		zap.String("bookingId", booking.ID),
		zap.String("intentId", intent.ID))
	return intent.ClientSecret, nil
}
