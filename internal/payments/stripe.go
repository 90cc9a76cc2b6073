package payments

import (
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	checksession "github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// Client creates hosted Stripe checkout pages for billing entries. When no
// secret key is configured every call fails with a clear error and the
// handler surfaces 503.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &Client{cfg: cfg}
}

// Configured reports whether a secret key is set.
func (c *Client) Configured() bool {
	return c.cfg.SecretKey != ""
}

// PaymentLink creates a one-time checkout session for a billing entry and
// returns its hosted URL.
func (c *Client) PaymentLink(entry *model.BillingEntry, clientEmail string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("stripe client not configured")
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(entry.Currency),
					UnitAmount: stripe.Int64(entry.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(entry.Title),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.cfg.SuccessURL),
		CancelURL:  stripe.String(c.cfg.CancelURL),
	}
	if clientEmail != "" {
		params.CustomerEmail = stripe.String(clientEmail)
	}

	sess, err := checksession.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}
