package services

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// ErrGatewayUnconfigured means the payment gateway credentials are not
// set; order creation is unavailable until they are.
var ErrGatewayUnconfigured = errors.New("payment gateway not configured")

// GatewayOrder is a remote order as created at the gateway. Amount is
// in minor currency units (paise), the unit Razorpay works in.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway creates remote payment orders. Handlers depend on this
// interface so tests can stub the external call.
type Gateway interface {
	// Enabled reports whether credentials are configured.
	Enabled() bool
	// KeyID is the public key the frontend needs to open checkout.
	KeyID() string
	// CreateOrder registers an order with the gateway. amount is in
	// major currency units; receipt is a caller-supplied reference.
	CreateOrder(amount float64, currency, receipt string) (GatewayOrder, error)
}

// RazorpayGateway implements Gateway against the Razorpay Orders API.
type RazorpayGateway struct {
	keyID  string
	client *razorpay.Client
}

// NewRazorpayGateway builds a gateway from credentials. Either value
// being empty yields a disabled gateway rather than an error, so the
// rest of the API stays usable without payment config.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	g := &RazorpayGateway{keyID: keyID}
	if keyID != "" && keySecret != "" {
		g.client = razorpay.NewClient(keyID, keySecret)
	}
	return g
}

func (g *RazorpayGateway) Enabled() bool {
	return g.client != nil
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

func (g *RazorpayGateway) CreateOrder(amount float64, currency, receipt string) (GatewayOrder, error) {
	if g.client == nil {
		return GatewayOrder{}, ErrGatewayUnconfigured
	}

	data := map[string]interface{}{
		"amount":   int64(amount * 100), // rupees -> paise
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("razorpay order create: %w", err)
	}

	order := GatewayOrder{Currency: currency}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	if amt, ok := body["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	if cur, ok := body["currency"].(string); ok {
		order.Currency = cur
	}
	if order.ID == "" {
		return GatewayOrder{}, fmt.Errorf("razorpay order create: response missing order id")
	}
	return order, nil
}
