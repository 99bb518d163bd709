// Package payment wraps the Razorpay gateway behind a small interface so
// services and tests never touch the SDK directly.
package payment

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

var ErrOrderCreation = errors.New("failed to create payment order")

// Order is the gateway's view of a created order. The client completes the
// charge against OrderID through the embedded checkout widget.
type Order struct {
	OrderID     string
	AmountPaise int64
	Currency    string
	Receipt     string
}

// Gateway abstracts order creation and signature verification.
type Gateway interface {
	// CreateOrder registers an order with the gateway. Amount is in paise.
	CreateOrder(amountPaise int64, receipt string) (*Order, error)

	// VerifySignature checks the HMAC the checkout widget returned for an
	// (orderID, paymentID) pair.
	VerifySignature(orderID, paymentID, signature string) bool
}

// razorpayGateway implements Gateway against the Razorpay API.
type razorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

// NewRazorpayGateway creates a Razorpay-backed Gateway.
func NewRazorpayGateway(keyID, keySecret string) Gateway {
	return &razorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

// CreateOrder registers an order with Razorpay. Currency is fixed to INR.
func (g *razorpayGateway) CreateOrder(amountPaise int64, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, ErrOrderCreation
	}

	return &Order{
		OrderID:     orderID,
		AmountPaise: amountPaise,
		Currency:    "INR",
		Receipt:     receipt,
	}, nil
}

// VerifySignature validates the checkout signature for an order/payment pair.
func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.keySecret)
}
