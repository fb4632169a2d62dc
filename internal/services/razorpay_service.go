package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math"

	"edustore-service/config"
	"edustore-service/pkg/common"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// GatewayOrder is the client-facing payment session handle returned by
// checkout: the order id doubles as our pending-transaction key.
type GatewayOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
}

// OrderGateway is the one payment-gateway contract in this deployment.
// Checkout and settlement depend on it, never on Razorpay directly.
type OrderGateway interface {
	CreateOrder(amount float64, currency, receipt string) (*GatewayOrder, error)
	VerifySignature(payload []byte, signature string) bool
}

// RazorpayService implements OrderGateway against the Razorpay Orders API.
type RazorpayService struct {
	KeyID         string
	SecretKey     string
	WebhookSecret string
}

func NewRazorpayService(cfg *config.Config) *RazorpayService {
	return &RazorpayService{
		KeyID:         cfg.RazorpayKeyID,
		SecretKey:     cfg.RazorpaySecretKey,
		WebhookSecret: cfg.RazorpayWebhookSecret,
	}
}

// CreateOrder opens a payable order. Razorpay takes amounts in paise; the
// catalog prices in rupees, so the conversion happens here and nowhere else.
func (s *RazorpayService) CreateOrder(amount float64, currency, receipt string) (*GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": currency,
		"receipt":  receipt,
	}

	auth := base64.StdEncoding.EncodeToString([]byte(s.KeyID + ":" + s.SecretKey))
	headers := map[string]string{
		"Authorization": "Basic " + auth,
	}

	resp, err := common.Post(razorpayBaseURL+"/orders", payload, headers)
	if err != nil {
		if httpErr, ok := err.(*common.HTTPError); ok {
			return nil, &GatewayError{StatusCode: httpErr.StatusCode, Body: httpErr.Body}
		}
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	orderID, _ := resp["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}

	return &GatewayOrder{
		OrderID:  orderID,
		Amount:   amount,
		Currency: currency,
		KeyID:    s.KeyID,
	}, nil
}

// VerifySignature checks the X-Razorpay-Signature header: hex HMAC-SHA256
// over the raw body using the webhook secret, compared in constant time.
func (s *RazorpayService) VerifySignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.WebhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
