package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/illenko/adyen-checkout-demo/config"
	"github.com/illenko/adyen-checkout-demo/model"
)

const (
	currency        = "EUR"
	authorizeAmount = 10000
	modifyAmount    = 5000

	testCardNumber = "4111111111111111"
	testCardMonth  = "03"
	testCardYear   = "2030"
	testCardCVC    = "737"

	paymentsPath = "/v71/payments"
)

// PaymentService forwards payment operations to the Adyen Checkout API:
// one synchronous POST per inbound call, mapped into a Result envelope.
type PaymentService struct {
	cfg         *config.Config
	restyClient *resty.Client
	wire        *WireLogger
	now         func() time.Time
}

func NewPaymentService(cfg *config.Config, restyClient *resty.Client) *PaymentService {
	return &PaymentService{
		cfg:         cfg,
		restyClient: restyClient,
		wire:        NewWireLogger(cfg.APIKey),
		now:         time.Now,
	}
}

// Authorize places a fixed-amount authorization with the demo test card and
// asks Adyen to store the payment method for later recurring charges. On
// success the generated reference and shopper reference are added to the
// upstream response so the caller can replay them in follow-up calls.
func (s *PaymentService) Authorize(ctx context.Context, fullName string) model.Result {
	timestamp := s.now().UnixMilli()
	reference := fmt.Sprintf("%s_%d", strings.ReplaceAll(fullName, " ", "_"), timestamp)
	shopperReference := fmt.Sprintf("shopper_%d", timestamp)

	manualCapture := 0
	payload := model.PaymentPayload{
		Amount:    model.Amount{Currency: currency, Value: authorizeAmount},
		Reference: reference,
		PaymentMethod: &model.PaymentMethod{
			Type:        "scheme",
			Number:      testCardNumber,
			ExpiryMonth: testCardMonth,
			ExpiryYear:  testCardYear,
			CVC:         testCardCVC,
			HolderName:  fullName,
		},
		MerchantAccount:          s.cfg.MerchantAccount,
		CaptureDelayHours:        &manualCapture,
		StorePaymentMethod:       true,
		ShopperReference:         shopperReference,
		ShopperInteraction:       "Ecommerce",
		RecurringProcessingModel: "CardOnFile",
	}

	result := s.forward(ctx, paymentsPath, payload)
	if result.Success {
		result.Data["reference"] = reference
		result.Data["shopperReference"] = shopperReference
	}
	return result
}

// Capture captures a previously authorized payment addressed by its PSP reference.
func (s *PaymentService) Capture(ctx context.Context, pspReference, reference string) model.Result {
	payload := model.ModificationPayload{
		Amount:          model.Amount{Currency: currency, Value: modifyAmount},
		Reference:       reference + "_capture",
		MerchantAccount: s.cfg.MerchantAccount,
	}
	return s.forward(ctx, fmt.Sprintf("%s/%s/captures", paymentsPath, pspReference), payload)
}

// Refund refunds a previously captured payment addressed by its PSP reference.
func (s *PaymentService) Refund(ctx context.Context, pspReference, reference string) model.Result {
	payload := model.ModificationPayload{
		Amount:          model.Amount{Currency: currency, Value: modifyAmount},
		Reference:       reference + "_refund",
		MerchantAccount: s.cfg.MerchantAccount,
	}
	return s.forward(ctx, fmt.Sprintf("%s/%s/refunds", paymentsPath, pspReference), payload)
}

// Recurring charges a stored payment method. The reference must be the exact
// reference established at authorization; Adyen matches the follow-up charge
// to the stored card through it.
func (s *PaymentService) Recurring(ctx context.Context, recurringDetailReference, shopperReference, reference string) model.Result {
	payload := model.PaymentPayload{
		Amount:    model.Amount{Currency: currency, Value: modifyAmount},
		Reference: reference,
		PaymentMethod: &model.PaymentMethod{
			Type:                     "scheme",
			RecurringDetailReference: recurringDetailReference,
		},
		MerchantAccount:          s.cfg.MerchantAccount,
		ShopperReference:         shopperReference,
		ShopperInteraction:       "ContAuth",
		RecurringProcessingModel: "Subscription",
	}
	return s.forward(ctx, paymentsPath, payload)
}

func (s *PaymentService) forward(ctx context.Context, path string, payload any) model.Result {
	url := s.cfg.BaseURL + path

	body, err := json.Marshal(payload)
	if err != nil {
		return model.Result{Error: fmt.Sprintf("encoding payload: %v", err)}
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"X-API-Key":    s.cfg.APIKey,
	}
	s.wire.Request(ctx, http.MethodPost, url, headers, body)

	resp, err := s.restyClient.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		Post(url)
	if err != nil {
		s.wire.Error(ctx, err)
		return model.Result{Error: err.Error()}
	}

	s.wire.Response(ctx, resp.StatusCode(), resp.Header(), resp.Body())

	var data map[string]any
	decodeErr := json.Unmarshal(resp.Body(), &data)

	if !resp.IsSuccess() {
		message := "Request failed"
		if decodeErr == nil {
			if m, ok := data["message"].(string); ok && m != "" {
				message = m
			}
		}
		return model.Result{Error: fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), message)}
	}

	if decodeErr != nil {
		s.wire.Error(ctx, decodeErr)
		return model.Result{Error: fmt.Sprintf("invalid upstream response: %v", decodeErr)}
	}
	if data == nil {
		data = map[string]any{}
	}

	return model.Result{Success: true, Data: data}
}
