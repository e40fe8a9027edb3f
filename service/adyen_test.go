package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"

	"github.com/illenko/adyen-checkout-demo/config"
)

const testAPIKey = "test_api_key_1234567890abcdef"

type capturedRequest struct {
	path        string
	apiKey      string
	contentType string
	body        map[string]any
}

func newTestService(baseURL string) *PaymentService {
	cfg := &config.Config{
		APIKey:          testAPIKey,
		MerchantAccount: "DemoMerchant",
		BaseURL:         baseURL,
	}
	s := NewPaymentService(cfg, resty.New())
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func newUpstream(t *testing.T, got *capturedRequest, status int, responseBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.apiKey = r.Header.Get("X-API-Key")
		got.contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(responseBody))
	}))
}

func TestAuthorizeBuildsPayload(t *testing.T) {
	var got capturedRequest
	upstream := newUpstream(t, &got, http.StatusOK, `{"resultCode":"Authorised","pspReference":"QFQTPCQ8HXSKGK82"}`)
	defer upstream.Close()

	s := newTestService(upstream.URL)
	result := s.Authorize(context.Background(), "John Doe")

	require.True(t, result.Success)
	require.Empty(t, result.Error)
	require.Equal(t, "/v71/payments", got.path)
	require.Equal(t, testAPIKey, got.apiKey)
	require.Equal(t, "application/json", got.contentType)

	require.Equal(t, "John_Doe_1700000000000", got.body["reference"])
	require.Equal(t, "shopper_1700000000000", got.body["shopperReference"])
	require.Equal(t, "DemoMerchant", got.body["merchantAccount"])

	amount := got.body["amount"].(map[string]any)
	require.Equal(t, "EUR", amount["currency"])
	require.EqualValues(t, 10000, amount["value"])

	method := got.body["paymentMethod"].(map[string]any)
	require.Equal(t, "scheme", method["type"])
	require.Equal(t, "4111111111111111", method["number"])
	require.Equal(t, "03", method["expiryMonth"])
	require.Equal(t, "2030", method["expiryYear"])
	require.Equal(t, "737", method["cvc"])
	require.Equal(t, "John Doe", method["holderName"])

	require.Contains(t, got.body, "captureDelayHours")
	require.EqualValues(t, 0, got.body["captureDelayHours"])
	require.Equal(t, true, got.body["storePaymentMethod"])
	require.Equal(t, "Ecommerce", got.body["shopperInteraction"])
	require.Equal(t, "CardOnFile", got.body["recurringProcessingModel"])

	require.Equal(t, "Authorised", result.Data["resultCode"])
	require.Equal(t, "QFQTPCQ8HXSKGK82", result.Data["pspReference"])
	require.Equal(t, "John_Doe_1700000000000", result.Data["reference"])
	require.Equal(t, "shopper_1700000000000", result.Data["shopperReference"])
}

func TestCaptureBuildsPayload(t *testing.T) {
	var got capturedRequest
	upstream := newUpstream(t, &got, http.StatusCreated, `{"status":"received"}`)
	defer upstream.Close()

	s := newTestService(upstream.URL)
	result := s.Capture(context.Background(), "PSP123", "John_Doe_1700000000000")

	require.True(t, result.Success)
	require.Equal(t, "/v71/payments/PSP123/captures", got.path)
	require.Equal(t, "John_Doe_1700000000000_capture", got.body["reference"])
	require.Equal(t, "DemoMerchant", got.body["merchantAccount"])

	amount := got.body["amount"].(map[string]any)
	require.Equal(t, "EUR", amount["currency"])
	require.EqualValues(t, 5000, amount["value"])
}

func TestRefundBuildsPayload(t *testing.T) {
	var got capturedRequest
	upstream := newUpstream(t, &got, http.StatusCreated, `{"status":"received"}`)
	defer upstream.Close()

	s := newTestService(upstream.URL)
	result := s.Refund(context.Background(), "PSP123", "John_Doe_1700000000000")

	require.True(t, result.Success)
	require.Equal(t, "/v71/payments/PSP123/refunds", got.path)
	require.Equal(t, "John_Doe_1700000000000_refund", got.body["reference"])

	amount := got.body["amount"].(map[string]any)
	require.EqualValues(t, 5000, amount["value"])
}

func TestRecurringReusesOriginalReference(t *testing.T) {
	var got capturedRequest
	upstream := newUpstream(t, &got, http.StatusOK, `{"resultCode":"Authorised"}`)
	defer upstream.Close()

	s := newTestService(upstream.URL)
	result := s.Recurring(context.Background(), "DETAIL42", "shopper_1700000000000", "John_Doe_1700000000000")

	require.True(t, result.Success)
	require.Equal(t, "/v71/payments", got.path)
	require.Equal(t, "John_Doe_1700000000000", got.body["reference"])
	require.Equal(t, "shopper_1700000000000", got.body["shopperReference"])
	require.Equal(t, "ContAuth", got.body["shopperInteraction"])
	require.Equal(t, "Subscription", got.body["recurringProcessingModel"])

	method := got.body["paymentMethod"].(map[string]any)
	require.Equal(t, "scheme", method["type"])
	require.Equal(t, "DETAIL42", method["recurringDetailReference"])
	require.NotContains(t, method, "number")
	require.NotContains(t, method, "cvc")
}

func TestForwardMapsUpstreamError(t *testing.T) {
	var got capturedRequest
	upstream := newUpstream(t, &got, http.StatusUnprocessableEntity, `{"status":422,"errorCode":"101","message":"Invalid card number"}`)
	defer upstream.Close()

	s := newTestService(upstream.URL)
	result := s.Capture(context.Background(), "PSP123", "ref")

	require.False(t, result.Success)
	require.Equal(t, "HTTP 422: Invalid card number", result.Error)
	require.Nil(t, result.Data)
}

func TestForwardMapsUpstreamErrorWithoutMessage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer upstream.Close()

	s := newTestService(upstream.URL)
	result := s.Capture(context.Background(), "PSP123", "ref")

	require.False(t, result.Success)
	require.Equal(t, "HTTP 500: Request failed", result.Error)
}

func TestForwardMapsTransportError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	s := newTestService(upstream.URL)
	result := s.Authorize(context.Background(), "John Doe")

	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)
	require.Nil(t, result.Data)
}

func TestForwardMapsMalformedSuccessBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer upstream.Close()

	s := newTestService(upstream.URL)
	result := s.Capture(context.Background(), "PSP123", "ref")

	require.False(t, result.Success)
	require.Contains(t, result.Error, "invalid upstream response")
}

func TestMaskAPIKey(t *testing.T) {
	key := "abcdefghijklmnopqrstuvwxyz0123"
	require.Len(t, key, 30)
	require.Equal(t, "abcdefghij...uvwxyz0123", MaskAPIKey(key))

	require.Equal(t, "***MASKED***", MaskAPIKey("short_key"))
	require.Equal(t, "***MASKED***", MaskAPIKey("exactly_20_chars_abc"))
	require.Equal(t, "***MASKED***", MaskAPIKey(""))
}
