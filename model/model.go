package model

// Result is the envelope returned to every caller regardless of operation.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type AuthorizeRequest struct {
	FullName string `json:"fullName"`
}

// ModificationRequest addresses an earlier authorization for capture or refund.
type ModificationRequest struct {
	PSPReference string `json:"pspReference"`
	Reference    string `json:"reference"`
}

type RecurringRequest struct {
	RecurringDetailReference string `json:"recurringDetailReference"`
	ShopperReference         string `json:"shopperReference"`
	Reference                string `json:"reference"`
}

// Amount is a monetary value in minor units.
type Amount struct {
	Currency string `json:"currency"`
	Value    int    `json:"value"`
}

type PaymentMethod struct {
	Type                     string `json:"type"`
	Number                   string `json:"number,omitempty"`
	ExpiryMonth              string `json:"expiryMonth,omitempty"`
	ExpiryYear               string `json:"expiryYear,omitempty"`
	CVC                      string `json:"cvc,omitempty"`
	HolderName               string `json:"holderName,omitempty"`
	RecurringDetailReference string `json:"recurringDetailReference,omitempty"`
}

// PaymentPayload is the outbound body for /payments calls. CaptureDelayHours
// is a pointer so an explicit zero (manual capture) survives serialization.
type PaymentPayload struct {
	Amount                   Amount         `json:"amount"`
	Reference                string         `json:"reference"`
	PaymentMethod            *PaymentMethod `json:"paymentMethod,omitempty"`
	MerchantAccount          string         `json:"merchantAccount"`
	CaptureDelayHours        *int           `json:"captureDelayHours,omitempty"`
	StorePaymentMethod       bool           `json:"storePaymentMethod,omitempty"`
	ShopperReference         string         `json:"shopperReference,omitempty"`
	ShopperInteraction       string         `json:"shopperInteraction,omitempty"`
	RecurringProcessingModel string         `json:"recurringProcessingModel,omitempty"`
}

// ModificationPayload is the outbound body for captures and refunds.
type ModificationPayload struct {
	Amount          Amount `json:"amount"`
	Reference       string `json:"reference"`
	MerchantAccount string `json:"merchantAccount"`
}
