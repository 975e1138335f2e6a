package models

// PaymentIntent is the provider-agnostic view of a payment intent.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
}

// CheckoutSession is a hosted payment page session.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Refund is the result of a processed refund.
type Refund struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// PaymentSetup is attached to the create-booking response. When payment
// setup fails the booking is still persisted and Error carries a marker
// instead of failing the whole creation.
type PaymentSetup struct {
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	ClientSecret    string `json:"clientSecret,omitempty"`
	Error           string `json:"error,omitempty"`
}
