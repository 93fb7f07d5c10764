package settings

import "fmt"

// Settings mirrors the settings the backend keeps for a shop.
type Settings struct {
	// TermiiConfigured is nil if the backend omitted the field.
	TermiiConfigured *bool `json:"termii_configured"`

	TermiiSenderID            string `json:"termii_sender_id"`
	OrderConfirmationTemplate string `json:"order_confirmation_template"`
	FulfillmentTemplate       string `json:"fulfillment_template"`
}

// Draft is the editable part of the settings, sent on save.
type Draft struct {
	OrderConfirmationTemplate string `json:"order_confirmation_template"`
	FulfillmentTemplate       string `json:"fulfillment_template"`
}

// APIError is returned for non-2xx responses of the settings endpoint.
type APIError struct {
	StatusCode int

	// Detail is the detail message of the response body, empty if the
	// body did not carry one.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("settings endpoint returned %d", e.StatusCode)
	}

	return fmt.Sprintf("settings endpoint returned %d: %s", e.StatusCode, e.Detail)
}

type errorResponse struct {
	Detail *string `json:"detail"`
}
