package form

import "github.com/termii-notify/smsadmin/internal/settings"

// Phase is the state of a single load or save operation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInFlight:
		return "in_flight"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	DefaultOrderConfirmationTemplate = "Hi {{customer_name}}, your order #{{order_number}} has been confirmed. Total: {{total_price}}. Thank you!"
	DefaultFulfillmentTemplate       = "Hi {{customer_name}}, your order #{{order_number}} has been shipped and will arrive soon!"
)

// User facing error messages.
const (
	MsgNoShop       = "Unable to determine shop domain. Please ensure you are accessing this from within Shopify Admin."
	MsgLoadRejected = "Failed to load settings"
	MsgLoadFailed   = "Error loading settings"
	MsgSaveRejected = "Failed to save settings"
	MsgSaveFailed   = "Error saving settings"
)

// DefaultDraft returns the templates a form starts with.
func DefaultDraft() settings.Draft {
	return settings.Draft{
		OrderConfirmationTemplate: DefaultOrderConfirmationTemplate,
		FulfillmentTemplate:       DefaultFulfillmentTemplate,
	}
}

// View is a point in time copy of the form state.
type View struct {
	LoadPhase Phase
	SavePhase Phase

	// Configured reports whether the sms provider is configured.
	Configured bool
	SenderID   string

	Draft settings.Draft

	// Error is the message of the last failed operation, empty if none.
	Error string

	// Success is set after a save until it is dismissed or expires.
	Success bool
}

func (v View) Loading() bool {
	return v.LoadPhase == PhaseInFlight
}

func (v View) Saving() bool {
	return v.SavePhase == PhaseInFlight
}
