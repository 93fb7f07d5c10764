package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Page
	message.SetString(lang, "page.title", "Settings - Termii SMS Notifications")
	message.SetString(lang, "page.loading", "Loading settings...")
	message.SetString(lang, "banner.dismiss", "Dismiss")
	message.SetString(lang, "banner.saved", "Templates saved successfully!")

	// Provider status
	message.SetString(lang, "provider.heading", "Termii Configuration")
	message.SetString(lang, "provider.configured", "Termii is configured ✓")
	message.SetString(lang, "provider.sender_id", "Sender ID: %s")
	message.SetString(lang, "provider.configured_note", "Termii API credentials are configured in your server's .env file.")
	message.SetString(lang, "provider.not_configured", "Termii not configured")
	message.SetString(lang, "provider.setup", "Please add TERMII_API_KEY and TERMII_SENDER_ID to your server's .env file.")

	// Templates
	message.SetString(lang, "templates.heading", "SMS Templates")
	message.SetString(lang, "templates.intro", "Customize the SMS messages sent to customers. Templates are saved per-shop and persist across server restarts.")
	message.SetString(lang, "templates.order_confirmation", "Order Confirmation Template")
	message.SetString(lang, "templates.order_confirmation_help", "Available variables: {{customer_name}}, {{order_number}}, {{total_price}}")
	message.SetString(lang, "templates.fulfillment", "Fulfillment Template")
	message.SetString(lang, "templates.fulfillment_help", "Available variables: {{customer_name}}, {{order_number}}")
	message.SetString(lang, "templates.save", "Save Templates")
	message.SetString(lang, "templates.saving", "Saving...")
}
