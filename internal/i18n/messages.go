// Package i18n holds the Dutch/English catalog for every message the
// storefront shows a shopper. The storefront defaults to Dutch; unknown
// locales fall back to the default, unknown keys to the key itself.
package i18n

import "fmt"

const (
	LocaleDutch   = "nl"
	LocaleEnglish = "en"
)

// Message keys.
const (
	MsgAddedToCart      = "added_to_cart"
	MsgStockLimit       = "stock_limit"
	MsgCartEmpty        = "cart_empty"
	MsgSubmitInFlight   = "submit_in_flight"
	MsgRateLimited      = "rate_limited"
	MsgOrderFailed      = "order_failed"
	MsgNameTooShort     = "name_too_short"
	MsgEmailInvalid     = "email_invalid"
	MsgPhoneTooShort    = "phone_too_short"
	MsgStreetTooShort   = "street_too_short"
	MsgHouseNumberEmpty = "house_number_empty"
	MsgPostalCodeShort  = "postal_code_short"
	MsgCityTooShort     = "city_too_short"
)

var catalog = map[string]map[string]string{
	LocaleDutch: {
		MsgAddedToCart:      "%s is toegevoegd aan je winkelmand",
		MsgStockLimit:       "Er zijn niet meer exemplaren van %s op voorraad",
		MsgCartEmpty:        "Je winkelmand is leeg",
		MsgSubmitInFlight:   "Je bestelling wordt al verwerkt, een moment geduld",
		MsgRateLimited:      "Je hebt te veel bestellingen geplaatst. Probeer het over %d minuten opnieuw",
		MsgOrderFailed:      "Er ging iets mis bij het plaatsen van je bestelling. Probeer het later opnieuw",
		MsgNameTooShort:     "Vul je naam in (minimaal 2 tekens)",
		MsgEmailInvalid:     "Vul een geldig e-mailadres in",
		MsgPhoneTooShort:    "Vul een geldig telefoonnummer in (minimaal 10 tekens)",
		MsgStreetTooShort:   "Vul je straatnaam in",
		MsgHouseNumberEmpty: "Vul je huisnummer in",
		MsgPostalCodeShort:  "Vul een geldige postcode in",
		MsgCityTooShort:     "Vul je woonplaats in",
	},
	LocaleEnglish: {
		MsgAddedToCart:      "%s has been added to your cart",
		MsgStockLimit:       "No more units of %s are in stock",
		MsgCartEmpty:        "Your cart is empty",
		MsgSubmitInFlight:   "Your order is already being processed, one moment",
		MsgRateLimited:      "You have placed too many orders. Please try again in %d minutes",
		MsgOrderFailed:      "Something went wrong while placing your order. Please try again later",
		MsgNameTooShort:     "Please enter your name (at least 2 characters)",
		MsgEmailInvalid:     "Please enter a valid email address",
		MsgPhoneTooShort:    "Please enter a valid phone number (at least 10 characters)",
		MsgStreetTooShort:   "Please enter your street name",
		MsgHouseNumberEmpty: "Please enter your house number",
		MsgPostalCodeShort:  "Please enter a valid postal code",
		MsgCityTooShort:     "Please enter your city",
	},
}

// Normalize maps an arbitrary locale string to a supported locale.
func Normalize(locale string) string {
	if _, ok := catalog[locale]; ok {
		return locale
	}
	return LocaleDutch
}

// T looks up a message for the given locale.
func T(locale, key string) string {
	msgs, ok := catalog[locale]
	if !ok {
		msgs = catalog[LocaleDutch]
	}
	if msg, ok := msgs[key]; ok {
		return msg
	}
	return key
}

// Tf looks up a message and formats it with the given arguments.
func Tf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
