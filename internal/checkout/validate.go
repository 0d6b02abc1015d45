package checkout

import (
	"regexp"
	"strings"

	"github.com/veldbloem/storefront/internal/i18n"
	"github.com/veldbloem/storefront/internal/models"
)

// emailPattern is a shape check, not a full RFC parser: something before
// an @, something after it, and a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks every required field independently and collects all
// failures into a field -> localized message map in one pass, so the form
// can highlight every problem at once. An empty map means the form is
// ready to submit. Field keys match the wire names of CheckoutForm.
func Validate(form models.CheckoutForm, locale string) map[string]string {
	errs := make(map[string]string)

	if len(strings.TrimSpace(form.Name)) < 2 {
		errs["name"] = i18n.T(locale, i18n.MsgNameTooShort)
	}
	if !emailPattern.MatchString(strings.TrimSpace(form.Email)) {
		errs["email"] = i18n.T(locale, i18n.MsgEmailInvalid)
	}
	if len(strings.TrimSpace(form.Phone)) < 10 {
		errs["phone"] = i18n.T(locale, i18n.MsgPhoneTooShort)
	}
	if len(strings.TrimSpace(form.Street)) < 2 {
		errs["street"] = i18n.T(locale, i18n.MsgStreetTooShort)
	}
	if strings.TrimSpace(form.HouseNumber) == "" {
		errs["house_no"] = i18n.T(locale, i18n.MsgHouseNumberEmpty)
	}
	if len(strings.TrimSpace(form.PostalCode)) < 4 {
		errs["postal_code"] = i18n.T(locale, i18n.MsgPostalCodeShort)
	}
	if len(strings.TrimSpace(form.City)) < 2 {
		errs["city"] = i18n.T(locale, i18n.MsgCityTooShort)
	}

	return errs
}
