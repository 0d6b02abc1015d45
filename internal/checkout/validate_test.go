package checkout

import (
	"testing"

	"github.com/veldbloem/storefront/internal/i18n"
	"github.com/veldbloem/storefront/internal/models"
)

func validForm() models.CheckoutForm {
	return models.CheckoutForm{
		Name:        "Sanne de Vries",
		Email:       "sanne@example.nl",
		Phone:       "0612345678",
		Street:      "Bloemstraat",
		HouseNumber: "12a",
		PostalCode:  "1016 KV",
		City:        "Amsterdam",
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	errs := Validate(validForm(), i18n.LocaleDutch)
	if len(errs) != 0 {
		t.Errorf("expected no field errors, got %v", errs)
	}
}

func TestValidateFlagsOnlyTheBadField(t *testing.T) {
	form := validForm()
	form.Name = "A"

	errs := Validate(form, i18n.LocaleDutch)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if _, ok := errs["name"]; !ok {
		t.Errorf("expected a name error, got %v", errs)
	}
}

func TestValidateCollectsAllFailuresInOnePass(t *testing.T) {
	errs := Validate(models.CheckoutForm{}, i18n.LocaleEnglish)

	want := []string{"name", "email", "phone", "street", "house_no", "postal_code", "city"}
	if len(errs) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(errs), len(want), errs)
	}
	for _, field := range want {
		if errs[field] == "" {
			t.Errorf("missing error for field %q", field)
		}
	}
}

func TestValidatePerField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CheckoutForm)
		field  string
		valid  bool
	}{
		{"email without at", func(f *models.CheckoutForm) { f.Email = "sanne.example.nl" }, "email", false},
		{"email without domain dot", func(f *models.CheckoutForm) { f.Email = "sanne@examplenl" }, "email", false},
		{"email with spaces", func(f *models.CheckoutForm) { f.Email = "sanne @example.nl" }, "email", false},
		{"phone too short", func(f *models.CheckoutForm) { f.Phone = "061234" }, "phone", false},
		{"phone exactly 10", func(f *models.CheckoutForm) { f.Phone = "0612345678" }, "phone", true},
		{"street one char", func(f *models.CheckoutForm) { f.Street = "B" }, "street", false},
		{"house number blank", func(f *models.CheckoutForm) { f.HouseNumber = "   " }, "house_no", false},
		{"postal code three chars", func(f *models.CheckoutForm) { f.PostalCode = "101" }, "postal_code", false},
		{"postal code exactly 4", func(f *models.CheckoutForm) { f.PostalCode = "1016" }, "postal_code", true},
		{"city one char", func(f *models.CheckoutForm) { f.City = "A" }, "city", false},
		{"name padded with spaces", func(f *models.CheckoutForm) { f.Name = " S " }, "name", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			errs := Validate(form, i18n.LocaleDutch)
			_, flagged := errs[tt.field]
			if tt.valid && flagged {
				t.Errorf("field %q flagged unexpectedly: %v", tt.field, errs)
			}
			if !tt.valid && !flagged {
				t.Errorf("field %q not flagged: %v", tt.field, errs)
			}
		})
	}
}

func TestValidateOptionalFieldsNeverFlagged(t *testing.T) {
	form := validForm()
	form.Country = ""
	form.CustomerNote = ""

	errs := Validate(form, i18n.LocaleDutch)
	if len(errs) != 0 {
		t.Errorf("optional fields must not be flagged, got %v", errs)
	}
}

func TestValidateMessagesAreLocalized(t *testing.T) {
	form := validForm()
	form.Name = "A"

	nl := Validate(form, i18n.LocaleDutch)["name"]
	en := Validate(form, i18n.LocaleEnglish)["name"]
	if nl == en {
		t.Errorf("expected different messages per locale, got %q twice", nl)
	}
}
