package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func formDetails(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	return details
}

func TestFormValidateAcceptsValidForm(t *testing.T) {
	require.NoError(t, validForm().Normalize().Validate(fixedNow))
}

func TestFormValidateRequiredFields(t *testing.T) {
	details := formDetails(t, Form{}.Validate(fixedNow))
	for _, field := range []string{"email", "first_name", "last_name", "address", "city", "state", "zip_code", "country", "card_name", "card_number", "card_expiry", "card_cvc"} {
		assert.Equal(t, "is required", details[field], field)
	}
}

func TestFormValidateCardFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Form)
		field string
		want  string
	}{
		{name: "luhn", edit: func(f *Form) { f.CardNumber = "4242424242424241" }, field: "card_number", want: "must be a valid card number"},
		{name: "cvc letters", edit: func(f *Form) { f.CardCVC = "12a" }, field: "card_cvc", want: "must be numeric"},
		{name: "cvc short", edit: func(f *Form) { f.CardCVC = "12" }, field: "card_cvc", want: "must be at least 3 characters"},
		{name: "expiry layout", edit: func(f *Form) { f.CardExpiry = "0828" }, field: "card_expiry", want: "must be 5 characters"},
		{name: "expiry month", edit: func(f *Form) { f.CardExpiry = "13/28" }, field: "card_expiry", want: "expiry month must be 01-12"},
		{name: "expired", edit: func(f *Form) { f.CardExpiry = "09/26" }, field: "card_expiry", want: "card has expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.edit(&form)
			details := formDetails(t, form.Validate(fixedNow))
			assert.Equal(t, tt.want, details[tt.field])
		})
	}
}

func TestFormValidateCurrentMonthExpiry(t *testing.T) {
	form := validForm()
	form.CardExpiry = "10/26"
	require.NoError(t, form.Validate(fixedNow))
}
