package checkout

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/storefront-backend/internal/checkout/helpers"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Form carries the shipping and card fields collected on the checkout page.
type Form struct {
	Email      string `json:"email" validate:"required,email,max=254"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Address    string `json:"address" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	ZipCode    string `json:"zip_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	CardName   string `json:"card_name" validate:"required,max=200"`
	CardNumber string `json:"card_number" validate:"required,credit_card"`
	CardExpiry string `json:"card_expiry" validate:"required,len=5"`
	CardCVC    string `json:"card_cvc" validate:"required,numeric,min=3,max=4"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Normalize trims every field and upper-cases region codes.
func (f Form) Normalize() Form {
	out := Form{
		Email:      strings.TrimSpace(strings.ToLower(f.Email)),
		FirstName:  strings.TrimSpace(f.FirstName),
		LastName:   strings.TrimSpace(f.LastName),
		Address:    strings.TrimSpace(f.Address),
		City:       strings.TrimSpace(f.City),
		State:      helpers.NormalizeRegion(f.State),
		ZipCode:    strings.TrimSpace(f.ZipCode),
		Country:    helpers.NormalizeRegion(f.Country),
		CardName:   strings.TrimSpace(f.CardName),
		CardNumber: strings.TrimSpace(f.CardNumber),
		CardExpiry: strings.TrimSpace(f.CardExpiry),
		CardCVC:    strings.TrimSpace(f.CardCVC),
	}
	return out
}

// Validate checks field formats and that the card has not expired at now.
func (f Form) Validate(now time.Time) error {
	details := map[string]string{}
	if err := formValidator.Struct(f); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
		}
		for _, fe := range errs {
			details[fe.Field()] = fieldMessage(fe)
		}
	}
	if _, seen := details["card_expiry"]; !seen && f.CardExpiry != "" {
		month, year, err := helpers.ParseCardExpiry(f.CardExpiry)
		switch {
		case err != nil:
			details["card_expiry"] = err.Error()
		case helpers.CardExpired(month, year, now):
			details["card_expiry"] = "card has expired"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "credit_card":
		return "must be a valid card number"
	case "numeric":
		return "must be numeric"
	case "len":
		return fmt.Sprintf("must be %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}
