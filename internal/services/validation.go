package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

type OrderLine struct {
	Product  uint `json:"product" validate:"required"`
	Quantity int  `json:"quantity" validate:"gt=0"`
}

type OrderRequest struct {
	FirstName     string      `json:"firstname" validate:"required,max=255"`
	LastName      string      `json:"lastname" validate:"required,max=255"`
	PhoneNumber   string      `json:"phonenumber" validate:"required"`
	Address       string      `json:"address" validate:"required,max=255"`
	Products      []OrderLine `json:"products" validate:"required,min=1,dive"`
	Comment       string      `json:"comment" validate:"max=200"`
	PaymentMethod string      `json:"payment_method" validate:"omitempty,oneof=cash electronic"`
}

func (r *OrderRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Address = strings.TrimSpace(r.Address)
	r.Comment = strings.TrimSpace(r.Comment)
	r.PaymentMethod = strings.ToLower(strings.TrimSpace(r.PaymentMethod))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct returns the first failing field as a *ValidationError.
func validateStruct(value interface{}) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}

	fe := fieldErrors[0]
	return &ValidationError{Field: fieldPath(fe.Namespace()), Message: describe(fe)}
}

// fieldPath drops the struct name from "OrderRequest.products[0].quantity".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return "must be a positive integer"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}

// normalizePhone parses a number in the given default region and returns it
// in E.164 form.
func normalizePhone(raw, region string) (string, error) {
	number, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", &ValidationError{Field: "phonenumber", Message: "invalid phone number"}
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}
