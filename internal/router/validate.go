package router

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"analytics-api/internal/errors"
	"analytics-api/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Create inputs are validated after coercion and before the store is called.

type revenueInput struct {
	Month   *string  `json:"month" validate:"required,min=1"`
	Revenue *float64 `json:"revenue" validate:"required"`
	Prev    *float64 `json:"prev"`
}

type productInput struct {
	Name     *string  `json:"name" validate:"required,min=1"`
	Sales    *float64 `json:"sales"`
	Category *string  `json:"category"`
}

type transactionInput struct {
	Customer *string  `json:"customer" validate:"required,min=1"`
	Product  *string  `json:"product" validate:"required,min=1"`
	Amount   *float64 `json:"amount" validate:"required"`
	Status   *string  `json:"status"`
	Date     *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// validateStruct returns a VALIDATION_ERROR describing every failed field.
func validateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Wrap(err, errors.CodeValidation, "Validation failed")
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, translateError(fe))
	}
	return errors.Validation(strings.Join(messages, "; "))
}

// validateDate checks an optional patch date.
func validateDate(date *string) error {
	if date == nil {
		return nil
	}
	if err := getValidator().Var(*date, "datetime="+models.DateLayout); err != nil {
		return errors.Validationf("date must be a date in %s format", models.DateLayout)
	}
	return nil
}

func translateError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
