package application

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sngm3741/medibook-services/api/internal/public/domain"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Validator wraps validator/v10 with the form-specific rules.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the custom rules used by the form commands.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "timelabel", func(fl validator.FieldLevel) bool {
		return contains(domain.StandardTimeLabels, fl.Field().String())
	})
	mustRegister(v, "subject", func(fl validator.FieldLevel) bool {
		return contains(domain.ContactSubjects, fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// Struct validates s and converts failures into *ValidationError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, exists := fields[fe.Field()]; exists {
			continue
		}
		fields[fe.Field()] = validationMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

var requiredMessages = map[string]string{
	"doctorId":        "Please select a doctor",
	"date":            "Please select a date",
	"time":            "Please select a time slot",
	"name":            "Full name is required",
	"fullName":        "Full name is required",
	"email":           "Email is required",
	"phone":           "Phone number is required",
	"subject":         "Subject is required",
	"message":         "Message is required",
	"password":        "Password is required",
	"confirmPassword": "Please confirm your password",
	"terms":           "You must agree with our terms and conditions",
}

var fieldLabels = map[string]string{
	"name":     "Full name",
	"fullName": "Full name",
	"email":    "Email",
	"phone":    "Phone number",
	"message":  "Message",
	"password": "Password",
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	label, ok := fieldLabels[field]
	if !ok {
		label = field
	}
	switch fe.Tag() {
	case "required":
		if msg, ok := requiredMessages[field]; ok {
			return msg
		}
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "phone":
		return "Invalid phone number"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "datetime":
		return "Date must be in YYYY-MM-DD format"
	case "timelabel":
		return "Please select a valid time slot"
	case "subject":
		return "Please select a valid subject"
	}
	return "Invalid value"
}

func contains(values []string, item string) bool {
	for _, v := range values {
		if v == item {
			return true
		}
	}
	return false
}
