package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to the human-readable message for its first
// violated rule. A nil map means the value passed.
type Errors map[string]string

// Validator evaluates `validate` struct tags and reports every violated
// field in one pass, the way a schema validator does.
type Validator struct {
	validate *validator.Validate
	messages map[string]string
}

// New builds a Validator. Field names in results follow the json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v, messages: make(map[string]string)}
}

// WithMessages overrides messages per "field.tag" key, e.g. "email.required".
func (v *Validator) WithMessages(overrides map[string]string) *Validator {
	for key, msg := range overrides {
		v.messages[key] = msg
	}
	return v
}

// Struct validates s and returns all violated fields. Returns nil when valid.
func (v *Validator) Struct(s any) Errors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"_": err.Error()}
	}

	result := make(Errors, len(violations))
	for _, fe := range violations {
		field := fe.Field()
		if _, seen := result[field]; seen {
			continue
		}
		if msg, ok := v.messages[field+"."+fe.Tag()]; ok {
			result[field] = msg
			continue
		}
		result[field] = defaultMessage(fe)
	}
	return result
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "eq":
		return fmt.Sprintf("%s must equal %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Details converts Errors to the map shape carried by DomainError details.
func (e Errors) Details() map[string]any {
	if len(e) == 0 {
		return nil
	}
	details := make(map[string]any, len(e))
	for field, msg := range e {
		details[field] = msg
	}
	return details
}
