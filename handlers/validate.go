package handlers

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a request field to its messages.
type ValidationErrors map[string][]string

func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Fields returns the failing field names, sorted.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct checks the validate tags of s.
func validateStruct(s interface{}) ValidationErrors {
	verrs := ValidationErrors{}
	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(s); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verrs.Add(fe.Field(), fieldMessage(fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return verrs
}

// validateField checks a single present value against tag.
func validateField(verrs ValidationErrors, field string, value interface{}, tag string) {
	var fieldErrs validator.ValidationErrors
	if err := validate.Var(value, tag); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verrs.Add(field, fieldMessage(field, fe.Tag(), fe.Param()))
		}
	}
}

func fieldMessage(field, tag, param string) string {
	name := strings.ReplaceAll(field, "_", " ")
	switch tag {
	case "required":
		return "The " + name + " field is required."
	case "email":
		return "The " + name + " field must be a valid email address."
	case "max":
		return "The " + name + " field must not be greater than " + param + " characters."
	case "min":
		return "The " + name + " field must be at least " + param + " characters."
	default:
		return "The " + name + " field is invalid."
	}
}

func uniqueMessage(field string) string {
	return "The " + strings.ReplaceAll(field, "_", " ") + " has already been taken."
}

func existsMessage(field string) string {
	return "The selected " + strings.ReplaceAll(field, "_", " ") + " is invalid."
}
