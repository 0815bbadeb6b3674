// Package validator provides a Validator type for accumulating field-level
// validation errors. Struct rules are declared with `validate:` tags and
// checked by go-playground/validator; the results are collected into the same
// field→message map as hand-written checks.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// validate is shared by every Validator. It caches struct metadata, so it
// must be built once and reused.
var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()

	// Report fields by their JSON name so messages match what clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// Messages overrides the default message for a failed rule. Keys have the
// form "<field>.<tag>", for example "ISBN.min".
type Messages map[string]string

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
	keys   []string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
		v.keys = append(v.keys, key)
	}
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(cfg.Port > 0, "port", "must be a positive integer")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Messages returns the recorded messages in the order they were added.
func (v *Validator) Messages() []string {
	out := make([]string, 0, len(v.keys))
	for _, key := range v.keys {
		out = append(out, v.Errors[key])
	}
	return out
}

// Struct runs the `validate:` tag rules of s and records one error per failing
// field. model names the entity in default messages ("Book.title cannot be
// null"); messages replaces the default for specific field/rule pairs.
func (v *Validator) Struct(s any, model string, messages Messages) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.AddError(model, err.Error())
		return
	}

	for _, fe := range fieldErrs {
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			v.AddError(fe.Field(), msg)
			continue
		}
		v.AddError(fe.Field(), defaultMessage(model, fe))
	}
}

func defaultMessage(model string, fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s.%s cannot be null", model, fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q rule", fe.Field(), fe.Tag())
	}
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
