package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is the outcome of a rejected write: field name -> human-readable messages.
type Error struct {
	Fields map[string][]string
}

func NewError() *Error {
	return &Error{Fields: map[string][]string{}}
}

// FieldErrorf returns an Error holding a single message for field.
func FieldErrorf(field, message string) *Error {
	e := NewError()
	e.Add(field, message)
	return e
}

func (e *Error) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Merge appends the messages of other into e. A nil other is ignored.
func (e *Error) Merge(other *Error) {
	if other == nil {
		return
	}
	for _, field := range other.fieldNames() {
		for _, msg := range other.Fields[field] {
			e.Add(field, msg)
		}
	}
}

func (e *Error) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// For returns the messages attached to field.
func (e *Error) For(field string) []string {
	if e == nil {
		return nil
	}
	return e.Fields[field]
}

// Messages flattens every message, ordered by field name.
func (e *Error) Messages() []string {
	if e == nil {
		return nil
	}
	var out []string
	for _, field := range e.fieldNames() {
		out = append(out, e.Fields[field]...)
	}
	return out
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.fieldNames() {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) fieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrorResponse is the JSON error envelope of the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return toJSONFieldName(f.Name)
		}
		return name
	})
	return v
}

// Struct validates v against its `validate` tags. Rule violations come back
// as *Error; anything else the validator reports is returned unchanged.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := NewError()
	for _, fe := range verrs {
		out.Add(fe.Field(), buildMessage(fe.Field(), fe))
	}
	return out
}

func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// Label turns a field name into the form used at the start of a message.
func Label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return Label(field) + " cannot be empty."
	case "max":
		return Label(field) + " must be at most " + fe.Param() + " characters."
	}

	return Label(field) + " is invalid (" + fe.Tag() + ")."
}
