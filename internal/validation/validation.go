// Package validation checks request payloads against per-entity rules before
// anything reaches storage.  Rules live as `validate` struct tags on the
// model input types; this package evaluates them and turns failures into an
// ordered list of field violations that clients can act on.  Invalid input
// is an expected outcome and is reported through Result, never as a panic.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/movie-rental-api/internal/model"
)

// Schema names the rule set a payload is checked against.
type Schema string

const (
	User     Schema = "user"
	Login    Schema = "login"
	Customer Schema = "customer"
	Genre    Schema = "genre"
	Movie    Schema = "movie"
)

// payloadTypes binds each schema to the input type that carries its rules.
var payloadTypes = map[Schema]reflect.Type{
	User:     reflect.TypeOf(model.UserInput{}),
	Login:    reflect.TypeOf(model.LoginInput{}),
	Customer: reflect.TypeOf(model.CustomerInput{}),
	Genre:    reflect.TypeOf(model.GenreInput{}),
	Movie:    reflect.TypeOf(model.MovieInput{}),
}

// Violation describes one field that failed a rule.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Result is the outcome of Validate.  A zero Result is valid.
type Result struct {
	Violations []Violation
}

// OK reports whether the payload satisfied every rule.
func (r Result) OK() bool { return len(r.Violations) == 0 }

// Error renders the violations as a single line.
func (r Result) Error() string {
	parts := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their JSON names so violations match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Rates are stored as DECIMAL(4,2).
	_ = v.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		scaled := fl.Field().Float() * 100
		return math.Abs(scaled-math.Round(scaled)) < 1e-6
	})
	return v
}

// Validate checks payload against schema.  payload may be the input struct
// or a pointer to it.  Violations are returned in field declaration order,
// at most one per field.
func Validate(schema Schema, payload any) Result {
	want, ok := payloadTypes[schema]
	if !ok {
		return Result{Violations: []Violation{{Field: "_", Reason: fmt.Sprintf("unknown schema %q", schema)}}}
	}
	rv := reflect.ValueOf(payload)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Result{Violations: []Violation{{Field: "_", Reason: "payload is required"}}}
		}
		rv = rv.Elem()
	}
	if rv.Type() != want {
		return Result{Violations: []Violation{{Field: "_", Reason: fmt.Sprintf("payload is not a %s", schema)}}}
	}

	err := validate.Struct(rv.Interface())
	if err == nil {
		return Result{}
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{Violations: []Violation{{Field: "_", Reason: err.Error()}}}
	}
	out := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{Field: fe.Field(), Reason: reason(fe)})
	}
	return Result{Violations: out}
}

// reason turns a failed tag into a human readable sentence.
func reason(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid id"
	case "cents":
		return "must have at most 2 decimal places"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
