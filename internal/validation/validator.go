// Package validation holds the declarative rules for every input the portal
// accepts: public application submissions, reviewer updates, courses and
// email templates.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/go-playground/validator/v10"
)

var nationalIDPattern = regexp.MustCompile(`^\d{16}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("national_id", func(fl validator.FieldLevel) bool {
		return nationalIDPattern.MatchString(fl.Field().String())
	})

	v.RegisterStructValidation(submissionRules, Submission{})

	return v
}

// run validates s and converts failures into field errors ordered by the
// position of the field in s, so the first error is the first field a user
// would see on the form.
func run(s interface{}, messages map[string]string) []apperr.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return []apperr.FieldError{{Path: "", Message: err.Error()}}
	}

	order := fieldOrder(reflect.TypeOf(s))
	fields := make([]apperr.FieldError, 0, len(invalid))
	for _, fe := range invalid {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		fields = append(fields, apperr.FieldError{Path: path, Message: message(path, fe, messages)})
	}
	sortFields(fields, order)
	return fields
}

func sortFields(fields []apperr.FieldError, order map[string]int) {
	sort.SliceStable(fields, func(i, j int) bool {
		return order[topLevel(fields[i].Path)] < order[topLevel(fields[j].Path)]
	})
}

func topLevel(path string) string {
	return strings.SplitN(path, ".", 2)[0]
}

func fieldOrder(t reflect.Type) map[string]int {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	order := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		order[name] = i
	}
	return order
}

func message(path string, fe validator.FieldError, messages map[string]string) string {
	if custom, ok := messages[path+"."+fe.Tag()]; ok {
		return custom
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fe.Field() + " must be a valid email address"
	case "url":
		return fe.Field() + " must be a valid URL"
	default:
		return fe.Field() + " is invalid"
	}
}

// failed wraps field errors in a validation error. A leading missing field
// is reported by name, as the public API has always done.
func failed(fields []apperr.FieldError) error {
	msg := "Validation failed"
	if len(fields) > 0 && fields[0].Message == fields[0].Path+" is required" {
		msg = fields[0].Message
	}
	return apperr.Validation(msg, fields)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps, datetime-local values and bare
// dates. Values without a zone are read as UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
