// Package payload decodes and validates JSON request bodies.
//
// Validation runs as a pure pre-stage before any store interaction and
// produces a structured list of {field, message} entries, one per
// offending field, using go-playground/validator struct tags. Field names
// in the output follow the json tag, not the Go field name.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/studyhive/studyhive/internal/app/system/respond"
)

// maxBodyBytes bounds request bodies; the largest legitimate payload here
// is a resource note of ~1000 chars.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ErrMalformed is returned when the body is not syntactically valid JSON.
var ErrMalformed = errors.New("malformed JSON body")

// Decode reads the request body into dst. It does not validate.
func Decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return ErrMalformed
		}
		return ErrMalformed
	}
	return nil
}

// Check validates dst and returns one FieldError per failing field,
// or nil when the value is valid.
func Check(dst any) []respond.FieldError {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []respond.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]respond.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, respond.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// DecodeValid decodes and validates in one step. On failure it writes the
// appropriate error response and returns false; handlers should return
// immediately in that case.
func DecodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := Decode(r, dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "Request body must be valid JSON", respond.CodeValidationError)
		return false
	}
	if details := Check(dst); details != nil {
		respond.ValidationFailed(w, details)
		return false
	}
	return true
}

// message renders a human-readable description for a failed constraint.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please provide a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), "' '", "', '"))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
