package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is implemented by request DTOs with checks that struct tags cannot
// express. Validate returns error messages; empty means valid.
type Validator interface {
	Validate() []string
}

const maxBodyBytes = 1 << 20

var structValidator = newStructValidator()

// newStructValidator reports fields by their JSON names.
func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeAndValidate decodes a JSON body into dest, rejecting unknown fields,
// then checks its `validate` tags and, if dest implements Validator, calls
// Validate. On failure it writes a 400 envelope and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	return WriteValidationErrors(w, ValidateRequest(dest))
}

// ValidateRequest checks dest's `validate` tags and, if dest implements
// Validator, its Validate method. It returns every failure message.
func ValidateRequest(dest any) []string {
	msgs := tagErrors(dest)
	if v, ok := dest.(Validator); ok {
		msgs = append(msgs, v.Validate()...)
	}
	return msgs
}

// WriteValidationErrors writes a 400 envelope joining msgs and returns false,
// or returns true when msgs is empty.
func WriteValidationErrors(w http.ResponseWriter, msgs []string) bool {
	if len(msgs) == 0 {
		return true
	}
	WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(msgs, "; "))
	return false
}

func tagErrors(dest any) []string {
	err := structValidator.Struct(dest)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// nil, or dest is not a struct
		return nil
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return msgs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
