// Package validation binds JSON request bodies and checks them against their
// `validate` struct tags.
package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/SergeyParamoshkin/newsapi/internal/apperr"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Struct runs the tag validation on v. A failing `required` rule is reported
// as missing fields, any other rule as a schema failure.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	for _, fe := range verrs {
		if fe.Tag() != "required" {
			return apperr.SchemaValidation()
		}
	}

	return apperr.MissingFields()
}

// Bind decodes the request body into v and calls v.Bind, translating decoder
// failures into domain rejections:
//   - empty body: missing fields
//   - value of the wrong JSON type: schema validation
//   - malformed JSON: bad request
func Bind(r *http.Request, v render.Binder) error {
	err := render.Bind(r, v)
	if err == nil {
		return nil
	}

	if _, ok := apperr.As(err); ok {
		return err
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return apperr.MissingFields()
	case errors.As(err, &typeErr):
		return apperr.SchemaValidation()
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.BadRequest()
	}

	return err
}
