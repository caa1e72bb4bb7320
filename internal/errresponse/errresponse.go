package errresponse

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/newsapi/internal/apperr"
	"github.com/go-chi/render"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the API answers with a client error.
const (
	PgInvalidTextRepresentation = "22P02"
	PgNumericValueOutOfRange    = "22003"
	PgNotNullViolation          = "23502"
	PgForeignKeyViolation       = "23503"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Message string `json:"message"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

// Unexpected reports whether the response hides an error the client did not
// cause.
func (e *ErrResponse) Unexpected() bool {
	return e.HTTPStatusCode >= http.StatusInternalServerError
}

// FromError is the one place a status code is chosen for a failed request.
// Domain rejections pass through verbatim, known driver errors are mapped by
// SQLSTATE, everything else is a 500.
func FromError(err error) *ErrResponse {
	if e, ok := apperr.As(err); ok {
		return fromAppErr(err, e)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgInvalidTextRepresentation, PgNumericValueOutOfRange:
			return fromAppErr(err, apperr.BadRequest())
		case PgNotNullViolation:
			return fromAppErr(err, apperr.MissingFields())
		case PgForeignKeyViolation:
			return fromAppErr(err, apperr.NotFound())
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fromAppErr(err, apperr.NotFound())
	}

	return fromAppErr(err, apperr.Internal())
}

func fromAppErr(err error, e *apperr.Error) *ErrResponse {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: e.Status,
		Message:        e.Message,
	}
}

// ErrNotFound answers unmatched routes.
// nolint
var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: "404: Not found"}
