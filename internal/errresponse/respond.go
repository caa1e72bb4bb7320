package errresponse

import (
	"net/http"

	"github.com/SergeyParamoshkin/newsapi/internal/logger"
	"github.com/go-chi/render"
)

// Respond translates err and writes it as the response. Errors the client did
// not cause are logged with the request logger.
func Respond(w http.ResponseWriter, r *http.Request, err error) {
	resp := FromError(err)
	log := logger.FromContext(r.Context())

	if resp.Unexpected() {
		log.Errorw("request failed", "error", err)
	} else {
		log.Debugw("request rejected", "status", resp.HTTPStatusCode, "error", err)
	}

	if rerr := render.Render(w, r, resp); rerr != nil {
		log.Errorw("render error response", "error", rerr)
	}
}

// Render writes v, falling back to an error response when rendering fails.
func Render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		Respond(w, r, err)
	}
}
