// Package endpoints serves the fixed description of the API.
package endpoints

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

//go:embed endpoints.json
var descriptor []byte

// JSON returns the raw descriptor.
func JSON() json.RawMessage {
	return descriptor
}

// ListEndpoints answers GET /api.
func ListEndpoints(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, JSON())
}
