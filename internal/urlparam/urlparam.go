package urlparam

import (
	"net/http"
	"strconv"

	"github.com/SergeyParamoshkin/newsapi/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// ID reads a serial primary key from the route. Ids are PostgreSQL INT, so
// anything that is not a 32-bit integer is rejected before reaching SQL.
func ID(r *http.Request, key string) (int, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 32)
	if err != nil {
		return 0, apperr.BadRequest()
	}

	return int(id), nil
}
