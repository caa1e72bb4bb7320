package user

import (
	"net/http"

	"github.com/SergeyParamoshkin/newsapi/internal/errresponse"
	"github.com/SergeyParamoshkin/newsapi/internal/userpayload"
	"github.com/go-chi/chi/v5"
)

const URLParamUsername = "username"

type API struct {
	store Store
}

func NewAPI(store Store) *API {
	return &API{store: store}
}

func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.store.ListUsers(r.Context())
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	errresponse.Render(w, r, userpayload.NewUserListResponse(users))
}

func (a *API) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := a.store.GetUser(r.Context(), chi.URLParam(r, URLParamUsername))
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	errresponse.Render(w, r, userpayload.NewUserPayloadResponse(u))
}
