package topic

import (
	"net/http"

	"github.com/SergeyParamoshkin/newsapi/internal/errresponse"
	"github.com/SergeyParamoshkin/newsapi/internal/model"
)

type API struct {
	store Store
}

func NewAPI(store Store) *API {
	return &API{store: store}
}

type ListResponse struct {
	Topics []model.Topic `json:"topics"`
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.Topics == nil {
		rd.Topics = []model.Topic{}
	}

	return nil
}

// ListTopics returns every topic.
func (a *API) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := a.store.ListTopics(r.Context())
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	errresponse.Render(w, r, &ListResponse{Topics: topics})
}
