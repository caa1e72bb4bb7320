package article

import (
	"net/http"

	"github.com/SergeyParamoshkin/newsapi/internal/articleresponse"
	"github.com/SergeyParamoshkin/newsapi/internal/errresponse"
	"github.com/SergeyParamoshkin/newsapi/internal/urlparam"
	"github.com/SergeyParamoshkin/newsapi/internal/validation"
)

const URLParamArticleID = "article_id"

type API struct {
	store Store
}

func NewAPI(store Store) *API {
	return &API{store: store}
}

// VoteRequest is the PATCH payload. IncVotes is a pointer so that an explicit
// zero is told apart from a missing field, and an int32 so that values the
// votes column cannot hold fail to decode.
type VoteRequest struct {
	IncVotes *int32 `json:"inc_votes" validate:"required"`
}

func (v *VoteRequest) Bind(r *http.Request) error {
	return validation.Struct(v)
}

// ListArticles returns article summaries, newest first unless the query says
// otherwise.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.store.ListArticles(r.Context(), listQueryFromContext(r.Context()))
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	errresponse.Render(w, r, articleresponse.NewArticleListResponse(articles))
}

// GetArticle returns the Article loaded by ArticleCtx.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	errresponse.Render(w, r, articleresponse.NewArticleResponse(articleFromContext(r.Context())))
}

// UpdateArticle applies an inc_votes adjustment and returns the updated
// Article.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := urlparam.ID(r, URLParamArticleID)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	data := &VoteRequest{}
	if err := validation.Bind(r, data); err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	article, err := a.store.UpdateVotes(r.Context(), id, int(*data.IncVotes))
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	errresponse.Render(w, r, articleresponse.NewArticleResponse(article))
}
