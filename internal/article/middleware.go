package article

import (
	"context"
	"net/http"
	"strings"

	"github.com/SergeyParamoshkin/newsapi/internal/apperr"
	"github.com/SergeyParamoshkin/newsapi/internal/errresponse"
	"github.com/SergeyParamoshkin/newsapi/internal/model"
	"github.com/SergeyParamoshkin/newsapi/internal/urlparam"
)

type ctxKey int8

const (
	ctxKeyArticle ctxKey = iota
	ctxKeyListQuery
)

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (a *API) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := urlparam.ID(r, URLParamArticleID)
		if err != nil {
			errresponse.Respond(w, r, err)

			return
		}

		article, err := a.store.GetArticle(r.Context(), id)
		if err != nil {
			errresponse.Respond(w, r, err)

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticle, article)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ListCtx validates the topic, sort_by and order query parameters of a list
// request and puts the resulting ListQuery on the context.
func ListCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := DefaultListQuery()
		params := r.URL.Query()

		if v := params.Get("sort_by"); v != "" {
			q.SortBy = v
		}
		if v := params.Get("order"); v != "" {
			q.Order = strings.ToLower(v)
		}
		q.Topic = params.Get("topic")

		if _, ok := SortColumns[q.SortBy]; !ok {
			errresponse.Respond(w, r, apperr.BadRequest())

			return
		}
		if _, ok := Orders[q.Order]; !ok {
			errresponse.Respond(w, r, apperr.BadRequest())

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyListQuery, q)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func articleFromContext(ctx context.Context) *model.Article {
	// Set by ArticleCtx; a missing value is a routing bug and the recoverer
	// answers it.
	// nolint
	return ctx.Value(ctxKeyArticle).(*model.Article)
}

func listQueryFromContext(ctx context.Context) ListQuery {
	if q, ok := ctx.Value(ctxKeyListQuery).(ListQuery); ok {
		return q
	}

	return DefaultListQuery()
}
