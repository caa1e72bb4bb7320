package articleresponse

import (
	"net/http"

	"github.com/SergeyParamoshkin/newsapi/internal/model"
)

// ArticleResponse is the response payload for the Article data model,
// wrapped under the "article" key.
type ArticleResponse struct {
	Article *model.Article `json:"article"`
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ArticleListResponse lists article summaries.
type ArticleListResponse struct {
	Articles []model.ArticleSummary `json:"articles"`
}

func NewArticleListResponse(articles []model.Article) *ArticleListResponse {
	list := make([]model.ArticleSummary, 0, len(articles))
	for _, a := range articles {
		list = append(list, a.Summary())
	}

	return &ArticleListResponse{Articles: list}
}

func (rd *ArticleListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
