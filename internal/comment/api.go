package comment

import (
	"net/http"

	"github.com/SergeyParamoshkin/newsapi/internal/errresponse"
	"github.com/SergeyParamoshkin/newsapi/internal/model"
	"github.com/SergeyParamoshkin/newsapi/internal/urlparam"
	"github.com/SergeyParamoshkin/newsapi/internal/validation"
	"github.com/go-chi/render"
)

const (
	URLParamArticleID = "article_id"
	URLParamCommentID = "comment_id"
)

type API struct {
	store Store
}

func NewAPI(store Store) *API {
	return &API{store: store}
}

// CommentRequest is the POST payload for a new comment.
type CommentRequest struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

func (c *CommentRequest) Bind(r *http.Request) error {
	return validation.Struct(c)
}

type CommentResponse struct {
	Comment *model.Comment `json:"comment"`
}

func (rd *CommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ListResponse struct {
	Comments []model.Comment `json:"comments"`
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.Comments == nil {
		rd.Comments = []model.Comment{}
	}

	return nil
}

// ListComments returns the comments of one article.
func (a *API) ListComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := urlparam.ID(r, URLParamArticleID)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	comments, err := a.store.ListComments(r.Context(), articleID)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	errresponse.Render(w, r, &ListResponse{Comments: comments})
}

// CreateComment persists the posted comment and returns it
// back to the client as an acknowledgement.
func (a *API) CreateComment(w http.ResponseWriter, r *http.Request) {
	articleID, err := urlparam.ID(r, URLParamArticleID)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	data := &CommentRequest{}
	if err := validation.Bind(r, data); err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	comment, err := a.store.AddComment(r.Context(), articleID, data.Username, data.Body)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	errresponse.Render(w, r, &CommentResponse{Comment: comment})
}

// DeleteComment removes a comment and answers with an empty body.
func (a *API) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := urlparam.ID(r, URLParamCommentID)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	if err := a.store.DeleteComment(r.Context(), id); err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	render.NoContent(w, r)
}
