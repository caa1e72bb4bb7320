package userpayload

import (
	"net/http"

	"github.com/SergeyParamoshkin/newsapi/internal/model"
)

//--
// Response payloads for the users resource.
//--

type UserPayload struct {
	User *model.User `json:"user"`
}

func NewUserPayloadResponse(user *model.User) *UserPayload {
	return &UserPayload{User: user}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type UserListResponse struct {
	Users []model.User `json:"users"`
}

func NewUserListResponse(users []model.User) *UserListResponse {
	return &UserListResponse{Users: users}
}

func (u *UserListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if u.Users == nil {
		u.Users = []model.User{}
	}

	return nil
}
