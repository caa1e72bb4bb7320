package model

import "time"

type Comment struct {
	CommentID int       `json:"comment_id" db:"comment_id"`
	Body      string    `json:"body" db:"body"`
	Votes     int       `json:"votes" db:"votes"`
	Author    string    `json:"author" db:"author"`
	ArticleID int       `json:"article_id" db:"article_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
