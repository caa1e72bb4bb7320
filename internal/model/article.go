package model

import "time"

// Article data model. CommentCount is derived from the comments table and is
// never written back.
type Article struct {
	ArticleID     int       `json:"article_id" db:"article_id"`
	Author        string    `json:"author" db:"author"`
	Title         string    `json:"title" db:"title"`
	Body          string    `json:"body" db:"body"`
	Topic         string    `json:"topic" db:"topic"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"comment_count"`
}

// ArticleSummary is an Article as it appears in lists, without the body.
type ArticleSummary struct {
	ArticleID     int       `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int       `json:"comment_count"`
}

func (a Article) Summary() ArticleSummary {
	return ArticleSummary{
		ArticleID:     a.ArticleID,
		Author:        a.Author,
		Title:         a.Title,
		Topic:         a.Topic,
		CreatedAt:     a.CreatedAt,
		Votes:         a.Votes,
		ArticleImgURL: a.ArticleImgURL,
		CommentCount:  a.CommentCount,
	}
}
