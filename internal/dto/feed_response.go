package dto

import (
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/pagination"
)

type Feed struct {
	Page  pagination.Page   `json:"page"`
	Posts []*model.FullPost `json:"posts"`
}

type GroupFeed struct {
	Group *model.Group `json:"group"`
	Feed
}

type ProfileFeed struct {
	Author    model.UserAuthor `json:"author"`
	Following bool             `json:"following"`
	Feed
}

type PostDetail struct {
	Post     *model.FullPost      `json:"post"`
	Author   model.UserAuthor     `json:"author"`
	Comments []*model.FullComment `json:"comments"`
	Form     CommentForm          `json:"form"`
}
