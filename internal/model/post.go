package model

import (
	"time"

	"github.com/google/uuid"
)

// PostCharacterLimit bounds the preview returned by Post.String and Comment.String.
const PostCharacterLimit = 15

type Post struct {
	ID       int64     `json:"id"`
	AuthorID uuid.UUID `json:"author_id"`
	GroupID  *int64    `json:"group_id"`
	Text     string    `json:"text"`
	Image    string    `json:"image"`
	PubDate  time.Time `json:"pub_date"`
}

func (p Post) String() string {
	return Truncate(p.Text, PostCharacterLimit)
}

type FullPost struct {
	Post   Post       `json:"post"`
	Author UserAuthor `json:"author"`
	Group  *GroupRef  `json:"group"`
}

// PostFilter scopes a feed query. A zero filter selects every post.
type PostFilter struct {
	GroupID    *int64
	AuthorID   *uuid.UUID
	FollowerID *uuid.UUID
}

// Truncate cuts s to limit runes and marks the cut with an ellipsis.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
