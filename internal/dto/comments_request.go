package dto

type CommentForm struct {
	Text string `form:"text" json:"text"`
}
