package dto

import "io"

// PostForm carries the create/edit form fields. Group is the group id or empty.
type PostForm struct {
	Text  string `form:"text" json:"text"`
	Group string `form:"group" json:"group"`
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type PostInput struct {
	Text  string
	Group string
	Image *ImageUpload
}
