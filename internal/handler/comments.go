package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

// commentsCreate always lands back on the post detail; an invalid comment is dropped.
func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var form dto.CommentForm
	_ = c.ShouldBind(&form)

	if _, err := h.services.Comment.Create(c.Request.Context(), user, postID, form); err != nil {
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			abortWithError(c, form, err)
			return
		}
	}

	c.Redirect(http.StatusFound, postPath(postID))
}
