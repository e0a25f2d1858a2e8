package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) followCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)
	username := c.Param("username")

	if err := h.services.Follow.Follow(c.Request.Context(), user, username); err != nil && !errors.Is(err, service.ErrSelfFollow) {
		abortWithError(c, nil, err)
		return
	}

	c.Redirect(http.StatusFound, profilePath(username))
}

func (h *Handler) followDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)
	username := c.Param("username")

	if err := h.services.Follow.Unfollow(c.Request.Context(), user, username); err != nil && !errors.Is(err, service.ErrSelfFollow) {
		abortWithError(c, nil, err)
		return
	}

	c.Redirect(http.StatusFound, profilePath(username))
}
