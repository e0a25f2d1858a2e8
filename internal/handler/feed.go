package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) feedIndex(c *gin.Context) {
	feed, err := h.services.Feed.GlobalFeed(c.Request.Context(), c.Query("page"))
	if err != nil {
		abortWithError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) feedGroup(c *gin.Context) {
	feed, err := h.services.Feed.GroupFeed(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		abortWithError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) feedProfile(c *gin.Context) {
	viewer := h.getUserFromRequest(c)

	feed, err := h.services.Feed.AuthorFeed(c.Request.Context(), c.Param("username"), viewer, c.Query("page"))
	if err != nil {
		abortWithError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) feedFollowing(c *gin.Context) {
	user := h.getUserFromRequest(c)

	feed, err := h.services.Feed.FollowingFeed(c.Request.Context(), user.ID, c.Query("page"))
	if err != nil {
		abortWithError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}
