package handler

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	token := accessToken(c)
	if token == "" {
		c.Next()
		return
	}

	user, err := h.getUserFromAccessToken(c.Request.Context(), token)
	if err != nil {
		if abortOnStoreFailure(c, err) {
			return
		}
		c.Next()
		return
	}

	c.Set(userCtxKey, user)

	c.Next()
}
