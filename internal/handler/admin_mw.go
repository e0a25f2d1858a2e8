package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) adminMiddleware(c *gin.Context) {
	token := accessToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	user, err := h.getUserFromAccessToken(c.Request.Context(), token)
	if err != nil {
		if abortOnStoreFailure(c, err) {
			return
		}
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, errNoAccess.Error()))
		c.Abort()
		return
	}

	c.Set(userCtxKey, user)

	c.Next()
}
