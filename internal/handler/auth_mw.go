package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/BloggingApp/blog-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userCtxKey        = "user"
	accessTokenCookie = "access_token"
	loginPath         = "/auth/login/"
)

// accessToken reads the bearer token, falling back to the login cookie.
func accessToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	cookie, err := c.Cookie(accessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie
}

func (h *Handler) getUserFromAccessToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := utils.DecodeJWT(token, h.auth.AccessSecret)
	if err != nil {
		return nil, err
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, utils.ErrInvalidToken
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	return h.services.User.FindByID(ctx, id)
}

func loginRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

// abortOnStoreFailure answers 500 when the user lookup failed for reasons other than the token.
func abortOnStoreFailure(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrInternal) {
		return false
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	return true
}

func (h *Handler) authMiddleware(c *gin.Context) {
	token := accessToken(c)
	if token == "" {
		loginRedirect(c)
		return
	}

	user, err := h.getUserFromAccessToken(c.Request.Context(), token)
	if err != nil {
		if abortOnStoreFailure(c, err) {
			return
		}
		loginRedirect(c)
		return
	}

	c.Set(userCtxKey, user)

	c.Next()
}
