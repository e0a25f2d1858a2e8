package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

// safeNext accepts only local absolute paths as a post-login target.
// Browsers read a backslash as a slash, so "/\host" counts as another host.
func safeNext(next string) (string, bool) {
	normalized := strings.ReplaceAll(next, "\\", "/")
	if !strings.HasPrefix(normalized, "/") || strings.HasPrefix(normalized, "//") {
		return "", false
	}

	u, err := url.Parse(normalized)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	return normalized, true
}

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.SignUpRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, err := h.services.User.SignUp(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, gin.H{"username": input.Username}, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) authLoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": dto.LoginRequest{},
		"next": c.Query("next"),
	})
}

func (h *Handler) authLogin(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	resp, err := h.services.User.Login(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, nil, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, resp.AccessToken, int(h.auth.TokenTTL.Seconds()), "/", "", false, true)

	next := c.Query("next")
	if next == "" {
		next = c.PostForm("next")
	}
	if next, ok := safeNext(next); ok {
		c.Redirect(http.StatusFound, next)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) authLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", false, true)

	c.Redirect(http.StatusFound, "/")
}
