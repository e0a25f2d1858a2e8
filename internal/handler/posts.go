package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

func profilePath(username string) string {
	return "/profile/" + username + "/"
}

func postPath(postID int64) string {
	return "/posts/" + strconv.FormatInt(postID, 10) + "/"
}

func parsePostID(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(strings.TrimSpace(c.Param("postID")), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return 0, false
	}
	return postID, true
}

// bindPostInput reads the post form and the optional "image" file.
// The returned closer must be called once the input is consumed.
func bindPostInput(c *gin.Context) (dto.PostForm, dto.PostInput, func(), error) {
	noop := func() {}

	var form dto.PostForm
	if err := c.ShouldBind(&form); err != nil {
		return form, dto.PostInput{}, noop, err
	}

	input := dto.PostInput{
		Text:  form.Text,
		Group: form.Group,
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, input, noop, nil
		}
		return form, input, noop, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return form, input, noop, err
	}

	input.Image = &dto.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}

	return form, input, func() { file.Close() }, nil
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	form, input, done, err := bindPostInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidImage.Error()))
		return
	}
	defer done()

	if _, err := h.services.Post.Create(c.Request.Context(), user, input); err != nil {
		abortWithError(c, form, err)
		return
	}

	c.Redirect(http.StatusFound, profilePath(user.Username))
}

func (h *Handler) postsGetByID(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		abortWithError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	form, input, done, err := bindPostInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidImage.Error()))
		return
	}
	defer done()

	if _, err := h.services.Post.Edit(c.Request.Context(), user, postID, input); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		abortWithError(c, form, err)
		return
	}

	c.Redirect(http.StatusFound, postPath(postID))
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), user, postID); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.Redirect(http.StatusFound, postPath(postID))
			return
		}
		abortWithError(c, nil, err)
		return
	}

	c.Redirect(http.StatusFound, profilePath(user.Username))
}
