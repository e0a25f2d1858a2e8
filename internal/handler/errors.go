package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errNoAccess      = errors.New("no access")
	errInvalidPostID = errors.New("invalid post ID")
	errInvalidImage  = errors.New("invalid image upload")
)

func errorStatus(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError answers validation failures with the submitted form and
// its field messages, everything else with a BasicResponse.
func abortWithError(c *gin.Context, form any, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewFormErrorResponse(form, verr.Fields))
		return
	}

	c.AbortWithStatusJSON(errorStatus(err), dto.NewBasicResponse(false, err.Error()))
}
