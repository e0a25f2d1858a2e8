package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) adminGroupsList(c *gin.Context) {
	groups, err := h.services.Group.FindAll(c.Request.Context())
	if err != nil {
		abortWithError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

func (h *Handler) adminGroupsCreate(c *gin.Context) {
	var input dto.GroupRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	group, err := h.services.Group.Create(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, input, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (h *Handler) adminGroupsUpdate(c *gin.Context) {
	var input dto.GroupRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	group, err := h.services.Group.Update(c.Request.Context(), c.Param("slug"), input)
	if err != nil {
		abortWithError(c, input, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *Handler) adminGroupsDelete(c *gin.Context) {
	if err := h.services.Group.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		abortWithError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) adminUsersDelete(c *gin.Context) {
	if err := h.services.User.DeleteByUsername(c.Request.Context(), c.Param("username")); err != nil {
		abortWithError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) adminCacheClear(c *gin.Context) {
	if err := h.cache.Clear(c.Request.Context()); err != nil {
		h.logger.Sugar().Errorf("failed to clear page cache: %s", err.Error())
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, "internal server error"))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
